package models

// PageSetup describes the paper used when printing HTML to PDF. Sizes are
// in inches. A zero paper size keeps the browser default.
type PageSetup struct {
	PaperWidth   float64
	PaperHeight  float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
}

const cmToInch = 0.3937

var (
	// BodyPage is A3 landscape with 1cm margins, used for the email body.
	BodyPage = PageSetup{
		PaperWidth:   16.54,
		PaperHeight:  11.69,
		MarginTop:    cmToInch,
		MarginBottom: cmToInch,
		MarginLeft:   cmToInch,
		MarginRight:  cmToInch,
	}

	// DefaultPage keeps the browser defaults, used for attachment renditions.
	DefaultPage = PageSetup{}
)

func (p PageSetup) IsDefault() bool {
	return p == PageSetup{}
}
