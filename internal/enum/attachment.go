package enum

type AttachmentKind string

const (
	AttachmentImage               AttachmentKind = "image"
	AttachmentPdf                 AttachmentKind = "pdf"
	AttachmentConvertibleDocument AttachmentKind = "convertible_document"
	AttachmentUnsupported         AttachmentKind = "unsupported"
)

func (k AttachmentKind) String() string {
	return string(k)
}

type DocumentFamily string

const (
	DocumentSpreadsheet    DocumentFamily = "spreadsheet"
	DocumentPresentation   DocumentFamily = "presentation"
	DocumentWordProcessing DocumentFamily = "word_processing"
	DocumentNone           DocumentFamily = ""
)

func (f DocumentFamily) String() string {
	return string(f)
}
