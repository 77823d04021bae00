package attachments

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/mailpdf/interfaces"
	"github.com/customeros/mailpdf/internal/enum"
	mperrors "github.com/customeros/mailpdf/internal/errors"
	"github.com/customeros/mailpdf/internal/logger"
	"github.com/customeros/mailpdf/internal/models"
	"github.com/customeros/mailpdf/internal/tracing"
	"github.com/customeros/mailpdf/internal/utils"
)

type ConverterConfig struct {
	SofficePath string
	Timeout     time.Duration
	TempDir     string
}

// Converter renders office attachments to PDF. Spreadsheets and
// presentations are turned into HTML and printed by the renderer; word
// processing documents go through LibreOffice.
type Converter struct {
	cfg      ConverterConfig
	renderer interfaces.Renderer
	log      logger.Logger
}

func NewConverter(cfg ConverterConfig, renderer interfaces.Renderer, log logger.Logger) *Converter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &Converter{cfg: cfg, renderer: renderer, log: log}
}

// Convert returns the PDF rendition of the attachment, or false when the
// attachment is unsupported or could not be read. Errors and panics are
// logged and never propagated.
func (c *Converter) Convert(ctx context.Context, att *models.Attachment) (pdf []byte, ok bool) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "Converter.Convert")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("attachment", att.Name, "size", len(att.Data))

	family := utils.DocumentFamilyForExtension(att.Extension())
	if family == enum.DocumentNone {
		c.log.Warnf("Skipping attachment %q: %v", att.Name, mperrors.ErrUnsupportedConvert)
		return nil, false
	}

	workspace, err := os.MkdirTemp(c.cfg.TempDir, "mailpdf-attachment-*")
	if err != nil {
		tracing.TraceErr(span, err)
		c.log.Errorf("Failed to create workspace for %q: %v", att.Name, err)
		return nil, false
	}
	defer func() {
		if rec := recover(); rec != nil {
			err := errors.Errorf("panic converting %q: %v", att.Name, rec)
			tracing.TraceErr(span, err)
			c.log.Errorf("%v", err)
			pdf, ok = nil, false
		}
		if err := os.RemoveAll(workspace); err != nil {
			c.log.Warnf("Failed to remove workspace %s: %v", workspace, err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	pdf, err = c.convert(ctx, family, att, workspace)
	if err != nil {
		tracing.TraceErr(span, err)
		c.log.Warnf("Skipping attachment %q: %v", att.Name, err)
		return nil, false
	}

	span.LogKV("pdfSize", len(pdf))
	return pdf, true
}

func (c *Converter) convert(ctx context.Context, family enum.DocumentFamily, att *models.Attachment, workspace string) ([]byte, error) {
	input := filepath.Join(workspace, "input"+att.Extension())
	if err := os.WriteFile(input, att.Data, 0o600); err != nil {
		return nil, errors.Wrap(err, "write attachment to workspace")
	}

	switch family {
	case enum.DocumentSpreadsheet:
		html, err := spreadsheetHTML(input, att.Name)
		if err != nil {
			return nil, err
		}
		return c.renderer.Render(ctx, html, models.DefaultPage)
	case enum.DocumentPresentation:
		html, err := presentationHTML(input, att.Name)
		if err != nil {
			return nil, err
		}
		return c.renderer.Render(ctx, html, models.DefaultPage)
	case enum.DocumentWordProcessing:
		return convertWithSoffice(ctx, c.cfg.SofficePath, input, workspace)
	default:
		return nil, mperrors.ErrUnsupportedConvert
	}
}
