package parser

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/mailpdf/internal/enum"
	mperrors "github.com/customeros/mailpdf/internal/errors"
	"github.com/customeros/mailpdf/internal/models"
	"github.com/customeros/mailpdf/internal/tracing"
	"github.com/customeros/mailpdf/services/parser/eml"
	"github.com/customeros/mailpdf/services/parser/msg"
)

type EmailParser struct{}

func NewEmailParser() *EmailParser {
	return &EmailParser{}
}

// Parse reads an uploaded email file. The reader is chosen by the file
// extension, compared case-insensitively.
func (p *EmailParser) Parse(ctx context.Context, filename string, data []byte) (*models.ParsedEmail, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "EmailParser.Parse")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag(tracing.SpanTagFileName, filename)

	format, err := FormatFromFilename(filename)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if len(data) == 0 {
		tracing.TraceErr(span, mperrors.ErrEmptyUpload)
		return nil, mperrors.ErrEmptyUpload
	}

	var email *models.ParsedEmail
	switch format {
	case enum.EmailFormatEml:
		email, err = eml.Parse(data)
	case enum.EmailFormatMsg:
		email, err = msg.Parse(data)
	}
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	span.LogKV("attachments", len(email.Attachments), "html", email.HasHTMLBody())
	return email, nil
}

// FormatFromFilename maps a filename to a supported email format.
func FormatFromFilename(filename string) (enum.EmailFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case enum.EmailFormatEml.Extension():
		return enum.EmailFormatEml, nil
	case enum.EmailFormatMsg.Extension():
		return enum.EmailFormatMsg, nil
	default:
		return "", errors.Wrapf(mperrors.ErrUnsupportedFormat, "file %q", filename)
	}
}
