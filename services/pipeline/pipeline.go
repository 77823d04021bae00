package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/mailpdf/interfaces"
	"github.com/customeros/mailpdf/internal/enum"
	"github.com/customeros/mailpdf/internal/logger"
	"github.com/customeros/mailpdf/internal/models"
	"github.com/customeros/mailpdf/internal/tracing"
	"github.com/customeros/mailpdf/internal/utils"
	"github.com/customeros/mailpdf/services/email_html"
)

type Config struct {
	// MergeAttachments appends attachment renditions after the body.
	MergeAttachments bool
}

type Result struct {
	PDF       []byte
	Filename  string
	Documents int
}

// Pipeline converts one uploaded email into one PDF.
type Pipeline struct {
	cfg       Config
	parser    interfaces.EmailParser
	renderer  interfaces.Renderer
	converter interfaces.AttachmentConverter
	merger    interfaces.Merger
	log       logger.Logger
}

func New(cfg Config, parser interfaces.EmailParser, renderer interfaces.Renderer, converter interfaces.AttachmentConverter, merger interfaces.Merger, log logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		parser:    parser,
		renderer:  renderer,
		converter: converter,
		merger:    merger,
		log:       log,
	}
}

// BuildHTML returns the document that is printed for the email body.
func (p *Pipeline) BuildHTML(email *models.ParsedEmail) string {
	document := email_html.DeclareUTF8(email_html.ResolveBody(email))
	document = email_html.EmbedInlineImages(document, email.Attachments)
	return email_html.InjectStylesheet(document)
}

func (p *Pipeline) Convert(ctx context.Context, filename string, data []byte) (*Result, error) {
	ctx = utils.SetFileNameInContext(ctx, filename)
	span, ctx := opentracing.StartSpanFromContext(ctx, "Pipeline.Convert")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("mergeAttachments", p.cfg.MergeAttachments, "size", len(data))

	email, err := p.parser.Parse(ctx, filename, data)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "parse email")
	}
	tracing.LogObjectAsJson(span, "attachments", attachmentSummary(email))

	body, err := p.renderer.Render(ctx, p.BuildHTML(email), models.BodyPage)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "render email body")
	}

	docs := models.MergedOutput{{Name: filename, PDF: body}}
	if p.cfg.MergeAttachments {
		docs = append(docs, p.attachmentDocuments(ctx, email.Attachments)...)
	}

	pdf := body
	if len(docs) > 1 {
		pdf, err = p.merger.Merge(ctx, docs)
		if err != nil {
			tracing.TraceErr(span, err)
			return nil, errors.Wrap(err, "merge documents")
		}
	}

	p.log.Infof("Converted %s: %d attachments, %d documents, %d bytes", filename, len(email.Attachments), len(docs), len(pdf))
	return &Result{
		PDF:       pdf,
		Filename:  OutputFilename(filename),
		Documents: len(docs),
	}, nil
}

// attachmentDocuments returns the PDF renditions of the attachments in
// source order. Images are already inlined in the body.
func (p *Pipeline) attachmentDocuments(ctx context.Context, attachments []*models.Attachment) models.MergedOutput {
	var docs models.MergedOutput
	for _, att := range attachments {
		switch att.Kind {
		case enum.AttachmentImage:
			continue
		case enum.AttachmentPdf:
			docs = append(docs, models.RenderedDocument{Name: att.Name, PDF: att.Data})
		case enum.AttachmentConvertibleDocument:
			pdf, ok := p.converter.Convert(ctx, att)
			if !ok {
				continue
			}
			docs = append(docs, models.RenderedDocument{Name: att.Name, PDF: pdf})
		default:
			p.log.Warnf("Skipping unsupported attachment %q (%s)", att.Name, att.MimeType)
		}
	}
	return docs
}

// attachmentSummary counts the attachments per kind.
func attachmentSummary(email *models.ParsedEmail) map[string]int {
	summary := make(map[string]int)
	for _, kind := range []enum.AttachmentKind{
		enum.AttachmentImage,
		enum.AttachmentPdf,
		enum.AttachmentConvertibleDocument,
		enum.AttachmentUnsupported,
	} {
		summary[kind.String()] = len(email.AttachmentsOfKind(kind))
	}
	return summary
}

// OutputFilename returns the upload's base name with a .pdf extension.
func OutputFilename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return utils.SanitizeFilename(base) + ".pdf"
}
