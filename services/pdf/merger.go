package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pkg/errors"

	mperrors "github.com/customeros/mailpdf/internal/errors"
	"github.com/customeros/mailpdf/internal/logger"
	"github.com/customeros/mailpdf/internal/models"
	"github.com/customeros/mailpdf/internal/tracing"
)

func init() {
	// pdfcpu would otherwise create a config dir under the user's home
	api.DisableConfigDir()
}

type PdfcpuMerger struct {
	log logger.Logger
}

func NewPdfcpuMerger(log logger.Logger) *PdfcpuMerger {
	return &PdfcpuMerger{log: log}
}

func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Merge concatenates docs in order. The first document is the email body
// and must be valid; later documents that pdfcpu cannot read are skipped.
// A single document is returned unchanged.
func (m *PdfcpuMerger) Merge(ctx context.Context, docs models.MergedOutput) ([]byte, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "PdfcpuMerger.Merge")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("documents", len(docs))

	if len(docs) == 0 {
		err := errors.Wrap(mperrors.ErrMergeFailed, "no documents")
		tracing.TraceErr(span, err)
		return nil, err
	}
	if len(docs) == 1 {
		return docs[0].PDF, nil
	}

	if _, err := m.PageCount(docs[0].PDF); err != nil {
		err = errors.Wrapf(mperrors.ErrMergeFailed, "body document: %v", err)
		tracing.TraceErr(span, err)
		return nil, err
	}

	readers := []io.ReadSeeker{bytes.NewReader(docs[0].PDF)}
	for _, doc := range docs[1:] {
		if _, err := m.PageCount(doc.PDF); err != nil {
			m.log.Warnf("Skipping unreadable PDF %q: %v", doc.Name, err)
			continue
		}
		readers = append(readers, bytes.NewReader(doc.PDF))
	}
	if len(readers) == 1 {
		return docs[0].PDF, nil
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, newConfiguration()); err != nil {
		err = errors.Wrap(mperrors.ErrMergeFailed, err.Error())
		tracing.TraceErr(span, err)
		return nil, err
	}

	span.LogKV("merged", len(readers), "size", out.Len())
	return out.Bytes(), nil
}

// PageCount returns the number of pages of a PDF.
func (m *PdfcpuMerger) PageCount(pdf []byte) (int, error) {
	if len(pdf) == 0 {
		return 0, errors.New("empty document")
	}
	return api.PageCount(bytes.NewReader(pdf), newConfiguration())
}
