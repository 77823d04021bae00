package models

import (
	"github.com/customeros/mailpdf/internal/enum"
)

// ParsedEmail is the uniform shape both email readers produce. It is not
// modified after parsing; derived HTML is built from it, never written back.
type ParsedEmail struct {
	Format      enum.EmailFormat
	Sender      string
	Recipient   string
	Subject     string
	BodyHTML    *string
	BodyText    *string
	Attachments []*Attachment
}

// HasHTMLBody reports whether a non-empty HTML body is available.
func (e *ParsedEmail) HasHTMLBody() bool {
	return e.BodyHTML != nil && *e.BodyHTML != ""
}

// AttachmentsOfKind returns the attachments of the given kind in source order.
func (e *ParsedEmail) AttachmentsOfKind(kind enum.AttachmentKind) []*Attachment {
	var out []*Attachment
	for _, a := range e.Attachments {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// RenderedDocument holds the bytes of one rendered PDF.
type RenderedDocument struct {
	Name string
	PDF  []byte
}

// MergedOutput is the ordered list of documents that make up the final PDF:
// the email body first, then attachment renditions in source order.
type MergedOutput []RenderedDocument
