package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailpdf/internal/enum"
)

func TestClassifyAttachment(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		want     enum.AttachmentKind
	}{
		{"logo.png", "image/png", enum.AttachmentImage},
		{"photo", "image/jpeg", enum.AttachmentImage},
		{"scan.JPG", "application/octet-stream", enum.AttachmentImage},
		{"invoice.pdf", "application/octet-stream", enum.AttachmentPdf},
		{"report", "application/pdf", enum.AttachmentPdf},
		{"budget.xlsx", "", enum.AttachmentConvertibleDocument},
		{"deck.pptx", "", enum.AttachmentConvertibleDocument},
		{"letter.docx", "", enum.AttachmentConvertibleDocument},
		{"data.csv", "text/csv", enum.AttachmentConvertibleDocument},
		{"budget", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", enum.AttachmentConvertibleDocument},
		{"deck", "application/vnd.openxmlformats-officedocument.presentationml.presentation", enum.AttachmentConvertibleDocument},
		{"letter", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", enum.AttachmentConvertibleDocument},
		{"blob", "application/octet-stream", enum.AttachmentUnsupported},
		{"archive.zip", "application/zip", enum.AttachmentUnsupported},
		{"", "", enum.AttachmentUnsupported},
	}
	for _, tt := range tests {
		got := ClassifyAttachment(tt.name, tt.mimeType)
		assert.Equal(t, tt.want, got, "ClassifyAttachment(%q, %q)", tt.name, tt.mimeType)
	}
}

func TestNewAttachment_NormalizesContentID(t *testing.T) {
	att := NewAttachment("logo.png", " Image/PNG ", "<img1@example.com>", []byte{1, 2, 3})

	require.NotNil(t, att.ContentID)
	assert.Equal(t, "img1@example.com", att.CID())
	assert.Equal(t, "image/png", att.MimeType)
	assert.Equal(t, enum.AttachmentImage, att.Kind)
	assert.Equal(t, ".png", att.Extension())
}

func TestAttachment_ExtensionFromMimeType(t *testing.T) {
	att := NewAttachment("Quarterly numbers", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "", nil)
	assert.Equal(t, ".xlsx", att.Extension())
	assert.Equal(t, enum.AttachmentConvertibleDocument, att.Kind)

	named := NewAttachment("notes.DOCX", "application/octet-stream", "", nil)
	assert.Equal(t, ".docx", named.Extension())

	unknown := NewAttachment("blob", "application/octet-stream", "", nil)
	assert.Equal(t, "", unknown.Extension())
}

func TestNewAttachment_EmptyContentID(t *testing.T) {
	att := NewAttachment("doc.pdf", "application/pdf", "  ", nil)

	assert.Nil(t, att.ContentID)
	assert.Equal(t, "", att.CID())
}

func TestParsedEmail_AttachmentsOfKind(t *testing.T) {
	email := &ParsedEmail{
		Attachments: []*Attachment{
			NewAttachment("a.pdf", "application/pdf", "", nil),
			NewAttachment("b.png", "image/png", "", nil),
			NewAttachment("c.pdf", "application/pdf", "", nil),
		},
	}

	pdfs := email.AttachmentsOfKind(enum.AttachmentPdf)
	require.Len(t, pdfs, 2)
	assert.Equal(t, "a.pdf", pdfs[0].Name)
	assert.Equal(t, "c.pdf", pdfs[1].Name)
	assert.False(t, email.HasHTMLBody())
}
