package models

import (
	"path/filepath"
	"strings"

	"github.com/customeros/mailpdf/internal/enum"
	"github.com/customeros/mailpdf/internal/utils"
)

type Attachment struct {
	Name      string
	MimeType  string
	ContentID *string
	Data      []byte
	Kind      enum.AttachmentKind
}

// NewAttachment builds an attachment and classifies it by name and MIME type.
func NewAttachment(name, mimeType, contentID string, data []byte) *Attachment {
	att := &Attachment{
		Name:     name,
		MimeType: strings.ToLower(strings.TrimSpace(mimeType)),
		Data:     data,
	}
	if cid := utils.NormalizeContentID(contentID); cid != "" {
		att.ContentID = &cid
	}
	att.Kind = ClassifyAttachment(att.Name, att.MimeType)
	return att
}

// CID returns the content-id or an empty string.
func (a *Attachment) CID() string {
	return utils.GetOrDefault(a.ContentID, "")
}

// Extension returns the lower-cased file extension including the dot. A
// name without one falls back to the extension of the MIME type.
func (a *Attachment) Extension() string {
	return attachmentExtension(a.Name, a.MimeType)
}

func attachmentExtension(name, mimeType string) string {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		return ext
	}
	if mimeType == "" {
		return ""
	}
	if ext := utils.GetFileExtensionFromContentType(mimeType); ext != "bin" {
		return "." + ext
	}
	return ""
}

// ClassifyAttachment decides how an attachment is handled downstream.
func ClassifyAttachment(name, mimeType string) enum.AttachmentKind {
	mimeType = strings.ToLower(mimeType)
	ext := attachmentExtension(name, mimeType)

	switch {
	case strings.HasPrefix(mimeType, "image/"), utils.IsImageExtension(ext):
		return enum.AttachmentImage
	case mimeType == "application/pdf", ext == ".pdf":
		return enum.AttachmentPdf
	case utils.DocumentFamilyForExtension(ext) != enum.DocumentNone:
		return enum.AttachmentConvertibleDocument
	default:
		return enum.AttachmentUnsupported
	}
}
