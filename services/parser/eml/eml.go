package eml

import (
	"bytes"
	"strings"

	"github.com/jhillyerd/enmime"
	"github.com/pkg/errors"

	"github.com/customeros/mailpdf/internal/enum"
	mperrors "github.com/customeros/mailpdf/internal/errors"
	"github.com/customeros/mailpdf/internal/models"
	"github.com/customeros/mailpdf/internal/utils"
)

// Parse reads an RFC 5322 message. Attachments are returned in the order
// their parts appear in the MIME tree.
func Parse(data []byte) (*models.ParsedEmail, error) {
	envelope, err := enmime.ReadEnvelope(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(mperrors.ErrInvalidMessage, err.Error())
	}

	email := &models.ParsedEmail{
		Format:    enum.EmailFormatEml,
		Sender:    envelope.GetHeader("From"),
		Recipient: envelope.GetHeader("To"),
		Subject:   envelope.GetHeader("Subject"),
		BodyHTML:  utils.StringPtrNonEmpty(envelope.HTML),
		BodyText:  utils.StringPtrNonEmpty(envelope.Text),
	}

	for _, part := range attachmentParts(envelope) {
		email.Attachments = append(email.Attachments, models.NewAttachment(
			partName(part),
			part.ContentType,
			part.ContentID,
			part.Content,
		))
	}
	return email, nil
}

// attachmentParts walks the part tree depth first and keeps the parts enmime
// filed as attachments, inlines or other parts.
func attachmentParts(envelope *enmime.Envelope) []*enmime.Part {
	wanted := make(map[*enmime.Part]struct{})
	for _, group := range [][]*enmime.Part{envelope.Attachments, envelope.Inlines, envelope.OtherParts} {
		for _, p := range group {
			if !isBodyPart(p) {
				wanted[p] = struct{}{}
			}
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	parts := make([]*enmime.Part, 0, len(wanted))
	var walk func(p *enmime.Part)
	walk = func(p *enmime.Part) {
		for ; p != nil; p = p.NextSibling {
			if _, ok := wanted[p]; ok {
				parts = append(parts, p)
				delete(wanted, p)
			}
			walk(p.FirstChild)
		}
	}
	walk(envelope.Root)

	// parts enmime detached from the tree keep their list order
	for _, group := range [][]*enmime.Part{envelope.Attachments, envelope.Inlines, envelope.OtherParts} {
		for _, p := range group {
			if _, ok := wanted[p]; ok {
				parts = append(parts, p)
				delete(wanted, p)
			}
		}
	}
	return parts
}

// isBodyPart reports whether p is an unnamed text part, which enmime lists
// under other parts when it sits inside multipart/related.
func isBodyPart(p *enmime.Part) bool {
	if p.FileName != "" || p.Disposition == "attachment" {
		return false
	}
	switch strings.ToLower(p.ContentType) {
	case "text/html", "text/plain":
		return true
	}
	return false
}

func partName(p *enmime.Part) string {
	if p.FileName != "" {
		return p.FileName
	}
	name := "attachment"
	if cid := utils.NormalizeContentID(p.ContentID); cid != "" {
		name = utils.SanitizeFilename(cid)
	}
	return name + "." + utils.GetFileExtensionFromContentType(p.ContentType)
}
