package email_html

import (
	"encoding/base64"
	"strings"

	"github.com/customeros/mailpdf/internal/enum"
	"github.com/customeros/mailpdf/internal/models"
	"github.com/customeros/mailpdf/internal/utils"
)

const defaultImageMimeType = "image/png"

// EmbedInlineImages replaces cid: references with data URIs built from the
// matching image attachments. References without a match are left as-is.
// When two images share a content-id the first one wins.
func EmbedInlineImages(document string, attachments []*models.Attachment) string {
	for _, att := range attachments {
		if att.Kind != enum.AttachmentImage || len(att.Data) == 0 {
			continue
		}
		cid := att.CID()
		if cid == "" {
			continue
		}
		document = replaceReference(document, "cid:"+cid, func() string {
			return DataURI(imageMimeType(att), att.Data)
		})
	}
	return document
}

// replaceReference replaces every occurrence of ref that is not followed by
// another content-id character, so cid:img1 leaves cid:img10 alone.
func replaceReference(document, ref string, replacement func() string) string {
	var (
		sb      strings.Builder
		encoded string
		start   int
	)
	for {
		idx := strings.Index(document[start:], ref)
		if idx < 0 {
			break
		}
		end := start + idx + len(ref)
		if end < len(document) && isContentIDChar(document[end]) {
			sb.WriteString(document[start:end])
			start = end
			continue
		}
		if encoded == "" {
			encoded = replacement()
		}
		sb.WriteString(document[start : start+idx])
		sb.WriteString(encoded)
		start = end
	}
	if encoded == "" {
		return document
	}
	sb.WriteString(document[start:])
	return sb.String()
}

// isContentIDChar reports whether c can continue a content-id: letters,
// digits, the dot and at sign, and the atext symbols that do not delimit
// HTML or CSS values.
func isContentIDChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte(".@-_%+=$~!#^*{}|`", c) >= 0
}

// DataURI encodes data as a base64 data URI.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func imageMimeType(att *models.Attachment) string {
	if att.MimeType != "" {
		return att.MimeType
	}
	if byExt := utils.GetContentTypeFromExtension(att.Extension()); strings.HasPrefix(byExt, "image/") {
		return byExt
	}
	return defaultImageMimeType
}
