package interfaces

import (
	"context"

	"github.com/customeros/mailpdf/internal/models"
)

// AttachmentConverter turns a convertible attachment into a PDF. It reports
// false instead of failing when the attachment cannot be converted.
type AttachmentConverter interface {
	Convert(ctx context.Context, attachment *models.Attachment) ([]byte, bool)
}
