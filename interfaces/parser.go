package interfaces

import (
	"context"

	"github.com/customeros/mailpdf/internal/models"
)

type EmailParser interface {
	Parse(ctx context.Context, filename string, data []byte) (*models.ParsedEmail, error)
}
