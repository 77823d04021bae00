package interfaces

import (
	"context"

	"github.com/customeros/mailpdf/internal/models"
)

type Renderer interface {
	Render(ctx context.Context, html string, setup models.PageSetup) ([]byte, error)
}

type Merger interface {
	Merge(ctx context.Context, docs models.MergedOutput) ([]byte, error)
	PageCount(pdf []byte) (int, error)
}
