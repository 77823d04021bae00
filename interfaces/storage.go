package interfaces

import (
	"context"
	"time"
)

type StoredObject struct {
	Key        string
	Size       int64
	ModifiedAt time.Time
}

type StorageService interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// List returns the stored objects. Backends that expire objects on
	// their own may return an empty list.
	List(ctx context.Context) ([]StoredObject, error)
}
