package ports

import (
	"context"
	"errors"
)

var ErrBlobNotFound = errors.New("blob not found")

type BlobStorage interface {
	EnsureLocation(ctx context.Context, owner string) error
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
