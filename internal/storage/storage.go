package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/blogcraft/blogcraft/internal/config"
)

// Storage persists uploaded files and returns a URL clients can load them
// from.
type Storage interface {
	Store(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// New builds the storage backend selected by configuration.
func New(cfg config.Config) (Storage, error) {
	switch cfg.StorageBackend {
	case "local":
		return NewLocal(cfg.LocalStoragePath)
	case "s3":
		return NewS3(cfg.S3Region, cfg.S3Bucket)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
