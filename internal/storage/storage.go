// Package storage defines the interface for object storage operations and the
// Uploader that moves staged image bytes into a bucket.
// Swap implementations by changing STORAGE_DRIVER: s3 talks to AWS (or any
// S3-compatible endpoint) through aws-sdk-go-v2, minio uses minio-go, local
// writes into a directory served by the API itself.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/songshare/service/internal/config"
)

// ErrUpload is returned when an object could not be staged or uploaded.
var ErrUpload = errors.New("could not upload image")

// Storage is the interface for uploading and removing objects.
type Storage interface {
	// Put uploads the local file at path under key.
	Put(ctx context.Context, key, path, contentType string) error
	// MakePublic grants anonymous read access to key.
	MakePublic(ctx context.Context, key string) error
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
	// BaseURL is the browser-accessible prefix every key is served under.
	BaseURL() string
}

// New builds the backend selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case config.StorageDriverS3:
		return NewS3Storage(ctx, cfg)
	case config.StorageDriverMinio:
		return NewMinioStorage(ctx, cfg)
	case config.StorageDriverLocal:
		return NewLocalStorage(cfg.LocalDir, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
