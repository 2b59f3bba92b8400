package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/songshare/service/internal/logging"
)

// Uploader stages bytes on local disk, pushes them to a Storage backend and
// makes the result publicly readable. Staged files never outlive Upload.
type Uploader struct {
	store      Storage
	stagingDir string
	timeout    time.Duration
}

// NewUploader creates the staging directory if needed.
func NewUploader(store Storage, stagingDir string, timeout time.Duration) (*Uploader, error) {
	if err := os.MkdirAll(stagingDir, 0o700); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &Uploader{store: store, stagingDir: stagingDir, timeout: timeout}, nil
}

// Upload stores data under filename and returns its public URL. The remote
// transfer is bounded by the uploader timeout. Every failure wraps ErrUpload.
func (u *Uploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	log := logging.FromContext(ctx).With(zap.String("object", filename))

	path, err := u.stage(filename, data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn("remove staged file", zap.String("path", path), zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	contentType := mimetype.Detect(data).String()
	if err := u.store.Put(ctx, filename, path, contentType); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}
	if err := u.store.MakePublic(ctx, filename); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}

	log.Debug("object uploaded", zap.String("content_type", contentType), zap.Int("bytes", len(data)))
	return u.URL(filename), nil
}

// Remove deletes a previously uploaded object.
func (u *Uploader) Remove(ctx context.Context, filename string) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	return u.store.Delete(ctx, filename)
}

// BaseURL is the prefix returned URLs are built on.
func (u *Uploader) BaseURL() string {
	return u.store.BaseURL()
}

// URL joins the base URL and filename.
func (u *Uploader) URL(filename string) string {
	return strings.TrimRight(u.store.BaseURL(), "/") + "/" + filename
}

// stage writes data to a fresh file named after filename. Creation is
// exclusive so two requests can never share a staging path.
func (u *Uploader) stage(filename string, data []byte) (string, error) {
	if filename == "" || strings.ContainsAny(filename, `/\`) {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	path := filepath.Join(u.stagingDir, filename)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write staged file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close staged file: %w", err)
	}
	return path, nil
}
