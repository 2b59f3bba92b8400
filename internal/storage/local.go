package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes objects into a directory on disk. The API serves that
// directory under /files/ so development needs no bucket.
type LocalStorage struct {
	dir        string
	publicBase string
}

// NewLocalStorage creates dir if needed.
func NewLocalStorage(dir, publicBase string) (*LocalStorage, error) {
	if dir == "" {
		return nil, errors.New("local storage dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{dir: dir, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

// Dir is the directory objects are written to.
func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) Put(ctx context.Context, key, path, contentType string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open staged file: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create object %q: %w", key, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("write object %q: %w", key, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("write object %q: %w", key, err)
	}
	return ctx.Err()
}

func (s *LocalStorage) MakePublic(ctx context.Context, key string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}
	return os.Chmod(target, 0o644)
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

func (s *LocalStorage) BaseURL() string {
	return s.publicBase
}

func (s *LocalStorage) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}
