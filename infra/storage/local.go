// Package storage implements file storage on the local filesystem.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/granafacil/financeiro/pkg/config"
	"github.com/granafacil/financeiro/pkg/storage"
)

// MaxUploadSize caps uploads at 5 MiB.
const MaxUploadSize = 5 << 20

var allowedContentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Local stores uploads under a directory on disk and serves them from a
// base URL.
type Local struct {
	dir     string
	baseURL string
}

// NewLocal creates a Local uploader from the storage config.
func NewLocal(cfg config.Storage) *Local {
	return &Local{dir: cfg.Dir, baseURL: strings.TrimSuffix(cfg.BaseURL, "/")}
}

// Upload implements storage.Uploader.
func (l *Local) Upload(ctx context.Context, bucket, name, contentType string, content io.Reader) (string, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return "", storage.ErrUnsupportedType
	}
	if filepath.Ext(name) == "" {
		name += ext
	}

	dir := filepath.Join(l.dir, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(content, MaxUploadSize+1))
	if err != nil {
		os.Remove(f.Name())
		return "", err
	}
	if n == 0 {
		os.Remove(f.Name())
		return "", storage.ErrEmptyFile
	}
	if n > MaxUploadSize {
		os.Remove(f.Name())
		return "", storage.ErrTooLarge
	}

	return fmt.Sprintf("%s/%s/%s", l.baseURL, bucket, name), nil
}

// Remove implements storage.Uploader.
func (l *Local) Remove(ctx context.Context, bucket, name string) error {
	err := os.Remove(filepath.Join(l.dir, bucket, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
