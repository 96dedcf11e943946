// Package storage abstracts where uploaded files (transaction receipts,
// avatars) are kept.
package storage

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrEmptyFile is returned when an upload has no content.
	ErrEmptyFile = errors.New("file is empty")
	// ErrTooLarge is returned when an upload exceeds the size limit.
	ErrTooLarge = errors.New("file too large")
	// ErrUnsupportedType is returned when an upload's content type is not
	// allowed.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Uploader stores files under a bucket and names them.
type Uploader interface {
	// Upload writes the content under bucket/name and returns the public URL
	// of the stored object.
	Upload(ctx context.Context, bucket, name string, contentType string, content io.Reader) (string, error)

	// Remove deletes the object stored under bucket/name. Removing an object
	// that does not exist is not an error.
	Remove(ctx context.Context, bucket, name string) error
}
