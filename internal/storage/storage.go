// Package storage abstracts where uploaded media lives: a local directory in
// development, an S3-compatible bucket in production. The backend is picked
// from configuration at startup.
package storage

import (
	"context"
	"io"
)

// Storage saves and deletes media objects and hands back a URL clients can
// fetch the object from.
type Storage interface {
	Save(ctx context.Context, objectKey string, r io.Reader, size int64, contentType string) (url string, err error)
	Delete(ctx context.Context, objectKey string) error
}
