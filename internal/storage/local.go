package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local writes media files under a directory that the HTTP server exposes at
// /media.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Save(_ context.Context, objectKey string, r io.Reader, _ int64, _ string) (string, error) {
	path := filepath.Join(l.dir, objectKey)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", err
	}
	return "/media/" + objectKey, nil
}

func (l *Local) Delete(_ context.Context, objectKey string) error {
	err := os.Remove(filepath.Join(l.dir, objectKey))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
