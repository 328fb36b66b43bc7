package persistence

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/eisenhub/catalog/modules/catalog/domain/entities/asset"
	"github.com/eisenhub/catalog/pkg/configuration"
)

type fsStorage struct {
	root string
}

// NewFSStorage stores blobs on the local filesystem, for development and
// tests.
func NewFSStorage() (asset.Storage, error) {
	root := configuration.Use().Blob.LocalPath
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &fsStorage{root: root}, nil
}

func (s *fsStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.root, filepath.Clean(path)))
}

func (s *fsStorage) Save(_ context.Context, path string, r io.Reader) error {
	full := filepath.Join(s.root, filepath.Clean(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	f, err := os.Create(full)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	_, err = io.Copy(f, r)
	return err
}
