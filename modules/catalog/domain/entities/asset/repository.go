package asset

import (
	"context"
	"io"
)

type Repository interface {
	// GetByExternalID returns the active asset carrying the business key, or
	// ErrAssetNotFound.
	GetByExternalID(ctx context.Context, kind Kind, externalID string) (*Asset, error)

	// GetByID returns the asset by storage id, or ErrAssetNotFound.
	GetByID(ctx context.Context, id uint) (*Asset, error)

	// SaveBatch inserts and updates the given assets in one transaction.
	// On error the whole batch is rolled back; the caller keeps its buffers.
	SaveBatch(ctx context.Context, toInsert, toUpdate []*Asset) error
}

// Storage is the opaque blob store the document viewer downloads from.
type Storage interface {
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Save(ctx context.Context, path string, r io.Reader) error
}
