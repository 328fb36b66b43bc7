package document

import (
	"context"

	"github.com/eisenhub/catalog/modules/catalog/domain/entities/asset"
	"github.com/eisenhub/catalog/modules/catalog/domain/entities/taxonomy"
)

type Repository interface {
	// Create persists a new document, allocating the next sort order within
	// its collection, and returns it with id and sort order set.
	Create(ctx context.Context, doc *Document) (*Document, error)

	GetByID(ctx context.Context, id uint) (*Document, error)

	// ListActive returns the active documents of a collection ordered by id.
	ListActive(ctx context.Context, collectionID uint) ([]*Document, error)

	// LinkTaxonomy creates an active (document, taxonomy value) edge.
	LinkTaxonomy(ctx context.Context, documentID uint, value *taxonomy.Value) error

	// LinkAsset creates an active (document, asset) edge. Creating the same
	// edge twice is a no-op.
	LinkAsset(ctx context.Context, documentID uint, assetID uint, kind asset.Kind) error

	// LinkedAssetIDs returns the asset ids already linked to the document
	// for one asset kind.
	LinkedAssetIDs(ctx context.Context, documentID uint, kind asset.Kind) ([]uint, error)
}
