package taxonomy

import "context"

type Repository interface {
	// GetOrCreate resolves name within scope, creating the value with the
	// next sort order when absent. Matching is exact-string and
	// case-sensitive. The create path must survive concurrent imports:
	// a unique-constraint loss is retried as a lookup.
	GetOrCreate(ctx context.Context, scope Scope, name string) (*Value, error)

	// GetByName returns the active value matching name within scope, or
	// ErrValueNotFound.
	GetByName(ctx context.Context, scope Scope, name string) (*Value, error)

	// ListActive returns the active values of one dimension within a
	// collection, sorted by sort order ascending.
	ListActive(ctx context.Context, collectionID uint, dimension Dimension) ([]*Value, error)
}
