package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"github.com/eisenhub/catalog/modules/catalog/domain/entities/taxonomy"
	"github.com/eisenhub/catalog/modules/catalog/infrastructure/persistence/models"
	"github.com/eisenhub/catalog/pkg/composables"
	"github.com/eisenhub/catalog/pkg/mapping"
	"github.com/eisenhub/catalog/pkg/repo"
)

var (
	ErrValueNotFound = fmt.Errorf("taxonomy value not found")
)

const (
	taxonomyFindQuery = `
		SELECT id, tenant_id, collection_id, dimension, name, description, sort_order, parent_id,
		       is_active, created_by, updated_by, created_at, updated_at
		FROM catalog_taxonomy_values`

	// Sort order is allocated inside the insert so concurrent creations in
	// the same scope serialize on the partial unique index instead of a
	// read-modify-write race.
	taxonomyInsertQuery = `
		INSERT INTO catalog_taxonomy_values (
			tenant_id, collection_id, dimension, name, description, sort_order, parent_id,
			is_active, created_by, updated_by, created_at, updated_at
		)
		VALUES (
			$1, $2, $3, $4, $5,
			(
				SELECT COALESCE(MAX(sort_order), 0) + 1
				FROM catalog_taxonomy_values
				WHERE tenant_id = $1 AND collection_id = $2 AND dimension = $3
				  AND parent_id IS NOT DISTINCT FROM $6
			),
			$6, TRUE, $7, $7, NOW(), NOW()
		)
		RETURNING id, sort_order, created_at, updated_at`
)

type TaxonomyRepository struct{}

func NewTaxonomyRepository() taxonomy.Repository {
	return &TaxonomyRepository{}
}

func (r *TaxonomyRepository) GetOrCreate(ctx context.Context, scope taxonomy.Scope, name string) (*taxonomy.Value, error) {
	existing, err := r.GetByName(ctx, scope, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrValueNotFound) {
		return nil, err
	}

	created, err := r.create(ctx, scope, name)
	if err == nil {
		return created, nil
	}
	if repo.UniqueViolation(err) {
		// Lost the create race to a concurrent import; the winner's row is
		// the one to use.
		return r.GetByName(ctx, scope, name)
	}
	return nil, err
}

func (r *TaxonomyRepository) GetByName(ctx context.Context, scope taxonomy.Scope, name string) (*taxonomy.Value, error) {
	query := taxonomyFindQuery + `
		WHERE tenant_id = $1 AND collection_id = $2 AND dimension = $3 AND name = $4
		  AND parent_id IS NOT DISTINCT FROM $5 AND is_active`
	values, err := r.queryValues(
		ctx,
		query,
		scope.TenantID.String(),
		scope.CollectionID,
		scope.Dimension.String(),
		name,
		mapping.UintPointerToSQLNullInt64(scope.ParentID),
	)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrValueNotFound
	}
	return values[0], nil
}

func (r *TaxonomyRepository) ListActive(ctx context.Context, collectionID uint, dimension taxonomy.Dimension) ([]*taxonomy.Value, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	query := taxonomyFindQuery + `
		WHERE tenant_id = $1 AND collection_id = $2 AND dimension = $3 AND is_active
		ORDER BY sort_order`
	return r.queryValues(ctx, query, tenantID.String(), collectionID, dimension.String())
}

func (r *TaxonomyRepository) create(ctx context.Context, scope taxonomy.Scope, name string) (*taxonomy.Value, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	userID, _ := composables.UseUserID(ctx)

	entity := taxonomy.New(scope.Dimension, name,
		taxonomy.WithTenantID(scope.TenantID),
		taxonomy.WithCollectionID(scope.CollectionID),
		taxonomy.WithParentID(scope.ParentID),
		taxonomy.WithCreatedBy(userID),
	)

	var (
		id                   uint
		sortOrder            int
		createdAt, updatedAt time.Time
	)
	row := tx.QueryRow(
		ctx,
		taxonomyInsertQuery,
		scope.TenantID.String(),
		scope.CollectionID,
		scope.Dimension.String(),
		name,
		mapping.ValueToSQLNullString(entity.Description()),
		mapping.UintPointerToSQLNullInt64(scope.ParentID),
		userID,
	)
	if err := row.Scan(&id, &sortOrder, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return taxonomy.New(scope.Dimension, name,
		taxonomy.WithID(id),
		taxonomy.WithTenantID(scope.TenantID),
		taxonomy.WithCollectionID(scope.CollectionID),
		taxonomy.WithParentID(scope.ParentID),
		taxonomy.WithSortOrder(sortOrder),
		taxonomy.WithCreatedBy(userID),
		taxonomy.WithCreatedAt(createdAt),
		taxonomy.WithUpdatedAt(updatedAt),
	), nil
}

func (r *TaxonomyRepository) queryValues(ctx context.Context, query string, args ...interface{}) ([]*taxonomy.Value, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var values []*taxonomy.Value
	for rows.Next() {
		var m models.TaxonomyValue
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.CollectionID,
			&m.Dimension,
			&m.Name,
			&m.Description,
			&m.SortOrder,
			&m.ParentID,
			&m.IsActive,
			&m.CreatedBy,
			&m.UpdatedBy,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan taxonomy value row")
		}
		values = append(values, toDomainTaxonomyValue(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return values, nil
}
