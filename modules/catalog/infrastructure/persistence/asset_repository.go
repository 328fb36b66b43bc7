package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/eisenhub/catalog/modules/catalog/domain/entities/asset"
	"github.com/eisenhub/catalog/modules/catalog/infrastructure/persistence/models"
	"github.com/eisenhub/catalog/pkg/composables"
	"github.com/eisenhub/catalog/pkg/mapping"
)

var (
	ErrAssetNotFound = fmt.Errorf("asset not found")
)

const (
	assetFindQuery = `
		SELECT id, tenant_id, kind, external_id, name, description, path, url, file_type,
		       is_active, created_by, updated_by, created_at, updated_at
		FROM catalog_assets`

	assetInsertQuery = `
		INSERT INTO catalog_assets (
			tenant_id, kind, external_id, name, description, path, url, file_type,
			is_active, created_by, updated_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, $9, $9, NOW(), NOW())
		RETURNING id`

	assetUpdateQuery = `
		UPDATE catalog_assets
		SET name = $1, description = $2, path = $3, url = $4, file_type = $5, updated_by = $6, updated_at = NOW()
		WHERE id = $7`
)

type AssetRepository struct{}

func NewAssetRepository() asset.Repository {
	return &AssetRepository{}
}

func (r *AssetRepository) GetByExternalID(ctx context.Context, kind asset.Kind, externalID string) (*asset.Asset, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	query := assetFindQuery + " WHERE tenant_id = $1 AND kind = $2 AND external_id = $3 AND is_active"
	assets, err := r.queryAssets(ctx, query, tenantID.String(), string(kind), externalID)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, ErrAssetNotFound
	}
	return assets[0], nil
}

func (r *AssetRepository) GetByID(ctx context.Context, id uint) (*asset.Asset, error) {
	query := assetFindQuery + " WHERE id = $1"
	assets, err := r.queryAssets(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, ErrAssetNotFound
	}
	return assets[0], nil
}

// SaveBatch writes one batch in a single transaction. Any failure rolls the
// whole batch back and surfaces the error; earlier batches stay committed.
func (r *AssetRepository) SaveBatch(ctx context.Context, toInsert, toUpdate []*asset.Asset) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return err
		}

		for _, a := range toInsert {
			if err := tx.QueryRow(
				txCtx,
				assetInsertQuery,
				a.TenantID().String(),
				string(a.Kind()),
				a.ExternalID(),
				mapping.ValueToSQLNullString(a.Name()),
				mapping.ValueToSQLNullString(a.Description()),
				mapping.ValueToSQLNullString(a.Path()),
				mapping.ValueToSQLNullString(a.URL()),
				mapping.ValueToSQLNullString(a.FileType()),
				a.CreatedBy(),
			).Scan(new(uint)); err != nil {
				return errors.Wrapf(err, "failed to insert asset %q", a.ExternalID())
			}
		}

		for _, a := range toUpdate {
			if _, err := tx.Exec(
				txCtx,
				assetUpdateQuery,
				mapping.ValueToSQLNullString(a.Name()),
				mapping.ValueToSQLNullString(a.Description()),
				mapping.ValueToSQLNullString(a.Path()),
				mapping.ValueToSQLNullString(a.URL()),
				mapping.ValueToSQLNullString(a.FileType()),
				a.UpdatedBy(),
				a.ID(),
			); err != nil {
				return errors.Wrapf(err, "failed to update asset %q", a.ExternalID())
			}
		}

		return nil
	})
}

func (r *AssetRepository) queryAssets(ctx context.Context, query string, args ...interface{}) ([]*asset.Asset, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var assets []*asset.Asset
	for rows.Next() {
		var m models.Asset
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.Kind,
			&m.ExternalID,
			&m.Name,
			&m.Description,
			&m.Path,
			&m.URL,
			&m.FileType,
			&m.IsActive,
			&m.CreatedBy,
			&m.UpdatedBy,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan asset row")
		}
		assets = append(assets, toDomainAsset(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return assets, nil
}
