package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/eisenhub/catalog/modules/catalog/domain/entities/asset"
	"github.com/eisenhub/catalog/modules/catalog/domain/entities/document"
	"github.com/eisenhub/catalog/modules/catalog/domain/entities/taxonomy"
	"github.com/eisenhub/catalog/modules/catalog/infrastructure/persistence/models"
	"github.com/eisenhub/catalog/pkg/composables"
	"github.com/eisenhub/catalog/pkg/mapping"
)

var (
	ErrDocumentNotFound = fmt.Errorf("document not found")
)

const (
	documentFindQuery = `
		SELECT id, tenant_id, collection_id, title, description, status, version, sort_order,
		       link_refs, file_refs, is_active, created_by, updated_by, created_at, updated_at
		FROM catalog_documents`

	documentInsertQuery = `
		INSERT INTO catalog_documents (
			tenant_id, collection_id, title, description, status, version, sort_order,
			link_refs, file_refs, is_active, created_by, updated_by, created_at, updated_at
		)
		VALUES (
			$1, $2, $3, $4, $5, $6,
			(
				SELECT COALESCE(MAX(sort_order), 0) + 1
				FROM catalog_documents
				WHERE tenant_id = $1 AND collection_id = $2
			),
			$7, $8, TRUE, $9, $9, NOW(), NOW()
		)
		RETURNING id`

	taxonomyLinkInsertQuery = `
		INSERT INTO catalog_document_taxonomy_links (document_id, taxonomy_value_id, dimension, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, NOW(), NOW())`

	assetLinkInsertQuery = `
		INSERT INTO catalog_document_asset_links (document_id, asset_id, kind, is_active, created_at, updated_at)
		SELECT $1, $2, $3, TRUE, NOW(), NOW()
		WHERE NOT EXISTS (
			SELECT 1 FROM catalog_document_asset_links
			WHERE document_id = $1 AND asset_id = $2 AND is_active
		)`
)

type DocumentRepository struct{}

func NewDocumentRepository() document.Repository {
	return &DocumentRepository{}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *document.Document) (*document.Document, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var id uint
	if err := tx.QueryRow(
		ctx,
		documentInsertQuery,
		doc.TenantID().String(),
		doc.CollectionID(),
		doc.Title(),
		mapping.ValueToSQLNullString(doc.Description()),
		string(doc.Status()),
		doc.Version(),
		mapping.ValueToSQLNullString(doc.LinkRefs()),
		mapping.ValueToSQLNullString(doc.FileRefs()),
		doc.CreatedBy(),
	).Scan(&id); err != nil {
		return nil, errors.Wrap(err, "failed to insert document")
	}

	return r.GetByID(ctx, id)
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uint) (*document.Document, error) {
	query := documentFindQuery + " WHERE id = $1"
	docs, err := r.queryDocuments(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrDocumentNotFound
	}
	return docs[0], nil
}

func (r *DocumentRepository) ListActive(ctx context.Context, collectionID uint) ([]*document.Document, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	query := documentFindQuery + " WHERE tenant_id = $1 AND collection_id = $2 AND is_active ORDER BY id"
	return r.queryDocuments(ctx, query, tenantID.String(), collectionID)
}

func (r *DocumentRepository) LinkTaxonomy(ctx context.Context, documentID uint, value *taxonomy.Value) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, taxonomyLinkInsertQuery, documentID, value.ID(), value.Dimension().String())
	return errors.Wrap(err, "failed to link taxonomy value")
}

func (r *DocumentRepository) LinkAsset(ctx context.Context, documentID uint, assetID uint, kind asset.Kind) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, assetLinkInsertQuery, documentID, assetID, string(kind))
	return errors.Wrap(err, "failed to link asset")
}

func (r *DocumentRepository) LinkedAssetIDs(ctx context.Context, documentID uint, kind asset.Kind) ([]uint, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(
		ctx,
		`SELECT asset_id FROM catalog_document_asset_links WHERE document_id = $1 AND kind = $2 AND is_active ORDER BY asset_id`,
		documentID,
		string(kind),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list linked assets")
	}
	defer rows.Close()

	var ids []uint
	for rows.Next() {
		var id uint
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "failed to scan asset link row")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *DocumentRepository) queryDocuments(ctx context.Context, query string, args ...interface{}) ([]*document.Document, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var docs []*document.Document
	for rows.Next() {
		var m models.Document
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.CollectionID,
			&m.Title,
			&m.Description,
			&m.Status,
			&m.Version,
			&m.SortOrder,
			&m.LinkRefs,
			&m.FileRefs,
			&m.IsActive,
			&m.CreatedBy,
			&m.UpdatedBy,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan document row")
		}
		docs = append(docs, toDomainDocument(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return docs, nil
}
