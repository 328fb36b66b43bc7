package query

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/eisenhub/catalog/modules/catalog/domain/entities/asset"
	"github.com/eisenhub/catalog/modules/catalog/domain/entities/taxonomy"
	"github.com/eisenhub/catalog/pkg/composables"
)

// TaxonomyCell is one resolved taxonomy annotation on a document row. Valid
// is false when the document has no active edge for that dimension.
type TaxonomyCell struct {
	ID        uint
	Name      string
	SortOrder int
	Valid     bool
}

// DocumentRow is the flat projection the tree aggregator consumes: one
// active document annotated with its first active value per dimension and
// the external ids of its linked assets.
type DocumentRow struct {
	ID          uint
	Description string
	Section     TaxonomyCell
	Stage       TaxonomyCell
	Client      TaxonomyCell
	Location    TaxonomyCell
	Area        TaxonomyCell
	Topic       TaxonomyCell
	Subtopic    TaxonomyCell
	Enforcement TaxonomyCell
	LinkIDs     []string
	FileIDs     []string
}

// StageRef is one entry of the canonical stage ordering.
type StageRef struct {
	ID        uint
	Name      string
	SortOrder int
}

type TreeQueryRepository interface {
	// StageOrder returns the collection's active stages sorted by sort
	// order; this is the canonical stage ordering for a whole tree response.
	StageOrder(ctx context.Context, collectionID uint) ([]StageRef, error)

	// DocumentRows returns every active document of the collection with its
	// taxonomy annotations and asset references.
	DocumentRows(ctx context.Context, collectionID uint) ([]DocumentRow, error)

	// FilterValues returns the distinct active values of one dimension,
	// optionally restricted to documents carrying an active section edge in
	// sectionIDs, sorted by sort order.
	FilterValues(ctx context.Context, collectionID uint, dimension taxonomy.Dimension, sectionIDs []uint) ([]StageRef, error)
}

type PgTreeQueryRepository struct{}

func NewPgTreeQueryRepository() TreeQueryRepository {
	return &PgTreeQueryRepository{}
}

func (r *PgTreeQueryRepository) StageOrder(ctx context.Context, collectionID uint) ([]StageRef, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(
		ctx,
		`SELECT id, name, sort_order
		 FROM catalog_taxonomy_values
		 WHERE tenant_id = $1 AND collection_id = $2 AND dimension = $3 AND is_active
		 ORDER BY sort_order`,
		tenantID.String(),
		collectionID,
		taxonomy.Stage.String(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load stage order")
	}
	defer rows.Close()

	var stages []StageRef
	for rows.Next() {
		var s StageRef
		if err := rows.Scan(&s.ID, &s.Name, &s.SortOrder); err != nil {
			return nil, errors.Wrap(err, "failed to scan stage row")
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}

func (r *PgTreeQueryRepository) DocumentRows(ctx context.Context, collectionID uint) ([]DocumentRow, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	docRows, err := tx.Query(
		ctx,
		`SELECT id, COALESCE(description, '')
		 FROM catalog_documents
		 WHERE tenant_id = $1 AND collection_id = $2 AND is_active
		 ORDER BY id`,
		tenantID.String(),
		collectionID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load documents")
	}
	defer docRows.Close()

	byID := make(map[uint]*DocumentRow)
	var order []uint
	for docRows.Next() {
		var row DocumentRow
		if err := docRows.Scan(&row.ID, &row.Description); err != nil {
			return nil, errors.Wrap(err, "failed to scan document row")
		}
		byID[row.ID] = &row
		order = append(order, row.ID)
	}
	if err := docRows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	if err := r.annotateTaxonomy(ctx, collectionID, byID); err != nil {
		return nil, err
	}
	if err := r.annotateAssets(ctx, collectionID, byID); err != nil {
		return nil, err
	}

	out := make([]DocumentRow, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out, nil
}

// annotateTaxonomy fills the first active value per (document, dimension).
// Edges are read in link id order, so "first" is stable across calls even
// when data entry produced more than one active edge.
func (r *PgTreeQueryRepository) annotateTaxonomy(ctx context.Context, collectionID uint, byID map[uint]*DocumentRow) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	rows, err := tx.Query(
		ctx,
		`SELECT l.document_id, tv.dimension, tv.id, tv.name, tv.sort_order
		 FROM catalog_document_taxonomy_links l
		 JOIN catalog_taxonomy_values tv ON tv.id = l.taxonomy_value_id AND tv.is_active
		 JOIN catalog_documents d ON d.id = l.document_id
		 WHERE d.tenant_id = $1 AND d.collection_id = $2 AND d.is_active AND l.is_active
		 ORDER BY l.document_id, tv.dimension, l.id`,
		tenantID.String(),
		collectionID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to load taxonomy links")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			docID     uint
			dimension string
			cell      TaxonomyCell
		)
		if err := rows.Scan(&docID, &dimension, &cell.ID, &cell.Name, &cell.SortOrder); err != nil {
			return errors.Wrap(err, "failed to scan taxonomy link row")
		}
		cell.Valid = true

		row, ok := byID[docID]
		if !ok {
			continue
		}
		target := cellFor(row, taxonomy.Dimension(dimension))
		if target == nil || target.Valid {
			continue
		}
		*target = cell
	}
	return rows.Err()
}

func (r *PgTreeQueryRepository) annotateAssets(ctx context.Context, collectionID uint, byID map[uint]*DocumentRow) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	rows, err := tx.Query(
		ctx,
		`SELECT l.document_id, a.kind, a.external_id
		 FROM catalog_document_asset_links l
		 JOIN catalog_assets a ON a.id = l.asset_id AND a.is_active
		 JOIN catalog_documents d ON d.id = l.document_id
		 WHERE d.tenant_id = $1 AND d.collection_id = $2 AND d.is_active AND l.is_active
		 ORDER BY l.document_id, l.id`,
		tenantID.String(),
		collectionID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to load asset links")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			docID      uint
			kind       string
			externalID string
		)
		if err := rows.Scan(&docID, &kind, &externalID); err != nil {
			return errors.Wrap(err, "failed to scan asset link row")
		}
		row, ok := byID[docID]
		if !ok {
			continue
		}
		switch asset.Kind(kind) {
		case asset.KindLink:
			row.LinkIDs = append(row.LinkIDs, externalID)
		case asset.KindFile:
			row.FileIDs = append(row.FileIDs, externalID)
		}
	}
	return rows.Err()
}

func (r *PgTreeQueryRepository) FilterValues(ctx context.Context, collectionID uint, dimension taxonomy.Dimension, sectionIDs []uint) ([]StageRef, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT DISTINCT tv.id, tv.name, tv.sort_order
		FROM catalog_taxonomy_values tv
		WHERE tv.tenant_id = $1 AND tv.collection_id = $2 AND tv.dimension = $3 AND tv.is_active`
	args := []interface{}{tenantID.String(), collectionID, dimension.String()}

	if len(sectionIDs) > 0 {
		query += `
		AND EXISTS (
			SELECT 1
			FROM catalog_document_taxonomy_links l
			JOIN catalog_documents d ON d.id = l.document_id AND d.is_active
			JOIN catalog_document_taxonomy_links sl ON sl.document_id = d.id AND sl.is_active
			WHERE l.taxonomy_value_id = tv.id AND l.is_active
			  AND sl.taxonomy_value_id = ANY($4)
		)`
		ids := make([]int64, 0, len(sectionIDs))
		for _, id := range sectionIDs {
			ids = append(ids, int64(id))
		}
		args = append(args, ids)
	}
	query += " ORDER BY tv.sort_order"

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load filter values")
	}
	defer rows.Close()

	var values []StageRef
	for rows.Next() {
		var v StageRef
		if err := rows.Scan(&v.ID, &v.Name, &v.SortOrder); err != nil {
			return nil, errors.Wrap(err, "failed to scan filter value row")
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func cellFor(row *DocumentRow, dimension taxonomy.Dimension) *TaxonomyCell {
	switch dimension {
	case taxonomy.Section:
		return &row.Section
	case taxonomy.Stage:
		return &row.Stage
	case taxonomy.Client:
		return &row.Client
	case taxonomy.Location:
		return &row.Location
	case taxonomy.Area:
		return &row.Area
	case taxonomy.Topic:
		return &row.Topic
	case taxonomy.Subtopic:
		return &row.Subtopic
	case taxonomy.EnforcementLevel:
		return &row.Enforcement
	}
	return nil
}
