package persistence

import (
	"github.com/google/uuid"

	"github.com/eisenhub/catalog/modules/catalog/domain/entities/asset"
	"github.com/eisenhub/catalog/modules/catalog/domain/entities/document"
	"github.com/eisenhub/catalog/modules/catalog/domain/entities/taxonomy"
	"github.com/eisenhub/catalog/modules/catalog/infrastructure/persistence/models"
	"github.com/eisenhub/catalog/pkg/mapping"
)

func toDomainDocument(m *models.Document) *document.Document {
	tenantID, err := uuid.Parse(m.TenantID)
	if err != nil {
		tenantID = uuid.Nil
	}
	return document.New(m.Title,
		document.WithID(m.ID),
		document.WithTenantID(tenantID),
		document.WithCollectionID(m.CollectionID),
		document.WithDescription(mapping.SQLNullStringToValue(m.Description)),
		document.WithStatus(document.Status(m.Status)),
		document.WithVersion(m.Version),
		document.WithSortOrder(m.SortOrder),
		document.WithLinkRefs(mapping.SQLNullStringToValue(m.LinkRefs)),
		document.WithFileRefs(mapping.SQLNullStringToValue(m.FileRefs)),
		document.WithIsActive(m.IsActive),
		document.WithCreatedBy(m.CreatedBy),
		document.WithUpdatedBy(m.UpdatedBy),
		document.WithCreatedAt(m.CreatedAt),
		document.WithUpdatedAt(m.UpdatedAt),
	)
}

func toDomainTaxonomyValue(m *models.TaxonomyValue) *taxonomy.Value {
	tenantID, err := uuid.Parse(m.TenantID)
	if err != nil {
		tenantID = uuid.Nil
	}
	return taxonomy.New(taxonomy.Dimension(m.Dimension), m.Name,
		taxonomy.WithID(m.ID),
		taxonomy.WithTenantID(tenantID),
		taxonomy.WithCollectionID(m.CollectionID),
		taxonomy.WithDescription(mapping.SQLNullStringToValue(m.Description)),
		taxonomy.WithSortOrder(m.SortOrder),
		taxonomy.WithParentID(mapping.SQLNullInt64ToUintPointer(m.ParentID)),
		taxonomy.WithIsActive(m.IsActive),
		taxonomy.WithCreatedBy(m.CreatedBy),
		taxonomy.WithUpdatedBy(m.UpdatedBy),
		taxonomy.WithCreatedAt(m.CreatedAt),
		taxonomy.WithUpdatedAt(m.UpdatedAt),
	)
}

func toDomainAsset(m *models.Asset) *asset.Asset {
	tenantID, err := uuid.Parse(m.TenantID)
	if err != nil {
		tenantID = uuid.Nil
	}
	return asset.New(asset.Kind(m.Kind), m.ExternalID,
		asset.WithID(m.ID),
		asset.WithTenantID(tenantID),
		asset.WithName(mapping.SQLNullStringToValue(m.Name)),
		asset.WithDescription(mapping.SQLNullStringToValue(m.Description)),
		asset.WithPath(mapping.SQLNullStringToValue(m.Path)),
		asset.WithURL(mapping.SQLNullStringToValue(m.URL)),
		asset.WithFileType(mapping.SQLNullStringToValue(m.FileType)),
		asset.WithIsActive(m.IsActive),
		asset.WithCreatedBy(m.CreatedBy),
		asset.WithUpdatedBy(m.UpdatedBy),
		asset.WithCreatedAt(m.CreatedAt),
		asset.WithUpdatedAt(m.UpdatedAt),
	)
}
