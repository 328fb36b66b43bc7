package taxonomy_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eisenhub/catalog/modules/catalog/domain/entities/taxonomy"
)

func TestDimension_Required(t *testing.T) {
	for _, d := range taxonomy.Dimensions {
		if d == taxonomy.Subtopic {
			assert.False(t, d.Required())
			continue
		}
		assert.True(t, d.Required(), "dimension %s", d)
	}
}

func TestValue_Scope(t *testing.T) {
	tenantID := uuid.New()
	parentID := uint(42)

	v := taxonomy.New(taxonomy.Subtopic, "Bomen",
		taxonomy.WithID(7),
		taxonomy.WithTenantID(tenantID),
		taxonomy.WithCollectionID(3),
		taxonomy.WithParentID(&parentID),
		taxonomy.WithSortOrder(2),
	)

	scope := v.Scope()
	assert.Equal(t, tenantID, scope.TenantID)
	assert.Equal(t, uint(3), scope.CollectionID)
	assert.Equal(t, taxonomy.Subtopic, scope.Dimension)
	require.NotNil(t, scope.ParentID)
	assert.Equal(t, parentID, *scope.ParentID)
}

func TestNew_Defaults(t *testing.T) {
	v := taxonomy.New(taxonomy.Topic, "Groen")
	assert.True(t, v.IsActive())
	assert.Nil(t, v.ParentID())
	assert.Equal(t, "Groen", v.Name())
	assert.Equal(t, taxonomy.Topic, v.Dimension())
}
