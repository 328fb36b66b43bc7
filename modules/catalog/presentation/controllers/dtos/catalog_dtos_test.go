package dtos_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eisenhub/catalog/modules/catalog/presentation/controllers/dtos"
)

func TestParseIntList(t *testing.T) {
	values := url.Values{"sections": {"1, 2,,3"}}

	got, err := dtos.ParseIntList(values, "sections")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)

	got, err = dtos.ParseIntList(values, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = dtos.ParseIntList(url.Values{"sections": {"1,x"}}, "sections")
	assert.Error(t, err)
}

func TestTreeQueryDTO_Ok(t *testing.T) {
	dto := &dtos.TreeQueryDTO{CollectionID: 1, Sections: []int{1, 2}}
	assert.NoError(t, dto.Ok())

	dto = &dtos.TreeQueryDTO{CollectionID: 0}
	assert.Error(t, dto.Ok(), "collection id is required")

	dto = &dtos.TreeQueryDTO{CollectionID: 1, Stages: []int{0}}
	assert.Error(t, dto.Ok(), "ordering indices start at 1")
}
