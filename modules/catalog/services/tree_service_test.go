package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eisenhub/catalog/modules/catalog/domain/entities/taxonomy"
	"github.com/eisenhub/catalog/modules/catalog/infrastructure/query"
)

type fakeTreeQueries struct {
	stages  []query.StageRef
	rows    []query.DocumentRow
	filters map[taxonomy.Dimension][]query.StageRef
}

func (f *fakeTreeQueries) StageOrder(_ context.Context, _ uint) ([]query.StageRef, error) {
	return f.stages, nil
}

func (f *fakeTreeQueries) DocumentRows(_ context.Context, _ uint) ([]query.DocumentRow, error) {
	return f.rows, nil
}

func (f *fakeTreeQueries) FilterValues(_ context.Context, _ uint, dimension taxonomy.Dimension, _ []uint) ([]query.StageRef, error) {
	return f.filters[dimension], nil
}

func cell(id uint, name string, sortOrder int) query.TaxonomyCell {
	return query.TaxonomyCell{ID: id, Name: name, SortOrder: sortOrder, Valid: true}
}

func treeFixtureRows() []query.DocumentRow {
	return []query.DocumentRow{
		{
			ID:          1,
			Description: "Gras wordt wekelijks gemaaid",
			Section:     cell(10, "Inleiding", 1),
			Stage:       cell(20, "Basis", 1),
			Client:      cell(30, "Utrecht", 1),
			Location:    cell(40, "Centrum", 1),
			Area:        cell(50, "Bebouwd", 1),
			Topic:       cell(60, "Groen", 1),
			Enforcement: cell(80, "Hard", 1),
			LinkIDs:     []string{"L1", "L2"},
		},
		{
			ID:          2,
			Description: "Bomen worden jaarlijks gesnoeid",
			Section:     cell(10, "Inleiding", 1),
			Stage:       cell(21, "Plus", 2),
			Client:      cell(30, "Utrecht", 1),
			Location:    cell(40, "Centrum", 1),
			Area:        cell(50, "Bebouwd", 1),
			Topic:       cell(60, "Groen", 1),
			Subtopic:    cell(61, "Bomen", 1),
			Enforcement: cell(80, "Hard", 1),
			FileIDs:     []string{"A1"},
		},
		{
			ID:          3,
			Description: "Zwerfvuil wordt binnen een dag geruimd",
			Section:     cell(11, "Beheer", 2),
			Stage:       cell(22, "Onbekend niveau", 9),
			Client:      cell(30, "Utrecht", 1),
			Topic:       cell(62, "Schoon", 2),
			Enforcement: cell(81, "Zacht", 2),
		},
	}
}

func newTreeFixture() *TreeService {
	return NewTreeService(&fakeTreeQueries{
		// The canonical ordering deliberately omits "Onbekend niveau".
		stages: []query.StageRef{
			{ID: 20, Name: "Basis", SortOrder: 1},
			{ID: 21, Name: "Plus", SortOrder: 2},
		},
		rows: treeFixtureRows(),
	})
}

func TestTreeService_BuildTree(t *testing.T) {
	service := newTreeFixture()
	ctx := testContext(t)

	tree, err := service.BuildTree(ctx, 1, TreeFilters{})
	require.NoError(t, err)

	assert.Equal(t, 3, tree.TotalDocumentCount)
	require.Len(t, tree.Sections, 2)

	// Sections come back in ordering-index order.
	assert.Equal(t, "Inleiding", tree.Sections[0].Name)
	assert.Equal(t, "Beheer", tree.Sections[1].Name)

	// Completeness: per-section totals add up to the document count.
	total := 0
	for _, section := range tree.Sections {
		total += section.Summary.TotalRecords
	}
	assert.Equal(t, tree.TotalDocumentCount, total)

	inleiding := tree.Sections[0]
	require.Len(t, inleiding.Stages, 2)
	assert.Equal(t, "Basis", inleiding.Stages[0].Name)
	assert.Equal(t, "Plus", inleiding.Stages[1].Name)

	// The subtopic document groups under the composite topic name.
	plus := inleiding.Stages[1]
	require.Len(t, plus.Places, 1)
	require.Len(t, plus.Places[0].Topics, 1)
	assert.Equal(t, "Groen-Bomen", plus.Places[0].Topics[0].Name)

	doc := plus.Places[0].Topics[0].Documents[0]
	assert.Equal(t, uint(2), doc.ID)
	assert.Equal(t, "Hard", doc.Enforcement)
	assert.True(t, doc.Files.Present)
	assert.Equal(t, "A1", doc.Files.IDs)
	assert.False(t, doc.Links.Present)

	basis := inleiding.Stages[0]
	first := basis.Places[0].Topics[0].Documents[0]
	assert.Equal(t, "L1,L2", first.Links.IDs)
}

func TestTreeService_UnknownPlaceAndUnmatchedStage(t *testing.T) {
	service := newTreeFixture()
	ctx := testContext(t)

	tree, err := service.BuildTree(ctx, 1, TreeFilters{})
	require.NoError(t, err)

	beheer := tree.Sections[1]
	// The stage is missing from the canonical ordering but still renders.
	require.Len(t, beheer.Stages, 1)
	assert.Equal(t, "Onbekend niveau", beheer.Stages[0].Name)

	// Missing location and area render as the literal placeholder.
	require.Len(t, beheer.Stages[0].Places, 1)
	assert.Equal(t, "Unknown", beheer.Stages[0].Places[0].Location)
	assert.Equal(t, "Unknown", beheer.Stages[0].Places[0].Area)
}

func TestTreeService_SectionlessDocumentsAreExcluded(t *testing.T) {
	rows := append(treeFixtureRows(), query.DocumentRow{
		ID:    4,
		Stage: cell(20, "Basis", 1),
		Topic: cell(60, "Groen", 1),
	})
	service := NewTreeService(&fakeTreeQueries{
		stages: []query.StageRef{
			{ID: 20, Name: "Basis", SortOrder: 1},
			{ID: 21, Name: "Plus", SortOrder: 2},
		},
		rows: rows,
	})
	ctx := testContext(t)

	tree, err := service.BuildTree(ctx, 1, TreeFilters{})
	require.NoError(t, err)

	// A document without a section edge lands nowhere in the tree and must
	// not inflate the total beyond what the sections account for.
	assert.Equal(t, 3, tree.TotalDocumentCount)
	total := 0
	for _, section := range tree.Sections {
		total += section.Summary.TotalRecords
	}
	assert.Equal(t, tree.TotalDocumentCount, total)
}

func TestTreeService_Filters(t *testing.T) {
	service := newTreeFixture()
	ctx := testContext(t)

	// OR within a dimension.
	tree, err := service.BuildTree(ctx, 1, TreeFilters{Sections: []int{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, tree.TotalDocumentCount)

	// AND across dimensions.
	tree, err = service.BuildTree(ctx, 1, TreeFilters{Sections: []int{1}, Stages: []int{2}})
	require.NoError(t, err)
	assert.Equal(t, 1, tree.TotalDocumentCount)
	require.Len(t, tree.Sections, 1)
	require.Len(t, tree.Sections[0].Stages, 1)
	assert.Equal(t, "Plus", tree.Sections[0].Stages[0].Name)

	// A filtered dimension excludes documents without an edge for it.
	tree, err = service.BuildTree(ctx, 1, TreeFilters{Locations: []int{1}})
	require.NoError(t, err)
	assert.Equal(t, 2, tree.TotalDocumentCount)
}

func TestTreeService_ListFilters_DeduplicatesTopicsByName(t *testing.T) {
	service := NewTreeService(&fakeTreeQueries{
		filters: map[taxonomy.Dimension][]query.StageRef{
			taxonomy.Topic: {
				{ID: 60, Name: "Groen", SortOrder: 1},
				{ID: 63, Name: "Schoon", SortOrder: 2},
				{ID: 64, Name: "Groen", SortOrder: 5},
			},
			taxonomy.Section: {
				{ID: 10, Name: "Inleiding", SortOrder: 1},
			},
		},
	})
	ctx := testContext(t)

	catalog, err := service.ListFilters(ctx, 1, nil)
	require.NoError(t, err)

	require.Len(t, catalog.Topics, 2)
	assert.Equal(t, "Groen", catalog.Topics[0].Name)
	assert.Equal(t, 1, catalog.Topics[0].SortOrder)
	assert.Equal(t, "Schoon", catalog.Topics[1].Name)

	require.Len(t, catalog.Sections, 1)
	assert.Equal(t, "Inleiding", catalog.Sections[0].Name)
}
