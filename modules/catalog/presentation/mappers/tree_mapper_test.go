package mappers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eisenhub/catalog/modules/catalog/services"
)

func TestTreeToViewModel(t *testing.T) {
	tree := &services.Tree{
		TotalDocumentCount: 1,
		Sections: []services.SectionNode{
			{
				ID:        10,
				Name:      "Inleiding",
				SortOrder: 1,
				Summary:   services.SectionSummary{TotalRecords: 1, Description: "Inleiding: 1 records"},
				Stages: []services.StageGroup{
					{
						Name: "Basis",
						Places: []services.PlaceGroup{
							{
								Location: "Centrum",
								Area:     "Bebouwd",
								Topics: []services.TopicGroup{
									{
										Name: "Groen-Bomen",
										Documents: []services.TreeDocument{
											{
												ID:          2,
												Description: "Bomen worden jaarlijks gesnoeid",
												Enforcement: "Hard",
												Files:       services.ReferenceProjection{Present: true, IDs: "A1"},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}

	vm := TreeToViewModel(tree)
	require.Len(t, vm.Sections, 1)
	assert.Equal(t, 1, vm.TotalDocumentCount)

	section := vm.Sections[0]
	assert.Equal(t, "Inleiding", section.Name)
	assert.Equal(t, 1, section.Summary.TotalRecords)

	doc := section.Stages[0].Places[0].Topics[0].Documents[0]
	assert.Equal(t, uint(2), doc.ID)
	assert.Equal(t, "Hard", doc.EnforcementLevel)
	assert.True(t, doc.Files.Present)
	assert.Equal(t, "A1", doc.Files.IDs)
	assert.False(t, doc.Links.Present)
}

func TestTreeToViewModel_EmptyTreeMarshalsArrays(t *testing.T) {
	vm := TreeToViewModel(&services.Tree{})

	out, err := json.Marshal(vm)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sections":[],"totalDocumentCount":0}`, string(out))
}

func TestFilterCatalogToViewModel(t *testing.T) {
	vm := FilterCatalogToViewModel(&services.FilterCatalog{
		Sections: []services.FilterValue{{ID: 10, Name: "Inleiding", SortOrder: 1}},
	})

	require.Len(t, vm.Sections, 1)
	assert.Equal(t, "Inleiding", vm.Sections[0].Name)

	out, err := json.Marshal(vm)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"stages":[]`)
}
