package mappers

import (
	"github.com/eisenhub/catalog/modules/catalog/presentation/viewmodels"
	"github.com/eisenhub/catalog/modules/catalog/services"
)

// TreeToViewModel maps the aggregated tree to its wire shape. Slices are
// always materialized so the JSON carries arrays, not nulls.
func TreeToViewModel(tree *services.Tree) *viewmodels.Tree {
	out := &viewmodels.Tree{
		Sections:           make([]viewmodels.SectionNode, 0, len(tree.Sections)),
		TotalDocumentCount: tree.TotalDocumentCount,
	}
	for _, section := range tree.Sections {
		out.Sections = append(out.Sections, sectionToViewModel(section))
	}
	return out
}

func sectionToViewModel(section services.SectionNode) viewmodels.SectionNode {
	out := viewmodels.SectionNode{
		ID:        section.ID,
		Name:      section.Name,
		SortOrder: section.SortOrder,
		Stages:    make([]viewmodels.StageNode, 0, len(section.Stages)),
		Summary: viewmodels.SectionSummary{
			TotalRecords: section.Summary.TotalRecords,
			Description:  section.Summary.Description,
		},
	}
	for _, stage := range section.Stages {
		out.Stages = append(out.Stages, stageToViewModel(stage))
	}
	return out
}

func stageToViewModel(stage services.StageGroup) viewmodels.StageNode {
	out := viewmodels.StageNode{
		Name:   stage.Name,
		Places: make([]viewmodels.PlaceNode, 0, len(stage.Places)),
	}
	for _, place := range stage.Places {
		node := viewmodels.PlaceNode{
			Location: place.Location,
			Area:     place.Area,
			Topics:   make([]viewmodels.TopicNode, 0, len(place.Topics)),
		}
		for _, topic := range place.Topics {
			node.Topics = append(node.Topics, topicToViewModel(topic))
		}
		out.Places = append(out.Places, node)
	}
	return out
}

func topicToViewModel(topic services.TopicGroup) viewmodels.TopicNode {
	out := viewmodels.TopicNode{
		Name:      topic.Name,
		Documents: make([]viewmodels.TreeDocument, 0, len(topic.Documents)),
	}
	for _, doc := range topic.Documents {
		out.Documents = append(out.Documents, viewmodels.TreeDocument{
			ID:               doc.ID,
			Description:      doc.Description,
			EnforcementLevel: doc.Enforcement,
			Links:            viewmodels.Reference{Present: doc.Links.Present, IDs: doc.Links.IDs},
			Files:            viewmodels.Reference{Present: doc.Files.Present, IDs: doc.Files.IDs},
		})
	}
	return out
}

func FilterCatalogToViewModel(catalog *services.FilterCatalog) *viewmodels.FilterCatalog {
	return &viewmodels.FilterCatalog{
		Sections:  filterValuesToViewModel(catalog.Sections),
		Stages:    filterValuesToViewModel(catalog.Stages),
		Locations: filterValuesToViewModel(catalog.Locations),
		Areas:     filterValuesToViewModel(catalog.Areas),
		Topics:    filterValuesToViewModel(catalog.Topics),
	}
}

func filterValuesToViewModel(values []services.FilterValue) []viewmodels.FilterValue {
	out := make([]viewmodels.FilterValue, 0, len(values))
	for _, v := range values {
		out = append(out, viewmodels.FilterValue{ID: v.ID, Name: v.Name, SortOrder: v.SortOrder})
	}
	return out
}
