package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-faster/errors"

	"github.com/eisenhub/catalog/modules/catalog/domain/entities/taxonomy"
	"github.com/eisenhub/catalog/modules/catalog/infrastructure/query"
	"github.com/eisenhub/catalog/pkg/composables"
)

// unknownPlace is rendered for documents with no location or area edge.
const unknownPlace = "Unknown"

// unmatchedStageOrder sorts stages that are absent from the canonical stage
// ordering after every matched stage.
const unmatchedStageOrder = 1 << 30

// TreeFilters restricts a tree query to documents whose taxonomy values carry
// one of the given ordering indices. Dimensions combine with AND, values
// within a dimension with OR; an empty set leaves its dimension unfiltered.
type TreeFilters struct {
	Sections  []int
	Stages    []int
	Locations []int
	Areas     []int
	Topics    []int
}

type ReferenceProjection struct {
	Present bool
	IDs     string
}

type TreeDocument struct {
	ID          uint
	Description string
	Enforcement string
	Links       ReferenceProjection
	Files       ReferenceProjection
}

type TopicGroup struct {
	Name      string
	Documents []TreeDocument
}

type PlaceGroup struct {
	Location string
	Area     string
	Topics   []TopicGroup
}

type StageGroup struct {
	Name   string
	Places []PlaceGroup
}

type SectionSummary struct {
	TotalRecords int
	Description  string
}

type SectionNode struct {
	ID        uint
	Name      string
	SortOrder int
	Stages    []StageGroup
	Summary   SectionSummary
}

type Tree struct {
	Sections           []SectionNode
	TotalDocumentCount int
}

type FilterValue struct {
	ID        uint
	Name      string
	SortOrder int
}

type FilterCatalog struct {
	Sections  []FilterValue
	Stages    []FilterValue
	Locations []FilterValue
	Areas     []FilterValue
	Topics    []FilterValue
}

// TreeService answers the read side: the nested catalog tree and the filter
// catalog. It only runs queries; a concurrent import may show through as a
// snapshot with partially created taxonomy, which is accepted.
type TreeService struct {
	queries query.TreeQueryRepository
}

func NewTreeService(queries query.TreeQueryRepository) *TreeService {
	return &TreeService{queries: queries}
}

// BuildTree aggregates the collection's active documents into the nested
// section tree. A failure inside one section is logged and that section is
// skipped; the remaining sections are still returned.
func (s *TreeService) BuildTree(ctx context.Context, collectionID uint, filters TreeFilters) (*Tree, error) {
	stageOrder, err := s.queries.StageOrder(ctx, collectionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load stage ordering")
	}
	stageRank := make(map[string]int, len(stageOrder))
	for i, stage := range stageOrder {
		if _, ok := stageRank[stage.Name]; !ok {
			stageRank[stage.Name] = i
		}
	}

	rows, err := s.queries.DocumentRows(ctx, collectionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load document rows")
	}

	var visible []query.DocumentRow
	for _, row := range rows {
		if !filters.matches(row) {
			continue
		}
		if !row.Section.Valid {
			// Rows without a section edge cannot be placed in the tree, so
			// they do not count towards the total either.
			composables.UseLogger(ctx).Warnf("document %d has no section, excluded from tree", row.ID)
			continue
		}
		visible = append(visible, row)
	}

	type sectionKey struct {
		id        uint
		name      string
		sortOrder int
	}
	grouped := make(map[sectionKey][]query.DocumentRow)
	var keys []sectionKey
	for _, row := range visible {
		key := sectionKey{id: row.Section.ID, name: row.Section.Name, sortOrder: row.Section.SortOrder}
		if _, ok := grouped[key]; !ok {
			keys = append(keys, key)
		}
		grouped[key] = append(grouped[key], row)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].sortOrder < keys[j].sortOrder })

	tree := &Tree{TotalDocumentCount: len(visible)}
	for _, key := range keys {
		section, err := buildSection(key.id, key.name, key.sortOrder, grouped[key], stageRank)
		if err != nil {
			composables.UseLogger(ctx).WithError(err).Errorf("skipping section %q", key.name)
			continue
		}
		tree.Sections = append(tree.Sections, *section)
	}
	return tree, nil
}

func buildSection(id uint, name string, sortOrder int, rows []query.DocumentRow, stageRank map[string]int) (*SectionNode, error) {
	if len(rows) == 0 {
		return nil, errors.New("section has no rows")
	}

	byStage := make(map[string][]query.DocumentRow)
	var stageNames []string
	for _, row := range rows {
		stageName := row.Stage.Name
		if _, ok := byStage[stageName]; !ok {
			stageNames = append(stageNames, stageName)
		}
		byStage[stageName] = append(byStage[stageName], row)
	}
	sort.Slice(stageNames, func(i, j int) bool {
		ri, rj := stageRankOf(stageRank, stageNames[i]), stageRankOf(stageRank, stageNames[j])
		if ri != rj {
			return ri < rj
		}
		return stageNames[i] < stageNames[j]
	})

	section := &SectionNode{
		ID:        id,
		Name:      name,
		SortOrder: sortOrder,
		Summary: SectionSummary{
			TotalRecords: len(rows),
			Description:  fmt.Sprintf("%s: %d records", name, len(rows)),
		},
	}
	for _, stageName := range stageNames {
		section.Stages = append(section.Stages, StageGroup{
			Name:   stageName,
			Places: buildPlaces(byStage[stageName]),
		})
	}
	return section, nil
}

func stageRankOf(stageRank map[string]int, name string) int {
	if rank, ok := stageRank[name]; ok {
		return rank
	}
	return unmatchedStageOrder
}

func buildPlaces(rows []query.DocumentRow) []PlaceGroup {
	type placeKey struct {
		location      string
		area          string
		locationOrder int
		areaOrder     int
	}
	grouped := make(map[placeKey][]query.DocumentRow)
	var keys []placeKey
	for _, row := range rows {
		key := placeKey{
			location:      cellName(row.Location),
			area:          cellName(row.Area),
			locationOrder: cellOrder(row.Location),
			areaOrder:     cellOrder(row.Area),
		}
		if _, ok := grouped[key]; !ok {
			keys = append(keys, key)
		}
		grouped[key] = append(grouped[key], row)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].locationOrder != keys[j].locationOrder {
			return keys[i].locationOrder < keys[j].locationOrder
		}
		return keys[i].areaOrder < keys[j].areaOrder
	})

	places := make([]PlaceGroup, 0, len(keys))
	for _, key := range keys {
		places = append(places, PlaceGroup{
			Location: key.location,
			Area:     key.area,
			Topics:   buildTopics(grouped[key]),
		})
	}
	return places
}

func buildTopics(rows []query.DocumentRow) []TopicGroup {
	grouped := make(map[string][]query.DocumentRow)
	var names []string
	for _, row := range rows {
		name := topicName(row)
		if _, ok := grouped[name]; !ok {
			names = append(names, name)
		}
		grouped[name] = append(grouped[name], row)
	}
	sort.Strings(names)

	topics := make([]TopicGroup, 0, len(names))
	for _, name := range names {
		group := grouped[name]
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })

		docs := make([]TreeDocument, 0, len(group))
		for _, row := range group {
			docs = append(docs, TreeDocument{
				ID:          row.ID,
				Description: row.Description,
				Enforcement: row.Enforcement.Name,
				Links: ReferenceProjection{
					Present: len(row.LinkIDs) > 0,
					IDs:     strings.Join(row.LinkIDs, ","),
				},
				Files: ReferenceProjection{
					Present: len(row.FileIDs) > 0,
					IDs:     strings.Join(row.FileIDs, ","),
				},
			})
		}
		topics = append(topics, TopicGroup{Name: name, Documents: docs})
	}
	return topics
}

func topicName(row query.DocumentRow) string {
	if row.Subtopic.Valid && row.Subtopic.Name != "" {
		return row.Topic.Name + "-" + row.Subtopic.Name
	}
	return row.Topic.Name
}

func cellName(cell query.TaxonomyCell) string {
	if !cell.Valid || cell.Name == "" {
		return unknownPlace
	}
	return cell.Name
}

// cellOrder sorts documents with a missing location or area edge last.
func cellOrder(cell query.TaxonomyCell) int {
	if !cell.Valid {
		return unmatchedStageOrder
	}
	return cell.SortOrder
}

func (f TreeFilters) matches(row query.DocumentRow) bool {
	return matchesFilter(row.Section, f.Sections) &&
		matchesFilter(row.Stage, f.Stages) &&
		matchesFilter(row.Location, f.Locations) &&
		matchesFilter(row.Area, f.Areas) &&
		matchesFilter(row.Topic, f.Topics)
}

func matchesFilter(cell query.TaxonomyCell, orders []int) bool {
	if len(orders) == 0 {
		return true
	}
	if !cell.Valid {
		return false
	}
	for _, order := range orders {
		if cell.SortOrder == order {
			return true
		}
	}
	return false
}

// ListFilters returns the distinct active values per filterable dimension,
// optionally scoped to documents carrying a section edge in sectionIDs. Topic
// values are deduplicated by name, keeping the smallest ordering index;
// data entry has produced duplicate topic names with different indices.
func (s *TreeService) ListFilters(ctx context.Context, collectionID uint, sectionIDs []uint) (*FilterCatalog, error) {
	catalog := &FilterCatalog{}
	for _, target := range []struct {
		dimension taxonomy.Dimension
		dst       *[]FilterValue
		scoped    bool
	}{
		{taxonomy.Section, &catalog.Sections, false},
		{taxonomy.Stage, &catalog.Stages, true},
		{taxonomy.Location, &catalog.Locations, true},
		{taxonomy.Area, &catalog.Areas, true},
		{taxonomy.Topic, &catalog.Topics, true},
	} {
		scope := sectionIDs
		if !target.scoped {
			scope = nil
		}
		values, err := s.queries.FilterValues(ctx, collectionID, target.dimension, scope)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load %s filter values", target.dimension)
		}
		for _, v := range values {
			*target.dst = append(*target.dst, FilterValue{ID: v.ID, Name: v.Name, SortOrder: v.SortOrder})
		}
	}
	catalog.Topics = dedupeTopicsByName(catalog.Topics)
	return catalog, nil
}

// dedupeTopicsByName keeps one entry per topic name with the minimum ordering
// index, then restores the sort-order sort.
func dedupeTopicsByName(topics []FilterValue) []FilterValue {
	byName := make(map[string]FilterValue, len(topics))
	for _, t := range topics {
		if kept, ok := byName[t.Name]; !ok || t.SortOrder < kept.SortOrder {
			byName[t.Name] = t
		}
	}
	deduped := make([]FilterValue, 0, len(byName))
	for _, t := range byName {
		deduped = append(deduped, t)
	}
	sort.Slice(deduped, func(i, j int) bool {
		if deduped[i].SortOrder != deduped[j].SortOrder {
			return deduped[i].SortOrder < deduped[j].SortOrder
		}
		return deduped[i].Name < deduped[j].Name
	})
	return deduped
}
