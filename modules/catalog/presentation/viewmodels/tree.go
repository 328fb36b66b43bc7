package viewmodels

// Reference is one of the two asset projections on a leaf document: whether
// any asset of that kind is linked, and the comma-joined external ids.
type Reference struct {
	Present bool   `json:"present"`
	IDs     string `json:"ids"`
}

type TreeDocument struct {
	ID               uint      `json:"id"`
	Description      string    `json:"description"`
	EnforcementLevel string    `json:"enforcementLevel"`
	Links            Reference `json:"links"`
	Files            Reference `json:"files"`
}

type TopicNode struct {
	Name      string         `json:"name"`
	Documents []TreeDocument `json:"documents"`
}

type PlaceNode struct {
	Location string      `json:"location"`
	Area     string      `json:"area"`
	Topics   []TopicNode `json:"topics"`
}

type StageNode struct {
	Name   string      `json:"name"`
	Places []PlaceNode `json:"places"`
}

type SectionSummary struct {
	TotalRecords int    `json:"totalRecords"`
	Description  string `json:"description"`
}

type SectionNode struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	SortOrder int            `json:"sortOrder"`
	Stages    []StageNode    `json:"stages"`
	Summary   SectionSummary `json:"summary"`
}

type Tree struct {
	Sections           []SectionNode `json:"sections"`
	TotalDocumentCount int           `json:"totalDocumentCount"`
}

type FilterValue struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

type FilterCatalog struct {
	Sections  []FilterValue `json:"sections"`
	Stages    []FilterValue `json:"stages"`
	Locations []FilterValue `json:"locations"`
	Areas     []FilterValue `json:"areas"`
	Topics    []FilterValue `json:"topics"`
}
