package services

import (
	"github.com/eisenhub/catalog/pkg/excel"
)

// Sheet and column names as they appear in the source workbooks. Matching is
// case-sensitive on purpose: the files are produced from a fixed template.
const (
	SheetAttachments    = "Bijlagen"
	SheetReferences     = "Bronverwijzingen"
	SheetSpecifications = "Specificaties"

	ColExternalID  = "ID"
	ColDescription = "Omschrijving"
	ColFilePath    = "Bestand"
	ColURL         = "Url"

	ColRequirement = "Eis"
	ColSection     = "Hoofdstuk"
	ColStage       = "Niveau"
	ColClient      = "Gemeente"
	ColLocation    = "Woonkern"
	ColArea        = "Gebiedsoort"
	ColTopic       = "Onderwerp"
	ColSubtopic    = "Subonderwerp"
	ColEnforcement = "Hardheid"
	ColLinkRefs    = "Bronverwijzing"
	ColFileRefs    = "Bijlage(-n)"
)

// sheetColumns maps header names to their position in one worksheet.
type sheetColumns struct {
	index map[string]int
}

// readColumns parses the header row and verifies the required set. Missing
// required columns are each reported once and fail the whole sheet.
func readColumns(sheet *excel.Sheet, required []string, result *ImportResult) (*sheetColumns, bool) {
	header := sheet.Header()
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	ok := true
	for _, name := range required {
		if _, found := index[name]; !found {
			result.AddValidationError(name, "required column is missing", 0)
			ok = false
		}
	}
	if !ok {
		return nil, false
	}
	return &sheetColumns{index: index}, true
}

// Cell returns the raw cell text for a column, without trimming.
func (c *sheetColumns) Cell(row []string, column string) string {
	idx, ok := c.index[column]
	if !ok {
		return ""
	}
	return excel.Cell(row, idx)
}

// MissingRequired returns the required columns whose cell is blank in the
// given row.
func (c *sheetColumns) MissingRequired(row []string, required []string) []string {
	var missing []string
	for _, name := range required {
		if c.Cell(row, name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
