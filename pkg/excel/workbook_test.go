package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/eisenhub/catalog/pkg/excel"
)

func buildWorkbook(t *testing.T, sheets map[string][][]string) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestOpenReader(t *testing.T) {
	r := buildWorkbook(t, map[string][][]string{
		"Specificaties": {
			{"ID", "Eis"},
			{"D1", "Must be asphalt"},
			{"D2", "Must drain"},
		},
	})

	wb, err := excel.OpenReader(r)
	require.NoError(t, err)

	sheet, ok := wb.Sheet("Specificaties")
	require.True(t, ok)
	assert.Equal(t, []string{"ID", "Eis"}, sheet.Header())
	require.Len(t, sheet.DataRows(), 2)
	assert.Equal(t, "D1", sheet.DataRows()[0][0])

	_, ok = wb.Sheet("Bijlagen")
	assert.False(t, ok)
}

func TestCell_ShortRow(t *testing.T) {
	row := []string{"only"}
	assert.Equal(t, "only", excel.Cell(row, 0))
	assert.Equal(t, "", excel.Cell(row, 1))
	assert.Equal(t, "", excel.Cell(row, -1))
}

func TestIsBlankRow(t *testing.T) {
	assert.True(t, excel.IsBlankRow(nil))
	assert.True(t, excel.IsBlankRow([]string{"", ""}))
	assert.False(t, excel.IsBlankRow([]string{"", "x"}))
	assert.False(t, excel.IsBlankRow([]string{" "}))
}
