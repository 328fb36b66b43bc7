package excel

import (
	"io"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

// Workbook is an in-memory snapshot of a spreadsheet: sheet names in file
// order, each sheet holding its raw rows. Cell text is kept verbatim; rows
// from excelize may be ragged, use Cell for safe access.
type Workbook struct {
	sheets map[string]*Sheet
	order  []string
}

type Sheet struct {
	Name string
	Rows [][]string
}

// NewWorkbook builds a workbook from in-memory sheets, keeping their order.
func NewWorkbook(sheets ...*Sheet) *Workbook {
	wb := &Workbook{sheets: make(map[string]*Sheet, len(sheets))}
	for _, s := range sheets {
		wb.sheets[s.Name] = s
		wb.order = append(wb.order, s.Name)
	}
	return wb
}

func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	defer func() {
		_ = f.Close()
	}()
	return fromFile(f)
}

func OpenFile(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	defer func() {
		_ = f.Close()
	}()
	return fromFile(f)
}

func fromFile(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{sheets: make(map[string]*Sheet)}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read sheet %q", name)
		}
		wb.sheets[name] = &Sheet{Name: name, Rows: rows}
		wb.order = append(wb.order, name)
	}
	return wb, nil
}

func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	s, ok := w.sheets[name]
	return s, ok
}

func (w *Workbook) SheetNames() []string {
	return w.order
}

// Header returns the first row, or nil for an empty sheet.
func (s *Sheet) Header() []string {
	if len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[0]
}

// DataRows returns all rows after the header.
func (s *Sheet) DataRows() [][]string {
	if len(s.Rows) <= 1 {
		return nil
	}
	return s.Rows[1:]
}

// Cell returns the cell at idx, or "" when the row is shorter than idx+1.
// excelize trims trailing empty cells per row.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// IsBlankRow reports whether every cell in the row is empty.
func IsBlankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
