package workbook

// Sheet is a named grid of cell values. A cell holds int64, float64,
// string or nil. Row and column indices are 0-based and match the source.
type Sheet struct {
	Name string
	Rows [][]any
}

// NewSheet creates a sheet from a prepared grid.
func NewSheet(name string, rows [][]any) *Sheet {
	return &Sheet{Name: name, Rows: rows}
}

// Len returns the number of rows in the grid.
func (s *Sheet) Len() int {
	return len(s.Rows)
}

// Row returns the cells of row r, or nil when r is outside the grid.
func (s *Sheet) Row(r int) []any {
	if r < 0 || r >= len(s.Rows) {
		return nil
	}
	return s.Rows[r]
}

// Cell returns the value at (r, c), or nil outside the grid.
func (s *Sheet) Cell(r, c int) any {
	row := s.Row(r)
	if c < 0 || c >= len(row) {
		return nil
	}
	return row[c]
}
