package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Bounds is the bounding box of non-empty cells (0-based, inclusive).
type Bounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
	NonEmpty       int
}

// Empty reports whether the sheet had no non-empty cell.
func (b Bounds) Empty() bool {
	return b.NonEmpty == 0
}

// Rows returns the number of rows spanned by the box.
func (b Bounds) Rows() int {
	if b.Empty() {
		return 0
	}
	return b.MaxRow - b.MinRow + 1
}

// Cols returns the number of columns spanned by the box.
func (b Bounds) Cols() int {
	if b.Empty() {
		return 0
	}
	return b.MaxCol - b.MinCol + 1
}

// Range returns the box in A1 notation, e.g. "A1:D10".
func (b Bounds) Range() string {
	if b.Empty() {
		return ""
	}
	startCell, _ := excelize.CoordinatesToCellName(b.MinCol+1, b.MinRow+1)
	endCell, _ := excelize.CoordinatesToCellName(b.MaxCol+1, b.MaxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// Bounds finds the bounding box of non-empty cells.
func (s *Sheet) Bounds() Bounds {
	b := Bounds{MinRow: -1, MaxRow: -1, MinCol: -1, MaxCol: -1}

	for rowIdx, row := range s.Rows {
		for colIdx, cell := range row {
			if isBlank(cell) {
				continue
			}
			b.NonEmpty++
			if b.MinRow < 0 || rowIdx < b.MinRow {
				b.MinRow = rowIdx
			}
			if rowIdx > b.MaxRow {
				b.MaxRow = rowIdx
			}
			if b.MinCol < 0 || colIdx < b.MinCol {
				b.MinCol = colIdx
			}
			if colIdx > b.MaxCol {
				b.MaxCol = colIdx
			}
		}
	}

	return b
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
