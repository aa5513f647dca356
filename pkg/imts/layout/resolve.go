package layout

import (
	"fmt"
	"strings"

	"github.com/imts-dashboard/imts-go/pkg/imts/workbook"
)

// Columns holds the resolved candidate column indices for each field.
type Columns map[string][]int

// Get returns the candidates for name, or nil when the field is unknown.
func (c Columns) Get(name string) []int {
	return c[name]
}

// Resolve turns the column chains into column indices for sheet. Header
// labels found in rows [0, SkipRows) come first, fixed offsets after them.
func (s Spec) Resolve(sheet *workbook.Sheet) Columns {
	cols := make(Columns, len(s.Columns))
	for name, chain := range s.Columns {
		var candidates []int
		seen := make(map[int]bool)
		add := func(c int) {
			if c >= 0 && !seen[c] {
				seen[c] = true
				candidates = append(candidates, c)
			}
		}

		for _, label := range chain.Labels {
			add(findHeader(sheet, s.SkipRows, label))
		}
		for _, off := range chain.Offsets {
			add(int(off))
		}
		cols[name] = candidates
	}
	return cols
}

// findHeader returns the column of the first header cell equal to label
// (case-insensitive, trimmed), or -1.
func findHeader(sheet *workbook.Sheet, headerRows int, label string) int {
	want := strings.TrimSpace(label)
	if want == "" || sheet == nil {
		return -1
	}
	for r := 0; r < headerRows && r < sheet.Len(); r++ {
		for c, cell := range sheet.Row(r) {
			if cell == nil {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(fmt.Sprint(cell)), want) {
				return c
			}
		}
	}
	return -1
}
