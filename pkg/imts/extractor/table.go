package extractor

import (
	"github.com/imts-dashboard/imts-go/pkg/imts/layout"
	"github.com/imts-dashboard/imts-go/pkg/imts/models"
	"github.com/imts-dashboard/imts-go/pkg/imts/workbook"
)

// Table reads the row at Spec.SkipRows as headers and every later non-blank
// row as an object keyed by those headers. Blank header cells are skipped.
func Table(sheet *workbook.Sheet, spec layout.Spec) models.Table {
	table := models.Table{Headers: []string{}, Data: []map[string]any{}}
	if sheet == nil || sheet.Len() <= spec.SkipRows {
		return table
	}

	for _, cell := range sheet.Row(spec.SkipRows) {
		table.Headers = append(table.Headers, text(cell))
	}

	for r := spec.SkipRows + 1; r < sheet.Len(); r++ {
		row := sheet.Row(r)
		if lastFilled(row) < 0 {
			continue
		}
		obj := make(map[string]any, len(table.Headers))
		for c, header := range table.Headers {
			if header == "" {
				continue
			}
			obj[header] = sheet.Cell(r, c)
		}
		table.Data = append(table.Data, obj)
	}

	return table
}
