package extractor

import (
	"github.com/imts-dashboard/imts-go/pkg/imts/layout"
	"github.com/imts-dashboard/imts-go/pkg/imts/models"
	"github.com/imts-dashboard/imts-go/pkg/imts/workbook"
)

// HSCategories extracts an imports- or exports-by-HS sheet. The value is the
// last filled cell of the row (the latest period), else the one before it.
// Only the first Spec.MaxRows data rows are scanned.
func HSCategories(sheet *workbook.Sheet, spec layout.Spec) []models.HSRecord {
	result := []models.HSRecord{}
	if sheet == nil {
		return result
	}

	cols := spec.Resolve(sheet)
	start, end := rowRange(sheet, spec)
	for r := start; r < end; r++ {
		row := sheet.Row(r)

		code := text(firstPresent(row, cols.Get(layout.ColName)))
		if code == "" || hasPrefixAny(code, spec.Exclude) {
			continue
		}

		last := lastFilled(row)
		value := number(firstPresent(row, []int{last, last - 1}))
		if value <= 0 {
			continue
		}

		description := text(firstPresent(row, cols.Get(layout.ColDescription)))
		if description == "" {
			description = "HS " + code
		}

		result = append(result, models.HSRecord{
			Code:        code,
			Description: description,
			Value:       value,
		})
	}

	sortDesc(result, func(r models.HSRecord) float64 { return r.Value })
	return truncate(result, spec.Limit, spec.Tail)
}
