package extractor

import (
	"strings"

	"github.com/imts-dashboard/imts-go/pkg/imts/layout"
	"github.com/imts-dashboard/imts-go/pkg/imts/models"
	"github.com/imts-dashboard/imts-go/pkg/imts/workbook"
)

// PrincipalCommodities extracts the principal exports or imports sheet.
// YTD is the current-year value, else the previous-year value; rows with
// no positive YTD are dropped and the rest sorted by YTD, largest first.
func PrincipalCommodities(sheet *workbook.Sheet, spec layout.Spec) []models.CommodityRecord {
	result := []models.CommodityRecord{}
	if sheet == nil {
		return result
	}

	cols := spec.Resolve(sheet)
	start, end := rowRange(sheet, spec)
	for r := start; r < end; r++ {
		row := sheet.Row(r)

		raw, ok := firstPresent(row, cols.Get(layout.ColName)).(string)
		name := strings.TrimSpace(raw)
		if !ok || name == "" || hasPrefixAny(name, spec.Exclude) {
			continue
		}

		prev := number(firstPresent(row, cols.Get(layout.ColPrevious)))
		cur := number(firstPresent(row, cols.Get(layout.ColCurrent)))
		ytd := cur
		if ytd == 0 {
			ytd = prev
		}
		if ytd <= 0 {
			continue
		}

		result = append(result, models.CommodityRecord{
			Commodity: name,
			Value2024: prev,
			Value2025: cur,
			YTD:       ytd,
		})
	}

	sortDesc(result, func(r models.CommodityRecord) float64 { return r.YTD })
	return truncate(result, spec.Limit, spec.Tail)
}
