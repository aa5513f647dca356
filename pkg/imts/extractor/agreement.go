package extractor

import (
	"strings"

	"github.com/imts-dashboard/imts-go/pkg/imts/layout"
	"github.com/imts-dashboard/imts-go/pkg/imts/models"
	"github.com/imts-dashboard/imts-go/pkg/imts/workbook"
)

// TradeByAgreement extracts trade per trade agreement in source order.
func TradeByAgreement(sheet *workbook.Sheet, spec layout.Spec) []models.AgreementRecord {
	result := []models.AgreementRecord{}
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

		value := number(firstPresent(row, cols.Get(layout.ColCurrent)))
		if value == 0 {
			value = number(firstPresent(row, cols.Get(layout.ColPrevious)))
		}
		if value <= 0 {
			continue
		}

		result = append(result, models.AgreementRecord{Agreement: name, Value: value})
	}

	return truncate(result, spec.Limit, spec.Tail)
}
