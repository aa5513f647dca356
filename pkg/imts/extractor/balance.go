package extractor

import (
	"github.com/imts-dashboard/imts-go/pkg/imts/layout"
	"github.com/imts-dashboard/imts-go/pkg/imts/models"
	"github.com/imts-dashboard/imts-go/pkg/imts/workbook"
)

// rowRange returns the [start, end) rows to scan for spec.
func rowRange(sheet *workbook.Sheet, spec layout.Spec) (int, int) {
	start, end := spec.SkipRows, sheet.Len()
	if spec.MaxRows > 0 && start+spec.MaxRows < end {
		end = start + spec.MaxRows
	}
	return start, end
}

// BalanceOfTrade extracts one record per numeric period row with positive
// exports or imports. A missing or zero balance cell is derived from the
// rounded exports and imports. Records keep source order.
func BalanceOfTrade(sheet *workbook.Sheet, spec layout.Spec) []models.BalanceRecord {
	result := []models.BalanceRecord{}
	if sheet == nil {
		return result
	}

	cols := spec.Resolve(sheet)
	start, end := rowRange(sheet, spec)
	for r := start; r < end; r++ {
		row := sheet.Row(r)

		period := firstPresent(row, cols.Get(layout.ColName))
		if !numeric(period) || hasPrefixAny(text(period), spec.Exclude) {
			continue
		}

		exports := number(firstPresent(row, cols.Get(layout.ColExports)))
		imports := number(firstPresent(row, cols.Get(layout.ColImports)))
		if exports <= 0 && imports <= 0 {
			continue
		}

		rec := models.BalanceRecord{
			Period:  text(period),
			Exports: round2(exports),
			Imports: round2(imports),
		}
		if balance := number(firstPresent(row, cols.Get(layout.ColBalance))); balance != 0 {
			rec.Balance = round2(balance)
		} else {
			rec.Balance = sub2(rec.Exports, rec.Imports)
		}
		result = append(result, rec)
	}

	return truncate(result, spec.Limit, spec.Tail)
}
