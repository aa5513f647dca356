package extractor

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/imts-dashboard/imts-go/pkg/imts/layout"
	"github.com/imts-dashboard/imts-go/pkg/imts/models"
	"github.com/imts-dashboard/imts-go/pkg/imts/workbook"
)

// partnerRow is the shared shape of country and region rows.
type partnerRow struct {
	name        string
	value2024   float64
	value2025   float64
	tradeVolume float64
}

// partners walks a partner sheet. Names containing any sentinel or shorter
// than minLen are skipped; values are made absolute and rounded. Rows with
// no trade are dropped and the rest sorted by volume, largest first.
func partners(sheet *workbook.Sheet, spec layout.Spec, minLen int) []partnerRow {
	var result []partnerRow
	if sheet == nil {
		return result
	}

	cols := spec.Resolve(sheet)
	start, end := rowRange(sheet, spec)
	for r := start; r < end; r++ {
		row := sheet.Row(r)

		raw, ok := firstPresent(row, cols.Get(layout.ColName)).(string)
		if !ok || containsAny(raw, spec.Exclude) || utf8.RuneCountInString(raw) < minLen {
			continue
		}
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		prev := number(firstPresent(row, cols.Get(layout.ColPrevious)))
		cur := number(firstPresent(row, cols.Get(layout.ColCurrent)))
		volume := cur
		if volume == 0 {
			volume = prev
		}
		volume = math.Abs(volume)
		if volume <= 0 {
			continue
		}

		result = append(result, partnerRow{
			name:        name,
			value2024:   round2(math.Abs(prev)),
			value2025:   round2(math.Abs(cur)),
			tradeVolume: round2(volume),
		})
	}

	sortDesc(result, func(p partnerRow) float64 { return p.tradeVolume })
	return truncate(result, spec.Limit, spec.Tail)
}

// TradeByCountry extracts partner countries. Names shorter than three
// characters are footnote markers and are skipped.
func TradeByCountry(sheet *workbook.Sheet, spec layout.Spec) []models.CountryRecord {
	rows := partners(sheet, spec, 3)
	result := make([]models.CountryRecord, 0, len(rows))
	for _, p := range rows {
		result = append(result, models.CountryRecord{
			Country:     p.name,
			Value2024:   p.value2024,
			Value2025:   p.value2025,
			TradeVolume: p.tradeVolume,
		})
	}
	return result
}

// TradeByRegion extracts partner regions.
func TradeByRegion(sheet *workbook.Sheet, spec layout.Spec) []models.RegionRecord {
	rows := partners(sheet, spec, 0)
	result := make([]models.RegionRecord, 0, len(rows))
	for _, p := range rows {
		result = append(result, models.RegionRecord{
			Region:      p.name,
			Value2024:   p.value2024,
			Value2025:   p.value2025,
			TradeVolume: p.tradeVolume,
		})
	}
	return result
}
