package extractor

import (
	"regexp"
	"strings"

	"github.com/imts-dashboard/imts-go/pkg/imts/aggregate"
	"github.com/imts-dashboard/imts-go/pkg/imts/layout"
	"github.com/imts-dashboard/imts-go/pkg/imts/models"
	"github.com/imts-dashboard/imts-go/pkg/imts/workbook"
)

var modeLabel = regexp.MustCompile(`(?i)^(sea|air|other|post|mail|courier)`)

// TradeByTransport collects mode rows that follow an IMPORTS or EXPORTS
// section heading and aggregates them per canonical mode.
func TradeByTransport(sheet *workbook.Sheet, spec layout.Spec) []models.TransportRecord {
	if sheet == nil {
		return []models.TransportRecord{}
	}

	cols := spec.Resolve(sheet)
	start, end := rowRange(sheet, spec)

	var pairs []aggregate.ModeValue
	inSection := false
	for r := start; r < end; r++ {
		row := sheet.Row(r)

		label, ok := firstPresent(row, cols.Get(layout.ColName)).(string)
		if !ok {
			continue
		}
		if strings.Contains(label, "IMPORTS") || strings.Contains(label, "EXPORTS") {
			inSection = true
			continue
		}
		label = strings.TrimSpace(label)
		if !inSection || !modeLabel.MatchString(label) {
			continue
		}

		value := number(firstPresent(row, cols.Get(layout.ColCurrent)))
		if value == 0 {
			value = number(firstPresent(row, cols.Get(layout.ColPrevious)))
		}
		pairs = append(pairs, aggregate.ModeValue{Label: label, Value: value})
	}

	return truncate(aggregate.Transport(pairs), spec.Limit, spec.Tail)
}
