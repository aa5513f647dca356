// Package summary derives headline indicators from the balance of trade.
package summary

import (
	"math"

	"github.com/imts-dashboard/imts-go/pkg/imts/models"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// Compute returns the indicators for the given balance-of-trade window, or
// nil when there are no periods. Every field is finite.
func Compute(balance []models.BalanceRecord) *models.Summary {
	if len(balance) == 0 {
		return nil
	}

	exports := make([]float64, len(balance))
	imports := make([]float64, len(balance))
	trade := make([]float64, len(balance))
	s := &models.Summary{Periods: len(balance)}
	for i, rec := range balance {
		exports[i] = rec.Exports
		imports[i] = rec.Imports
		trade[i] = rec.Exports + rec.Imports
		switch {
		case rec.Balance > 0:
			s.SurplusPeriods++
		case rec.Balance < 0:
			s.DeficitPeriods++
		}
	}

	latest := balance[len(balance)-1]
	s.LatestPeriod = latest.Period
	s.LatestExports = latest.Exports
	s.LatestImports = latest.Imports
	s.LatestBalance = latest.Balance
	if len(balance) > 1 {
		prev := balance[len(balance)-2]
		s.ExportChangePct = changePct(prev.Exports, latest.Exports)
		s.ImportChangePct = changePct(prev.Imports, latest.Imports)
	}

	totalExports, _ := stats.Sum(exports)
	totalImports, _ := stats.Sum(imports)
	s.TotalExports = round2(totalExports)
	s.TotalImports = round2(totalImports)

	meanExports, _ := stats.Mean(exports)
	meanImports, _ := stats.Mean(imports)
	meanTrade, _ := stats.Mean(trade)
	s.AverageExports = round2(meanExports)
	s.AverageImports = round2(meanImports)
	s.AverageTrade = round2(meanTrade)

	if total := totalExports + totalImports; total > 0 {
		s.ExportSharePct = round2(totalExports / total * 100)
		s.ImportSharePct = round2(totalImports / total * 100)
	}

	return s
}

// changePct is the percent change from prev to cur; 0 when prev is 0.
func changePct(prev, cur float64) float64 {
	if prev == 0 {
		return 0
	}
	return round2((cur - prev) / math.Abs(prev) * 100)
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
