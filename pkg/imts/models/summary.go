package models

// Summary holds headline indicators derived from the balance of trade.
type Summary struct {
	LatestPeriod    string  `json:"latestPeriod"`
	LatestExports   float64 `json:"latestExports"`
	LatestImports   float64 `json:"latestImports"`
	LatestBalance   float64 `json:"latestBalance"`
	ExportChangePct float64 `json:"exportChangePct"`
	ImportChangePct float64 `json:"importChangePct"`
	TotalExports    float64 `json:"totalExports"`
	TotalImports    float64 `json:"totalImports"`
	AverageExports  float64 `json:"averageExports"`
	AverageImports  float64 `json:"averageImports"`
	AverageTrade    float64 `json:"averageTrade"`
	ExportSharePct  float64 `json:"exportSharePct"`
	ImportSharePct  float64 `json:"importSharePct"`
	Periods         int     `json:"periods"`
	SurplusPeriods  int     `json:"surplusPeriods"`
	DeficitPeriods  int     `json:"deficitPeriods"`
}
