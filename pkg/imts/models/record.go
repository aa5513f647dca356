// Package models defines the records and documents produced by extraction.
package models

// BalanceRecord is one period of the balance of trade.
type BalanceRecord struct {
	// Period is the source period label, e.g. "202412".
	Period string `json:"period"`
	// Exports is total exports (FOB).
	Exports float64 `json:"exports"`
	// Imports is total imports (CIF).
	Imports float64 `json:"imports"`
	// Balance is exports minus imports.
	Balance float64 `json:"balance"`
}

// CommodityRecord is one principal export or import commodity.
type CommodityRecord struct {
	Commodity string  `json:"commodity"`
	Value2024 float64 `json:"value2024"`
	Value2025 float64 `json:"value2025"`
	// YTD is the latest non-zero year-to-date value.
	YTD float64 `json:"ytd"`
}

// CountryRecord is trade with one partner country.
type CountryRecord struct {
	Country     string  `json:"country"`
	Value2024   float64 `json:"value2024"`
	Value2025   float64 `json:"value2025"`
	TradeVolume float64 `json:"tradeVolume"`
}

// RegionRecord is trade with one partner region.
type RegionRecord struct {
	Region      string  `json:"region"`
	Value2024   float64 `json:"value2024"`
	Value2025   float64 `json:"value2025"`
	TradeVolume float64 `json:"tradeVolume"`
}

// TransportRecord is the aggregated value for one transport mode.
type TransportRecord struct {
	Mode  string  `json:"mode"`
	Value float64 `json:"value"`
}

// AgreementRecord is trade under one trade agreement.
type AgreementRecord struct {
	Agreement string  `json:"agreement"`
	Value     float64 `json:"value"`
}

// HSRecord is one Harmonized System category.
type HSRecord struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}
