package models

import (
	"encoding/json"
	"time"
)

// Metadata describes where a dataset came from and when it was built.
type Metadata struct {
	// Source is the publishing office.
	Source string `json:"source"`
	// Period is the human-readable coverage, e.g. "November 2024 - July 2025".
	Period string `json:"period,omitempty"`
	// Currency is the unit of every value.
	Currency string `json:"currency"`
	// LastUpdated is the generation timestamp.
	LastUpdated time.Time `json:"lastUpdated"`
	// UploadedAt is set when the source came from an upload.
	UploadedAt *time.Time `json:"uploadedAt,omitempty"`
	// FileName is the source file name (no path).
	FileName string `json:"fileName,omitempty"`
}

// Dataset is the document consumed by the dashboard.
type Dataset struct {
	BalanceOfTrade   []BalanceRecord   `json:"balanceOfTrade"`
	PrincipalExports []CommodityRecord `json:"principalExports"`
	PrincipalImports []CommodityRecord `json:"principalImports"`
	TradeByCountry   []CountryRecord   `json:"tradeByCountry"`
	TradeByRegion    []RegionRecord    `json:"tradeByRegion"`
	TradeByTransport []TransportRecord `json:"tradeByTransport"`
	TradeByAgreement []AgreementRecord `json:"tradeByAgreement"`
	ImportsByHS      []HSRecord        `json:"importsByHS"`
	ExportsByHS      []HSRecord        `json:"exportsByHS"`
	Summary          *Summary          `json:"summary,omitempty"`
	Metadata         Metadata          `json:"metadata"`
}

// Counts returns the number of records per dataset key.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		"balanceOfTrade":   len(d.BalanceOfTrade),
		"principalExports": len(d.PrincipalExports),
		"principalImports": len(d.PrincipalImports),
		"tradeByCountry":   len(d.TradeByCountry),
		"tradeByRegion":    len(d.TradeByRegion),
		"tradeByTransport": len(d.TradeByTransport),
		"tradeByAgreement": len(d.TradeByAgreement),
		"importsByHS":      len(d.ImportsByHS),
		"exportsByHS":      len(d.ExportsByHS),
	}
}

// Table is a sheet region keyed by its header row.
type Table struct {
	Headers []string         `json:"headers"`
	Data    []map[string]any `json:"data"`
}

// RawDataset is the table variant of the document: one Table per dataset key.
type RawDataset struct {
	Tables   map[string]Table
	Metadata Metadata
}

// Counts returns the number of data rows per dataset key.
func (d *RawDataset) Counts() map[string]int {
	counts := make(map[string]int, len(d.Tables))
	for key, t := range d.Tables {
		counts[key] = len(t.Data)
	}
	return counts
}

// MarshalJSON flattens the tables next to the metadata key.
func (d RawDataset) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(d.Tables)+1)
	for key, t := range d.Tables {
		doc[key] = t
	}
	doc["metadata"] = d.Metadata
	return json.Marshal(doc)
}
