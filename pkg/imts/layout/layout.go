// Package layout describes where each dataset lives in the source workbook:
// sheet name, header rows to skip, column fallback chains and output caps.
package layout

// Dataset keys in assembly order.
const (
	KeyBalanceOfTrade   = "balanceOfTrade"
	KeyPrincipalExports = "principalExports"
	KeyPrincipalImports = "principalImports"
	KeyTradeByCountry   = "tradeByCountry"
	KeyTradeByRegion    = "tradeByRegion"
	KeyTradeByTransport = "tradeByTransport"
	KeyTradeByAgreement = "tradeByAgreement"
	KeyImportsByHS      = "importsByHS"
	KeyExportsByHS      = "exportsByHS"
)

// Keys lists every dataset key in the order the assembler runs them.
var Keys = []string{
	KeyBalanceOfTrade,
	KeyPrincipalExports,
	KeyPrincipalImports,
	KeyTradeByCountry,
	KeyTradeByRegion,
	KeyTradeByTransport,
	KeyTradeByAgreement,
	KeyImportsByHS,
	KeyExportsByHS,
}

// Column names used in Spec.Columns.
const (
	ColName        = "name"
	ColExports     = "exports"
	ColImports     = "imports"
	ColBalance     = "balance"
	ColPrevious    = "value2024"
	ColCurrent     = "value2025"
	ColDescription = "description"
)

// Spec locates one dataset inside the workbook.
type Spec struct {
	// Sheet is the workbook sheet name.
	Sheet string `yaml:"sheet"`
	// SkipRows is the number of header rows before data starts.
	SkipRows int `yaml:"skipRows"`
	// MaxRows caps how many rows after SkipRows are scanned (0 = all).
	MaxRows int `yaml:"maxRows,omitempty"`
	// Limit caps the number of emitted records (0 = no cap).
	Limit int `yaml:"limit,omitempty"`
	// Tail keeps the last Limit records instead of the first.
	Tail bool `yaml:"tail,omitempty"`
	// Exclude lists header/footer sentinels for the name column.
	Exclude []string `yaml:"exclude,omitempty"`
	// Columns maps column names to fallback chains.
	Columns map[string]Chain `yaml:"columns,omitempty"`
}

// Chain is an ordered list of candidate columns for one field. Labels are
// looked up in the skipped header rows and tried before Offsets.
type Chain struct {
	Labels  []string    `yaml:"labels,omitempty"`
	Offsets []ColumnRef `yaml:"offsets,omitempty"`
}

// Layout is the full set of dataset specs keyed by dataset key.
type Layout struct {
	Datasets map[string]Spec `yaml:"datasets"`
}

// Spec returns the dataset layout for key and whether it is defined.
func (l Layout) Spec(key string) (Spec, bool) {
	s, ok := l.Datasets[key]
	return s, ok
}

func offsets(cols ...int) Chain {
	refs := make([]ColumnRef, len(cols))
	for i, c := range cols {
		refs[i] = ColumnRef(c)
	}
	return Chain{Offsets: refs}
}

// Default returns the layout of the published IMTS tables workbook.
// The year columns are positional and shift between releases, hence the
// three-column fallback chains.
func Default() Layout {
	principal := func(sheet string) Spec {
		return Spec{
			Sheet:    sheet,
			SkipRows: 4,
			Exclude:  []string{"Commodity", "TOTAL", "Notes:", "Source:"},
			Columns: map[string]Chain{
				ColName:     offsets(0),
				ColPrevious: offsets(84, 85, 86),
				ColCurrent:  offsets(96, 97, 98),
			},
		}
	}
	hs := func(sheet string) Spec {
		return Spec{
			Sheet:    sheet,
			SkipRows: 3,
			MaxRows:  50,
			Limit:    20,
			Exclude:  []string{"Period", "TOTAL", "Notes:"},
			Columns: map[string]Chain{
				ColName:        offsets(0),
				ColDescription: offsets(1),
			},
		}
	}

	return Layout{Datasets: map[string]Spec{
		KeyBalanceOfTrade: {
			Sheet:    "1_BalanceOfTrade",
			SkipRows: 3,
			Limit:    20,
			Tail:     true,
			Exclude:  []string{"Period", "Annually", "Monthly"},
			Columns: map[string]Chain{
				ColName:    offsets(0),
				ColExports: offsets(2),
				ColImports: offsets(3),
				ColBalance: offsets(4),
			},
		},
		KeyPrincipalExports: principal("6_PrincipalExports"),
		KeyPrincipalImports: principal("7_PrincipalImports"),
		KeyTradeByCountry: {
			Sheet:    "8_BalanceOfTradePartnerCountry",
			SkipRows: 4,
			Limit:    20,
			Exclude: []string{"COUNTRY", "Notes:", "Source:", "*", "TOTAL", "All others",
				"Annually", "Monthly", "ANNUALLY", "MONTHLY"},
			Columns: map[string]Chain{
				ColName:     offsets(0),
				ColPrevious: offsets(86, 87, 88),
				ColCurrent:  offsets(98, 99, 100),
			},
		},
		KeyTradeByRegion: {
			Sheet:    "9_BalanceOfTradeRegion",
			SkipRows: 4,
			Exclude:  []string{"REGION", "Notes:", "Source:", "TOTAL", "Annually", "Monthly"},
			Columns: map[string]Chain{
				ColName:     offsets(0),
				ColPrevious: offsets(64, 65, 66),
				ColCurrent:  offsets(73, 74, 75),
			},
		},
		KeyTradeByTransport: {
			Sheet:    "10_TradeByModeTransport",
			SkipRows: 0,
			Columns: map[string]Chain{
				ColName:     offsets(0),
				ColPrevious: offsets(86, 87, 88),
				ColCurrent:  offsets(98, 99, 100),
			},
		},
		KeyTradeByAgreement: {
			Sheet:    "11_TradeByTradeAgreement",
			SkipRows: 3,
			Exclude:  []string{"Notes:", "Source:"},
			Columns: map[string]Chain{
				ColName:     offsets(0),
				ColPrevious: offsets(60, 61, 62),
				ColCurrent:  offsets(70, 71, 72),
			},
		},
		KeyImportsByHS: hs("2_ImportsByHS"),
		KeyExportsByHS: hs("3_ExportsByHS"),
	}}
}
