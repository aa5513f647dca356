package models

// CellRow represents a single non-empty row of a dumped sheet.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column index (string, 1-based) to cell value.
	C map[string]any `json:"c"`
}

// SheetDump represents a whole sheet written by the dump command.
type SheetDump struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Range is the used range in A1 notation.
	Range string `json:"range,omitempty"`
	// Rows contains the non-empty rows.
	Rows []CellRow `json:"rows"`
}

// WorkbookDump maps sheet names to their dumps.
type WorkbookDump struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets maps sheet name to SheetDump.
	Sheets map[string]SheetDump `json:"sheets"`
}
