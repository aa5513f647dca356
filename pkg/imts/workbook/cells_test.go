package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestOpenXLSX(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	// Set some test data
	f.SetCellValue(sheetName, "A1", "Header1")
	f.SetCellValue(sheetName, "B1", "Header2")
	f.SetCellValue(sheetName, "A2", 100)
	f.SetCellValue(sheetName, "B2", 200.5)
	f.SetCellValue(sheetName, "A4", "Text")
	f.SetCellValue(sheetName, "C4", "after gap")

	// Save to temp file
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	wb, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if wb.Name != "test.xlsx" {
		t.Errorf("Expected book name test.xlsx, got %q", wb.Name)
	}

	sheet, ok := wb.Sheet(sheetName)
	if !ok {
		t.Fatalf("Expected sheet %q to exist", sheetName)
	}

	// Empty row 3 keeps its index
	if sheet.Len() != 4 {
		t.Errorf("Expected 4 rows, got %d", sheet.Len())
	}

	if sheet.Cell(0, 0) != "Header1" {
		t.Errorf("Expected 'Header1', got %v", sheet.Cell(0, 0))
	}

	// Check numeric values
	if sheet.Cell(1, 0) != int64(100) {
		t.Errorf("Expected int64(100), got %v (type: %T)", sheet.Cell(1, 0), sheet.Cell(1, 0))
	}
	if sheet.Cell(1, 1) != 200.5 {
		t.Errorf("Expected 200.5, got %v", sheet.Cell(1, 1))
	}

	// Gaps inside a row are nil, not empty strings
	if sheet.Cell(3, 1) != nil {
		t.Errorf("Expected nil gap, got %v", sheet.Cell(3, 1))
	}
	if sheet.Cell(3, 2) != "after gap" {
		t.Errorf("Expected 'after gap', got %v", sheet.Cell(3, 2))
	}

	// Out of range
	if sheet.Cell(99, 99) != nil {
		t.Errorf("Expected nil outside grid, got %v", sheet.Cell(99, 99))
	}
}

func TestOpenXLSXKeepsTextCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "01")
	f.SetCellValue(sheetName, "B1", "202412")
	f.SetCellValue(sheetName, "C1", 202412)

	tmpFile := filepath.Join(t.TempDir(), "text.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	wb, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	sheet, _ := wb.Sheet(sheetName)

	if sheet.Cell(0, 0) != "01" {
		t.Errorf("Expected text '01', got %v (type: %T)", sheet.Cell(0, 0), sheet.Cell(0, 0))
	}
	if sheet.Cell(0, 1) != "202412" {
		t.Errorf("Expected text '202412', got %v (type: %T)", sheet.Cell(0, 1), sheet.Cell(0, 1))
	}
	if sheet.Cell(0, 2) != int64(202412) {
		t.Errorf("Expected int64(202412), got %v (type: %T)", sheet.Cell(0, 2), sheet.Cell(0, 2))
	}
}

func TestOpenCSV(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "1_BalanceOfTrade.csv")
	content := "\xef\xbb\xbfPeriod,Label,Exports\n202401,Total,12.5\n,,\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}

	wb, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	names := wb.SheetNames()
	if len(names) != 1 || names[0] != "1_BalanceOfTrade" {
		t.Fatalf("Expected single sheet named after stem, got %v", names)
	}

	sheet, _ := wb.Sheet("1_BalanceOfTrade")
	if sheet.Cell(0, 0) != "Period" {
		t.Errorf("BOM not stripped: %q", sheet.Cell(0, 0))
	}
	if sheet.Cell(1, 0) != int64(202401) {
		t.Errorf("Expected int64(202401), got %v (type: %T)", sheet.Cell(1, 0), sheet.Cell(1, 0))
	}
	if sheet.Cell(1, 2) != 12.5 {
		t.Errorf("Expected 12.5, got %v", sheet.Cell(1, 2))
	}
	if len(sheet.Row(2)) != 0 {
		t.Errorf("Expected blank row to be empty, got %v", sheet.Row(2))
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", ""},
		{"NaN", "NaN"},
		{"Inf", "Inf"},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}
