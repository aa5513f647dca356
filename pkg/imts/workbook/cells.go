package workbook

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readXLSX loads every sheet of an OOXML workbook.
func readXLSX(path string) ([]*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFormat, err)
	}
	defer f.Close()

	var sheets []*Sheet
	for _, sheetName := range f.GetSheetList() {
		// Raw values keep numbers free of display formatting
		rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrUnreadableFormat, sheetName, err)
		}
		grid := typeRows(rows, func(r, c int, s string) any {
			return cellValue(f, sheetName, r, c, s)
		})
		sheets = append(sheets, NewSheet(sheetName, grid))
	}
	return sheets, nil
}

// cellValue types a raw xlsx value by its stored cell type. Text cells stay
// strings so "01" or a period entered as text is not read as a number.
func cellValue(f *excelize.File, sheet string, r, c int, s string) any {
	ref, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return parseValue(s)
	}
	cellType, err := f.GetCellType(sheet, ref)
	if err != nil {
		return parseValue(s)
	}
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return s
	}
	return parseValue(s)
}

// readCSV loads a CSV file as one sheet named after the file stem.
func readCSV(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableFormat, err)
		}
		rows = append(rows, record)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no rows", ErrUnreadableFormat, filepath.Base(path))
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewSheet(stem, typeRows(rows, func(_, _ int, s string) any { return parseValue(s) })), nil
}

// typeRows converts string rows into typed cells, trimming trailing blanks.
func typeRows(rows [][]string, value func(r, c int, s string) any) [][]any {
	grid := make([][]any, len(rows))
	for r, row := range rows {
		last := len(row) - 1
		for last >= 0 && row[last] == "" {
			last--
		}
		cells := make([]any, last+1)
		for c := 0; c <= last; c++ {
			if row[c] == "" {
				continue
			}
			cells[c] = value(r, c, row[c])
		}
		grid[r] = cells
	}
	return grid
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) any {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float; NaN and Inf spellings stay text
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	// Return as string
	return s
}
