// Package workbook loads spreadsheet documents into immutable row grids.
package workbook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrSourceNotFound indicates the input path does not exist.
var ErrSourceNotFound = errors.New("source not found")

// ErrUnreadableFormat indicates the input could not be parsed as tabular data.
var ErrUnreadableFormat = errors.New("unreadable format")

// Workbook is a loaded document with its sheets in document order.
type Workbook struct {
	// Name is the file name of the source document (no directory).
	Name string

	order  []string
	sheets map[string]*Sheet
}

// New builds a workbook from already loaded sheets, keeping their order.
func New(name string, sheets ...*Sheet) *Workbook {
	wb := &Workbook{
		Name:   name,
		sheets: make(map[string]*Sheet, len(sheets)),
	}
	for _, s := range sheets {
		if _, dup := wb.sheets[s.Name]; dup {
			continue
		}
		wb.order = append(wb.order, s.Name)
		wb.sheets[s.Name] = s
	}
	return wb
}

// SheetNames returns the sheet names in document order.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, len(wb.order))
	copy(names, wb.order)
	return names
}

// Sheet returns the named sheet and whether it exists.
func (wb *Workbook) Sheet(name string) (*Sheet, bool) {
	s, ok := wb.sheets[name]
	return s, ok
}

// Open loads the document at path. CSV files become a single sheet named
// after the file stem; anything else is read as an OOXML workbook.
func Open(path string) (*Workbook, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnreadableFormat, path)
	}

	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		sheet, err := readCSV(path)
		if err != nil {
			return nil, err
		}
		return New(name, sheet), nil
	}

	sheets, err := readXLSX(path)
	if err != nil {
		return nil, err
	}
	return New(name, sheets...), nil
}
