package output

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/imts-dashboard/imts-go/pkg/imts/models"
	"github.com/imts-dashboard/imts-go/pkg/imts/workbook"
)

// AllDataFile is the combined dump written next to the per-sheet files.
const AllDataFile = "all_data.json"

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SheetFileName returns the dump file name for a sheet.
func SheetFileName(sheetName string) string {
	return unsafeName.ReplaceAllString(sheetName, "_") + ".json"
}

// DumpSheet converts a sheet to its non-empty rows with 1-based row and
// column indices.
func DumpSheet(sheet *workbook.Sheet) models.SheetDump {
	dump := models.SheetDump{
		Name:  sheet.Name,
		Range: sheet.Bounds().Range(),
		Rows:  []models.CellRow{},
	}

	for rowIdx, row := range sheet.Rows {
		cellMap := make(map[string]any)
		for colIdx, v := range row {
			if v == nil {
				continue
			}
			cellMap[strconv.Itoa(colIdx+1)] = v
		}
		if len(cellMap) > 0 {
			dump.Rows = append(dump.Rows, models.CellRow{R: rowIdx + 1, C: cellMap})
		}
	}

	return dump
}

// DumpWorkbook converts every sheet of wb.
func DumpWorkbook(wb *workbook.Workbook) models.WorkbookDump {
	dump := models.WorkbookDump{
		BookName: wb.Name,
		Sheets:   make(map[string]models.SheetDump),
	}
	for _, name := range wb.SheetNames() {
		sheet, _ := wb.Sheet(name)
		dump.Sheets[name] = DumpSheet(sheet)
	}
	return dump
}

// WriteSheetFiles writes one file per sheet plus AllDataFile into dir and
// returns the written paths.
func WriteSheetFiles(dump models.WorkbookDump, dir string, pretty bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var written []string
	for sheetName, sheet := range dump.Sheets {
		filename := filepath.Join(dir, SheetFileName(sheetName))
		if err := WriteJSON(filename, sheet, pretty); err != nil {
			return written, err
		}
		written = append(written, filename)
	}

	combined := filepath.Join(dir, AllDataFile)
	if err := WriteJSON(combined, dump, pretty); err != nil {
		return written, err
	}
	return append(written, combined), nil
}
