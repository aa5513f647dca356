package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/imts-dashboard/imts-go/pkg/imts/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSON(t *testing.T) {
	v := map[string]any{"a": []int{1}}

	compact, err := ToJSON(v, false)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1]}`, string(compact))

	pretty, err := ToJSON(v, true)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    1\n  ]\n}", string(pretty))
}

func TestWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "public", "data.json")

	require.NoError(t, WriteFile(path, []byte("first, longer content")))
	require.NoError(t, WriteFile(path, []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestDumpSheet(t *testing.T) {
	sheet := workbook.NewSheet("Sheet1", [][]any{
		{"Name", nil, "Value"},
		{},
		{nil, "x", int64(5)},
	})

	dump := DumpSheet(sheet)

	assert.Equal(t, "Sheet1", dump.Name)
	assert.Equal(t, "A1:C3", dump.Range)
	require.Len(t, dump.Rows, 2)
	assert.Equal(t, 1, dump.Rows[0].R)
	assert.Equal(t, map[string]any{"1": "Name", "3": "Value"}, dump.Rows[0].C)
	assert.Equal(t, 3, dump.Rows[1].R)
	assert.Equal(t, int64(5), dump.Rows[1].C["3"])
}

func TestWriteSheetFiles(t *testing.T) {
	wb := workbook.New("book.xlsx",
		workbook.NewSheet("1_BalanceOfTrade", [][]any{{"a"}}),
		workbook.NewSheet("Notes & Sources", [][]any{{"b"}}),
	)
	dir := filepath.Join(t.TempDir(), "extracted_data")

	written, err := WriteSheetFiles(DumpWorkbook(wb), dir, true)
	require.NoError(t, err)
	assert.Len(t, written, 3)

	assert.FileExists(t, filepath.Join(dir, "1_BalanceOfTrade.json"))
	assert.FileExists(t, filepath.Join(dir, "Notes___Sources.json"))

	data, err := os.ReadFile(filepath.Join(dir, AllDataFile))
	require.NoError(t, err)
	var combined map[string]any
	require.NoError(t, json.Unmarshal(data, &combined))
	assert.Equal(t, "book.xlsx", combined["book_name"])
	assert.Len(t, combined["sheets"], 2)
}

func TestReadInfoMissing(t *testing.T) {
	info, err := ReadInfo(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	assert.False(t, info.Exists)
	assert.NotNil(t, info.RecordCounts)
}

func TestReadInfoCountsBothVariants(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	doc := `{
  "balanceOfTrade": [{"period": "2024"}, {"period": "2025"}],
  "tradeByRegion": {"headers": ["Region"], "data": [{"Region": "Asia"}]},
  "metadata": {"source": "NSO"}
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	info, err := ReadInfo(path)
	require.NoError(t, err)
	assert.True(t, info.Exists)
	assert.NotNil(t, info.LastModified)
	assert.Equal(t, int64(len(doc)), info.Size)
	assert.JSONEq(t, `{"source": "NSO"}`, string(info.Metadata))
	assert.Equal(t, 2, info.RecordCounts["balanceOfTrade"])
	assert.Equal(t, 1, info.RecordCounts["tradeByRegion"])
	assert.Equal(t, 0, info.RecordCounts["exportsByHS"])
	assert.Len(t, info.RecordCounts, 9)
}

func TestReadInfoInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := ReadInfo(path)
	assert.Error(t, err)
}
