package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestOpenUnreadable(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"garbage.xlsx", "this is not a zip archive"},
		{"legacy.xls", "\xd0\xcf\x11\xe0\xa1\xb1\x1a\xe1 biff"},
		{"empty.csv", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Open(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnreadableFormat)
		})
	}
}

func TestNewKeepsOrderAndDropsDuplicates(t *testing.T) {
	wb := New("book.xlsx",
		NewSheet("b", nil),
		NewSheet("a", nil),
		NewSheet("b", [][]any{{"dup"}}),
	)

	assert.Equal(t, []string{"b", "a"}, wb.SheetNames())
	s, ok := wb.Sheet("b")
	require.True(t, ok)
	assert.Nil(t, s.Rows)

	_, ok = wb.Sheet("missing")
	assert.False(t, ok)
}

func TestBounds(t *testing.T) {
	sheet := NewSheet("s", [][]any{
		{},
		{nil, "x", nil},
		{nil, nil, nil, int64(4)},
		{"", nil},
	})

	b := sheet.Bounds()
	assert.Equal(t, 1, b.MinRow)
	assert.Equal(t, 2, b.MaxRow)
	assert.Equal(t, 1, b.MinCol)
	assert.Equal(t, 3, b.MaxCol)
	assert.Equal(t, 2, b.NonEmpty)
	assert.Equal(t, 2, b.Rows())
	assert.Equal(t, 3, b.Cols())
	assert.Equal(t, "B2:D3", b.Range())

	empty := NewSheet("e", [][]any{{nil}}).Bounds()
	assert.True(t, empty.Empty())
	assert.Equal(t, "", empty.Range())
	assert.Equal(t, 0, empty.Rows())
}
