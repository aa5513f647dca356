package storage

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/imts-dashboard/imts-go/pkg/imts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxBytes int64) *LocalStore {
	t.Helper()
	dir := t.TempDir()
	clock := func() time.Time { return time.Date(2025, 8, 1, 9, 30, 15, 0, time.UTC) }
	s := NewLocalStore(filepath.Join(dir, "uploads"), filepath.Join(dir, "data"), maxBytes, WithClock(clock))
	return s
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"Tables.xlsx", true},
		{"TABLES.XLSX", true},
		{"legacy.xls", true},
		{"1_BalanceOfTrade.csv", true},
		{"report.docx", false},
		{"archive.xlsx.zip", false},
		{"noext", false},
	}

	for _, tt := range tests {
		err := ValidateName(tt.name)
		if tt.valid {
			assert.NoError(t, err, tt.name)
		} else {
			assert.True(t, errors.Is(err, imts.ErrUnsupportedFileType), tt.name)
		}
	}
}

func TestSave(t *testing.T) {
	s := newTestStore(t, 1024)

	u, err := s.Save("../../Tables Nov2024.xlsx", strings.NewReader("workbook bytes"))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^Tables Nov2024_20250801_093015_[0-9a-f]{8}\.xlsx$`), u.Filename)
	assert.Equal(t, "Tables Nov2024.xlsx", u.OriginalName)
	assert.Equal(t, int64(len("workbook bytes")), u.Size)
	assert.Equal(t, filepath.Join(s.UploadsDir, u.Filename), u.Path)

	data, err := os.ReadFile(u.Path)
	require.NoError(t, err)
	assert.Equal(t, "workbook bytes", string(data))
}

func TestSaveRejectsTypeBeforeWriting(t *testing.T) {
	s := newTestStore(t, 1024)

	_, err := s.Save("report.docx", strings.NewReader("x"))
	assert.True(t, errors.Is(err, imts.ErrUnsupportedFileType))
	assert.NoDirExists(t, s.UploadsDir)
}

func TestSaveSizeLimit(t *testing.T) {
	s := newTestStore(t, 4)

	_, err := s.Save("big.csv", strings.NewReader("12345"))
	assert.True(t, errors.Is(err, imts.ErrSizeLimitExceeded))

	entries, err := os.ReadDir(s.UploadsDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	u, err := s.Save("small.csv", strings.NewReader("1234"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), u.Size)
}

func TestPromote(t *testing.T) {
	s := newTestStore(t, 0)

	csv, err := s.Save("old.csv", strings.NewReader("a,b"))
	require.NoError(t, err)
	current, err := s.Promote(csv)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.DataDir, "current_data.csv"), current)

	xlsx, err := s.Save("new.XLSX", strings.NewReader("xlsx"))
	require.NoError(t, err)
	current, err = s.Promote(xlsx)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(s.DataDir, "current_data.xlsx"), current)
	assert.NoFileExists(t, filepath.Join(s.DataDir, "current_data.csv"))
	data, err := os.ReadFile(current)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", string(data))

	got, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, current, got)
}

func TestList(t *testing.T) {
	s := newTestStore(t, 0)

	uploads, err := s.List()
	require.NoError(t, err)
	assert.NotNil(t, uploads)
	assert.Empty(t, uploads)

	first, err := s.Save("first.csv", strings.NewReader("1"))
	require.NoError(t, err)
	second, err := s.Save("second.csv", strings.NewReader("22"))
	require.NoError(t, err)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(first.Path, old, old))

	uploads, err = s.List()
	require.NoError(t, err)
	require.Len(t, uploads, 2)
	assert.Equal(t, second.Filename, uploads[0].Filename)
	assert.Equal(t, int64(2), uploads[0].Size)
	assert.Equal(t, first.Filename, uploads[1].Filename)
}
