// Package storage keeps uploaded source workbooks on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imts-dashboard/imts-go/pkg/imts"
)

// CurrentName is the stem of the canonical source file in the data directory.
const CurrentName = "current_data"

// AllowedExtensions lists the accepted upload extensions (lower case).
var AllowedExtensions = []string{".xlsx", ".xls", ".csv"}

// Upload describes one stored upload.
type Upload struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName,omitempty"`
	Path         string    `json:"-"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// LocalStore implements upload storage on the local filesystem.
type LocalStore struct {
	UploadsDir string
	DataDir    string
	MaxBytes   int64

	now func() time.Time
}

// Option configures a LocalStore.
type Option func(*LocalStore)

// WithClock sets the clock used for upload names and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *LocalStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewLocalStore creates a store. maxBytes <= 0 disables the size check.
func NewLocalStore(uploadsDir, dataDir string, maxBytes int64, opts ...Option) *LocalStore {
	s := &LocalStore{
		UploadsDir: uploadsDir,
		DataDir:    dataDir,
		MaxBytes:   maxBytes,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateName rejects file names whose extension is not allowed.
func ValidateName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (only Excel .xlsx, .xls and CSV files are allowed)", imts.ErrUnsupportedFileType, filepath.Base(name))
}

// Save validates originalName and copies r into the uploads directory under
// a unique name: <stem>_<yyyymmdd_hhmmss>_<uuid8><ext>.
func (s *LocalStore) Save(originalName string, r io.Reader) (*Upload, error) {
	if err := ValidateName(originalName); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.UploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	base := filepath.Base(originalName)
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]
	now := s.now()
	uniqueName := fmt.Sprintf("%s_%s_%s%s", stem, now.Format("20060102_150405"), uuid.New().String()[:8], ext)
	filePath := filepath.Join(s.UploadsDir, uniqueName)

	destFile, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}

	src := r
	if s.MaxBytes > 0 {
		src = io.LimitReader(r, s.MaxBytes+1)
	}
	size, err := io.Copy(destFile, src)
	closeErr := destFile.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && s.MaxBytes > 0 && size > s.MaxBytes {
		err = fmt.Errorf("%w: file exceeds %d bytes", imts.ErrSizeLimitExceeded, s.MaxBytes)
	}
	if err != nil {
		os.Remove(filePath)
		if errors.Is(err, imts.ErrSizeLimitExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to copy file contents: %w", err)
	}

	return &Upload{
		Filename:     uniqueName,
		OriginalName: base,
		Path:         filePath,
		Size:         size,
		UploadedAt:   now,
	}, nil
}

// Promote copies a stored upload to the canonical current source
// (current_data<ext>) and removes current_data files with other extensions.
// It returns the path of the current source.
func (s *LocalStore) Promote(u *Upload) (string, error) {
	if err := os.MkdirAll(s.DataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(u.Filename))
	target := filepath.Join(s.DataDir, CurrentName+ext)

	src, err := os.Open(u.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(s.DataDir, "."+CurrentName+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create current source: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to copy current source: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to replace current source: %w", err)
	}

	for _, other := range AllowedExtensions {
		if other == ext {
			continue
		}
		if err := os.Remove(filepath.Join(s.DataDir, CurrentName+other)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return target, fmt.Errorf("failed to remove stale source: %w", err)
		}
	}

	return target, nil
}

// Current returns the path of the current source, if any.
func (s *LocalStore) Current() (string, bool) {
	for _, ext := range AllowedExtensions {
		p := filepath.Join(s.DataDir, CurrentName+ext)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, true
		}
	}
	return "", false
}

// List returns the stored uploads, newest first. A missing uploads
// directory yields an empty list.
func (s *LocalStore) List() ([]Upload, error) {
	entries, err := os.ReadDir(s.UploadsDir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Upload{}, nil
	}
	if err != nil {
		return nil, err
	}

	uploads := make([]Upload, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		uploads = append(uploads, Upload{
			Filename:   e.Name(),
			Path:       filepath.Join(s.UploadsDir, e.Name()),
			Size:       info.Size(),
			UploadedAt: info.ModTime().UTC(),
		})
	}

	sort.SliceStable(uploads, func(i, j int) bool {
		return uploads[i].UploadedAt.After(uploads[j].UploadedAt)
	})
	return uploads, nil
}
