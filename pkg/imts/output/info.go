package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/imts-dashboard/imts-go/pkg/imts/layout"
)

// Info describes the current output document.
type Info struct {
	Exists       bool            `json:"exists"`
	LastModified *time.Time      `json:"lastModified,omitempty"`
	Size         int64           `json:"size,omitempty"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	RecordCounts map[string]int  `json:"recordCounts"`
}

// ReadInfo inspects the document at path. A missing file is reported with
// Exists false rather than as an error. Counts are read from either the
// records variant (arrays) or the table variant (objects with a data array).
func ReadInfo(path string) (*Info, error) {
	info := &Info{RecordCounts: map[string]int{}}

	st, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return info, nil
	}
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid output document: %w", err)
	}

	modified := st.ModTime().UTC()
	info.Exists = true
	info.LastModified = &modified
	info.Size = st.Size()
	info.Metadata = doc["metadata"]

	for _, key := range layout.Keys {
		info.RecordCounts[key] = countRecords(doc[key])
	}
	return info, nil
}

func countRecords(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		return len(arr)
	}
	var table struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &table); err == nil {
		return len(table.Data)
	}
	return 0
}
