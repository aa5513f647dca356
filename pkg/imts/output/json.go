// Package output provides serialization and file output for extracted data.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ToJSON serializes v to JSON. Pretty output is indented with two spaces.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteFile replaces path with data. The content goes to a temporary file
// in the same directory first, so readers never see a partial document.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// WriteJSON serializes v and writes it to path.
func WriteJSON(path string, v any, pretty bool) error {
	data, err := ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if pretty {
		data = append(data, '\n')
	}
	if err := WriteFile(path, data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
