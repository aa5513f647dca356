package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// ColumnRef is a 0-based column index. In YAML it may be written as a
// number (84) or as spreadsheet column letters ("CG").
type ColumnRef int

// ParseColumnRef parses "84" or "CG" into a 0-based column index.
func ParseColumnRef(s string) (ColumnRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty column reference")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative column index %d", n)
		}
		return ColumnRef(n), nil
	}
	n, err := excelize.ColumnNameToNumber(strings.ToUpper(s))
	if err != nil {
		return 0, fmt.Errorf("invalid column reference %q: %w", s, err)
	}
	return ColumnRef(n - 1), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *ColumnRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: column reference must be a scalar", node.Line)
	}
	ref, err := ParseColumnRef(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = ref
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c ColumnRef) MarshalYAML() (interface{}, error) {
	return int(c), nil
}

// Letters returns the column in spreadsheet notation ("A", "CG").
func (c ColumnRef) Letters() string {
	name, err := excelize.ColumnNumberToName(int(c) + 1)
	if err != nil {
		return strconv.Itoa(int(c))
	}
	return name
}
