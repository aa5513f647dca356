// Package extractor turns workbook sheets into typed dataset records.
//
// Every extractor takes a sheet and its layout.Spec, walks rows from
// Spec.SkipRows, filters them with a dataset-specific predicate and projects
// the layout column chains into record fields. A nil sheet yields an empty,
// non-nil slice.
package extractor

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// present reports whether a cell counts as filled for a fallback chain:
// nil, empty text and numeric zero all fall through to the next column.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case int64:
		return t != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	default:
		return true
	}
}

// firstPresent returns the first filled cell among cols, or nil.
func firstPresent(row []any, cols []int) any {
	for _, c := range cols {
		if c < 0 || c >= len(row) {
			continue
		}
		if present(row[c]) {
			return row[c]
		}
	}
	return nil
}

// number coerces a cell to float64. Absent, non-numeric, NaN and Inf
// cells become 0.
func number(v any) float64 {
	var f float64
	switch t := v.(type) {
	case int64:
		f = float64(t)
	case float64:
		f = t
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// numeric reports whether the cell holds a number rather than text.
func numeric(v any) bool {
	switch v.(type) {
	case int64, float64:
		return true
	}
	return false
}

// text renders a cell as trimmed text.
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// sub2 returns a-b on values already rounded to two places, exactly.
func sub2(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(2).InexactFloat64()
}

// hasPrefixAny reports whether name starts with any sentinel.
func hasPrefixAny(name string, sentinels []string) bool {
	for _, s := range sentinels {
		if s != "" && strings.HasPrefix(name, s) {
			return true
		}
	}
	return false
}

// containsAny reports whether name contains any sentinel.
func containsAny(name string, sentinels []string) bool {
	for _, s := range sentinels {
		if s != "" && strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// lastFilled returns the index of the last non-empty cell in row, or -1.
func lastFilled(row []any) int {
	for i := len(row) - 1; i >= 0; i-- {
		if row[i] != nil && row[i] != "" {
			return i
		}
	}
	return -1
}

// sortDesc stable-sorts records by key, largest first.
func sortDesc[T any](recs []T, key func(T) float64) {
	sort.SliceStable(recs, func(i, j int) bool {
		return key(recs[i]) > key(recs[j])
	})
}

// truncate caps recs at limit, keeping the tail when tail is set.
func truncate[T any](recs []T, limit int, tail bool) []T {
	if limit <= 0 || len(recs) <= limit {
		return recs
	}
	if tail {
		return recs[len(recs)-limit:]
	}
	return recs[:limit]
}
