// Package aggregate folds free-text categorical rows into a fixed label set.
package aggregate

import (
	"math"
	"strings"

	"github.com/imts-dashboard/imts-go/pkg/imts/models"
	"github.com/shopspring/decimal"
)

// Canonical transport modes.
const (
	ModeSea     = "Sea"
	ModeAir     = "Air"
	ModePostal  = "Postal"
	ModeCourier = "Courier"
	ModeOther   = "Other"
)

// Modes is the closed set every transport label resolves into.
var Modes = []string{ModeSea, ModeAir, ModePostal, ModeCourier, ModeOther}

// ModeValue is a raw (label, value) pair read from the transport sheet.
type ModeValue struct {
	Label string
	Value float64
}

// CanonicalMode maps a free-text label onto Modes. Matching is a
// case-insensitive substring test in the order sea, air, post|mail, courier.
func CanonicalMode(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "sea"):
		return ModeSea
	case strings.Contains(l, "air"):
		return ModeAir
	case strings.Contains(l, "post"), strings.Contains(l, "mail"):
		return ModePostal
	case strings.Contains(l, "courier"):
		return ModeCourier
	default:
		return ModeOther
	}
}

// Transport sums values per canonical mode. Records come out in the order
// each mode was first seen, with absolute values; zero totals are dropped.
func Transport(pairs []ModeValue) []models.TransportRecord {
	var order []string
	sums := make(map[string]decimal.Decimal)

	for _, p := range pairs {
		mode := CanonicalMode(p.Label)
		v := p.Value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		sum, seen := sums[mode]
		if !seen {
			order = append(order, mode)
		}
		sums[mode] = sum.Add(decimal.NewFromFloat(v))
	}

	result := make([]models.TransportRecord, 0, len(order))
	for _, mode := range order {
		total := sums[mode].Abs()
		if total.IsZero() {
			continue
		}
		result = append(result, models.TransportRecord{
			Mode:  mode,
			Value: total.InexactFloat64(),
		})
	}
	return result
}
