// Package imts assembles the trade-statistics dataset from a source workbook.
package imts

import (
	"fmt"
	"time"

	"github.com/imts-dashboard/imts-go/pkg/imts/layout"
	"github.com/rs/zerolog"
)

// Variant represents the shape of the output document.
type Variant string

const (
	// VariantRecords emits typed, filtered records per dataset.
	VariantRecords Variant = "records"
	// VariantTable emits each dataset sheet as headers plus row objects.
	VariantTable Variant = "table"
)

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantRecords, VariantTable:
		return Variant(s), nil
	default:
		return "", fmt.Errorf("invalid variant: %s (must be records or table)", s)
	}
}

const (
	// DefaultSource is the publishing office written into metadata.
	DefaultSource = "Vanuatu National Statistics Office"
	// DefaultCurrency is the unit of every published value.
	DefaultCurrency = "VT Million"
)

// Options configures extraction behavior.
type Options struct {
	// Variant selects the output shape (records, table).
	Variant Variant
	// Layout locates the datasets. If nil, layout.Default is used.
	Layout *layout.Layout
	// Logger receives per-dataset progress. If nil, nothing is logged.
	Logger *zerolog.Logger
	// Now returns the generation timestamp. If nil, time.Now is used.
	Now func() time.Time
	// Source, Period and Currency are copied into the metadata.
	Source   string
	Period   string
	Currency string
	// FileName overrides the source file name in the metadata.
	FileName string
	// UploadedAt is set when the source came from an upload.
	UploadedAt *time.Time
	// NoSummary disables the key indicators block.
	NoSummary bool
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Variant:  VariantRecords,
		Source:   DefaultSource,
		Currency: DefaultCurrency,
	}
}

func (o Options) layout() layout.Layout {
	if o.Layout != nil {
		return *o.Layout
	}
	return layout.Default()
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	nop := zerolog.Nop()
	return &nop
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now().UTC()
	}
	return time.Now().UTC()
}

func (o Options) source() string {
	if o.Source != "" {
		return o.Source
	}
	return DefaultSource
}

func (o Options) currency() string {
	if o.Currency != "" {
		return o.Currency
	}
	return DefaultCurrency
}
