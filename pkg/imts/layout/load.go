package layout

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// specOverride mirrors Spec with optional fields so that a YAML file only
// needs to name what differs from the defaults.
type specOverride struct {
	Sheet    *string          `yaml:"sheet"`
	SkipRows *int             `yaml:"skipRows"`
	MaxRows  *int             `yaml:"maxRows"`
	Limit    *int             `yaml:"limit"`
	Tail     *bool            `yaml:"tail"`
	Exclude  []string         `yaml:"exclude"`
	Columns  map[string]Chain `yaml:"columns"`
}

type layoutOverride struct {
	Datasets map[string]specOverride `yaml:"datasets"`
}

// Load reads a YAML layout file and applies it on top of Default.
// An empty path returns Default unchanged.
func Load(path string) (Layout, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	return Parse(data)
}

// Parse applies YAML layout overrides on top of Default.
func Parse(data []byte) (Layout, error) {
	var override layoutOverride
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&override); err != nil && !errors.Is(err, io.EOF) {
		return Layout{}, fmt.Errorf("parse layout: %w", err)
	}

	l := Default()
	for key, o := range override.Datasets {
		spec, ok := l.Datasets[key]
		if !ok {
			return Layout{}, fmt.Errorf("parse layout: unknown dataset %q", key)
		}
		l.Datasets[key] = o.apply(spec)
	}
	return l, l.Validate()
}

func (o specOverride) apply(s Spec) Spec {
	if o.Sheet != nil {
		s.Sheet = *o.Sheet
	}
	if o.SkipRows != nil {
		s.SkipRows = *o.SkipRows
	}
	if o.MaxRows != nil {
		s.MaxRows = *o.MaxRows
	}
	if o.Limit != nil {
		s.Limit = *o.Limit
	}
	if o.Tail != nil {
		s.Tail = *o.Tail
	}
	if o.Exclude != nil {
		s.Exclude = o.Exclude
	}
	if len(o.Columns) > 0 {
		cols := make(map[string]Chain, len(s.Columns)+len(o.Columns))
		for name, chain := range s.Columns {
			cols[name] = chain
		}
		for name, chain := range o.Columns {
			cols[name] = chain
		}
		s.Columns = cols
	}
	return s
}

// Validate checks that every dataset has a sheet and sane offsets.
func (l Layout) Validate() error {
	for _, key := range Keys {
		spec, ok := l.Datasets[key]
		if !ok {
			return fmt.Errorf("layout: dataset %q missing", key)
		}
		if spec.Sheet == "" {
			return fmt.Errorf("layout: dataset %q has no sheet", key)
		}
		if spec.SkipRows < 0 || spec.MaxRows < 0 || spec.Limit < 0 {
			return fmt.Errorf("layout: dataset %q has a negative row setting", key)
		}
	}
	return nil
}
