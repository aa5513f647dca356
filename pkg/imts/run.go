package imts

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/imts-dashboard/imts-go/pkg/imts/output"
	"github.com/imts-dashboard/imts-go/pkg/imts/workbook"
	"github.com/rs/zerolog"
)

// Result reports one extraction run.
type Result struct {
	Success bool           `json:"success"`
	Output  string         `json:"output"`
	Counts  map[string]int `json:"recordCounts"`
	Log     []string       `json:"processLog"`
}

// lineRecorder collects the messages of info and higher events. Events
// below output are recorded but not written by the caller's logger.
type lineRecorder struct {
	lines  []string
	output zerolog.Level
}

func (r *lineRecorder) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	if level >= zerolog.InfoLevel && level != zerolog.NoLevel && msg != "" {
		if level >= zerolog.WarnLevel {
			msg = level.String() + ": " + msg
		}
		r.lines = append(r.lines, msg)
	}
	if level < r.output {
		e.Discard()
	}
}

// Run loads input, assembles the selected variant and replaces the JSON
// document at outputPath. Info and higher messages logged during the run are
// returned in Result.Log whatever the level of opts.Logger. Failures wrap
// ErrProcessingFailure.
func Run(input, outputPath string, opts Options) (*Result, error) {
	base := zerolog.New(io.Discard)
	if opts.Logger != nil && opts.Logger.GetLevel() != zerolog.Disabled {
		base = *opts.Logger
	}
	rec := &lineRecorder{lines: []string{}, output: base.GetLevel()}
	logger := base.Hook(rec)
	if rec.output > zerolog.InfoLevel {
		logger = logger.Level(zerolog.InfoLevel)
	}
	opts.Logger = &logger

	result := &Result{Output: outputPath, Counts: map[string]int{}}
	fail := func(err error) (*Result, error) {
		logger.Error().Err(err).Msgf("processing failed: %v", err)
		result.Log = rec.lines
		return result, fmt.Errorf("%w: %w", ErrProcessingFailure, err)
	}

	if outputPath == "" {
		return fail(fmt.Errorf("output path is required"))
	}

	logger.Info().Str("input", input).Msgf("reading %s", filepath.Base(input))
	wb, err := workbook.Open(input)
	if err != nil {
		return fail(err)
	}
	logger.Info().Int("sheets", len(wb.SheetNames())).Msgf("found %d sheets", len(wb.SheetNames()))

	var doc any
	switch opts.Variant {
	case VariantTable:
		raw := AssembleRaw(wb, opts)
		result.Counts = raw.Counts()
		doc = raw
	case VariantRecords, "":
		ds := Assemble(wb, opts)
		result.Counts = ds.Counts()
		doc = ds
	default:
		return fail(fmt.Errorf("invalid variant: %s", opts.Variant))
	}

	if err := output.WriteJSON(outputPath, doc, true); err != nil {
		return fail(err)
	}

	logger.Info().Str("output", outputPath).Msgf("wrote %s", outputPath)
	result.Success = true
	result.Log = rec.lines
	return result, nil
}
