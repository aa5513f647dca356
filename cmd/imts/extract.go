package main

import (
	"fmt"

	"github.com/imts-dashboard/imts-go/pkg/imts"
	"github.com/imts-dashboard/imts-go/pkg/imts/layout"
	"github.com/imts-dashboard/imts-go/pkg/imts/output"
	"github.com/spf13/cobra"
)

type extractFlags struct {
	outputPath string
	pretty     bool
	variant    string
	layoutFile string
	source     string
	period     string
	currency   string
	noSummary  bool
}

func newExtractCmd() *cobra.Command {
	var f extractFlags

	cmd := &cobra.Command{
		Use:   "extract [input.xlsx]",
		Short: "Extract the dashboard datasets from a workbook",
		Long: `Extract reads the IMTS tables workbook (or a single-sheet CSV) and writes
the dashboard JSON document. Use -o - to print it to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], f)
		},
	}

	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "public/data.json", "Output file path (- for stdout)")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON on stdout (files are always indented)")
	cmd.Flags().StringVar(&f.variant, "variant", string(imts.VariantRecords), "Output shape: records, table")
	cmd.Flags().StringVar(&f.layoutFile, "layout", "", "YAML file overriding the dataset layout")
	cmd.Flags().StringVar(&f.source, "source", imts.DefaultSource, "Metadata source")
	cmd.Flags().StringVar(&f.period, "period", "", "Metadata period, e.g. \"November 2024 - July 2025\"")
	cmd.Flags().StringVar(&f.currency, "currency", imts.DefaultCurrency, "Metadata currency")
	cmd.Flags().BoolVar(&f.noSummary, "no-summary", false, "Omit the key indicators block")

	return cmd
}

func runExtract(cmd *cobra.Command, input string, f extractFlags) error {
	variant, err := imts.ParseVariant(f.variant)
	if err != nil {
		return err
	}

	l, err := layout.Load(f.layoutFile)
	if err != nil {
		return err
	}

	opts := imts.DefaultOptions()
	opts.Variant = variant
	opts.Layout = &l
	opts.Logger = logger()
	opts.Source = f.source
	opts.Period = f.period
	opts.Currency = f.currency
	opts.NoSummary = f.noSummary

	if f.outputPath == "-" {
		var doc any
		if variant == imts.VariantTable {
			doc, err = imts.ExtractRaw(input, opts)
		} else {
			doc, err = imts.Extract(input, opts)
		}
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}
		jsonData, err := output.ToJSON(doc, f.pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	}

	result, err := imts.Run(input, f.outputPath, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Output file: %s\n", result.Output)
	for _, key := range layout.Keys {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %-18s %d\n", key+":", result.Counts[key])
	}
	return nil
}
