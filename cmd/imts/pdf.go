package main

import (
	"fmt"
	"time"

	"github.com/imts-dashboard/imts-go/pkg/imts/pdfreport"
	"github.com/spf13/cobra"
)

func newPDFCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "pdf [report.pdf]",
		Short: "Extract headline figures from a trade highlight PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, text, err := pdfreport.Extract(args[0], time.Now())
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}
			if err := pdfreport.WriteFiles(report, text, outDir); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			period := report.Period
			if period == "" {
				period = "Not found"
			}
			fmt.Fprintf(out, "Pages: %d\n", report.Metadata.Pages)
			fmt.Fprintf(out, "Period: %s\n", period)
			fmt.Fprintf(out, "Tables found: %d\n", len(report.Tables))
			fmt.Fprintf(out, "Statistics: %d\n", len(report.Statistics))
			fmt.Fprintf(out, "Commodities: %d\n", len(report.Commodities))
			fmt.Fprintf(out, "Countries: %d\n", len(report.Countries))
			if t := report.Totals; t.Exports != nil || t.Imports != nil {
				if t.Exports != nil {
					fmt.Fprintf(out, "Total exports: %.2f\n", *t.Exports)
				}
				if t.Imports != nil {
					fmt.Fprintf(out, "Total imports: %.2f\n", *t.Imports)
				}
				if t.Balance != nil {
					fmt.Fprintf(out, "Trade balance: %.2f\n", *t.Balance)
				}
			}
			fmt.Fprintf(out, "Output: %s\n", outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "extracted_data", "Directory for pdf_data.json and pdf_raw_text.txt")
	return cmd
}
