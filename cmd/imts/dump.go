package main

import (
	"fmt"
	"path/filepath"

	"github.com/imts-dashboard/imts-go/pkg/imts/output"
	"github.com/imts-dashboard/imts-go/pkg/imts/workbook"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var (
		outDir string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "dump [input.xlsx]",
		Short: "Write every sheet of a workbook to JSON",
		Long: `Dump writes each sheet to <sheet>.json plus a combined all_data.json and
prints the dimensions of every sheet. Useful when a new release shifts columns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := workbook.Open(args[0])
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total sheets: %d\n", len(wb.SheetNames()))
			for i, name := range wb.SheetNames() {
				sheet, _ := wb.Sheet(name)
				b := sheet.Bounds()
				fmt.Fprintf(out, "%d. %s\n", i+1, name)
				fmt.Fprintf(out, "   Dimensions: %d rows x %d columns", sheet.Len(), b.MaxCol+1)
				if r := b.Range(); r != "" {
					fmt.Fprintf(out, " (used %s)", r)
				}
				fmt.Fprintf(out, "\n   Saved to: %s\n", output.SheetFileName(name))
			}

			if _, err := output.WriteSheetFiles(output.DumpWorkbook(wb), outDir, pretty); err != nil {
				return fmt.Errorf("failed to write sheet files: %w", err)
			}
			fmt.Fprintf(out, "Combined file: %s\n", filepath.Join(outDir, output.AllDataFile))
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "extracted_data", "Directory for per-sheet output files")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "Pretty-print JSON output")
	return cmd
}
