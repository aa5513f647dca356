package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/imts-dashboard/imts-go/pkg/imts/chart"
	"github.com/imts-dashboard/imts-go/pkg/imts/models"
	"github.com/spf13/cobra"
)

func newChartCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "chart [data.json]",
		Short: "Render PNG charts from a generated document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var ds models.Dataset
			if err := json.Unmarshal(data, &ds); err != nil {
				return fmt.Errorf("invalid data document: %w", err)
			}

			written, err := chart.Render(&ds, outDir)
			if err != nil {
				return fmt.Errorf("failed to render charts: %w", err)
			}
			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "charts", "Directory for PNG files")
	return cmd
}
