// Package main provides the CLI entry point for imts-go.
package main

import (
	"os"

	"github.com/imts-dashboard/imts-go/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logPretty bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "imts",
		Short: "Extract and serve international merchandise trade statistics",
		Long: `imts-go turns the IMTS tables workbook into the JSON document consumed
by the trade dashboard, and serves it together with an upload endpoint.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logLevel, logPretty)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", true, "Human-readable console logs")

	rootCmd.AddCommand(
		newExtractCmd(),
		newServeCmd(),
		newDumpCmd(),
		newPDFCmd(),
		newChartCmd(),
	)
	return rootCmd
}

// logger returns the process logger configured by the root command.
func logger() *zerolog.Logger {
	l := log.Logger
	return &l
}
