package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/imts-dashboard/imts-go/internal/config"
	"github.com/imts-dashboard/imts-go/internal/logging"
	"github.com/imts-dashboard/imts-go/internal/server"
	"github.com/imts-dashboard/imts-go/pkg/imts/layout"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload and data server",
		Long: `Serve exposes the upload endpoint and the generated document over HTTP.
Settings come from the environment, optionally loaded from a .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				log.Warn().Err(err).Msg("could not load .env file")
			}

			cfg := config.Load()
			if !cmd.Flags().Changed("log-level") && !cmd.Flags().Changed("log-pretty") {
				logging.Setup(cfg.Log.Level, cfg.Log.Pretty)
			}
			if port != "" {
				cfg.Server.Port = port
			}

			l, err := layout.Load(cfg.Paths.LayoutFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info().
				Str("data_dir", cfg.Paths.DataDir).
				Str("uploads_dir", cfg.Paths.UploadsDir).
				Str("output", cfg.Paths.OutputFile).
				Msg("configuration loaded")

			return server.New(cfg, l, log.Logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")
	return cmd
}
