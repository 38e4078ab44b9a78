package cmd

import (
	"os"

	"github.com/nfrund/authforms/internal/app"
	"github.com/nfrund/authforms/internal/config"
	"github.com/nfrund/authforms/internal/logging"
	"github.com/nfrund/authforms/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Runs the HTTP server until interrupted. Configuration comes from the
environment and an optional .env file, see AUTHFORMS_* variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)

			s, err := app.NewServer(cfg)
			if err != nil {
				return err
			}

			ctx, stop := server.SignalContext(cmd.Context())
			defer stop()
			return s.Start(ctx)
		},
	}
}
