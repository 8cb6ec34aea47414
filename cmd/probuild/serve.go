package main

import (
	"database/sql"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"probuild/internal/app"
	"probuild/internal/migrations"
)

var flagMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var migrate func(*sql.DB) error
		if flagMigrate {
			migrate = migrations.Up
		}
		return app.Run(ctx, cfg, migrate)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&flagMigrate, "migrate", false, "apply pending migrations before serving")
}
