package main

import (
	"github.com/spf13/cobra"

	"probuild/internal/config"
	"probuild/internal/logger"
)

var flagConfig string

// cfg is loaded by PersistentPreRunE so every subcommand sees it.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "probuild",
	Short:         "Probuild job and lead workflow server",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Setup(cfg.Server.LogLevel, cfg.IsDevelopment())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath, "path to the YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
