package main

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"probuild/internal/migrations"
	"probuild/internal/repositories"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

func init() {
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withDB(func(db *sql.DB) error {
				if err := migrations.Up(db); err != nil {
					return err
				}
				log.Info().Msg("migrations applied")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			RunE: withDB(func(db *sql.DB) error {
				if err := migrations.Down(db); err != nil {
					return err
				}
				log.Info().Msg("rolled back one migration")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: withDB(func(db *sql.DB) error {
				v, dirty, err := migrations.Version(db)
				if err != nil {
					return err
				}
				fmt.Printf("version=%d dirty=%t\n", v, dirty)
				return nil
			}),
		},
	)
}

func withDB(fn func(*sql.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db, err := repositories.Open(cmd.Context(), cfg.Database.DSN, 1, 1)
		if err != nil {
			return err
		}
		defer db.Close()
		return fn(db)
	}
}
