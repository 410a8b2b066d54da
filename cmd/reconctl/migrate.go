package main

import (
	"github.com/spf13/cobra"
	"github.com/uptrace/bun/migrate"

	"github.com/chainsafe/audit-register-recon/pkg/config"
	"github.com/chainsafe/audit-register-recon/pkg/migrations/recondb"
	"github.com/chainsafe/audit-register-recon/pkg/pgutil"
	mghelper "github.com/chainsafe/audit-register-recon/pkg/pgutil/migrations"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:       "migrate COMMAND",
	Short:     "Run database migrations (init, up, down, status)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"init", "up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		db, err := pgutil.ConnectDB(&cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		migrator := migrate.NewMigrator(db, recondb.Migrations)
		return mghelper.RunMigrations(cmd.Context(), migrator, args...)
	},
}
