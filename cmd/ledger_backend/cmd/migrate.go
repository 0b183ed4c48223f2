package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply (up) or roll back one step of (down) the database schema",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.StorageDriver != config.StorageDriverPostgres {
			return fmt.Errorf("migrations require STORAGE_DRIVER=%s", config.StorageDriverPostgres)
		}
		return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrationDirection(args[0]), logger)
	},
}
