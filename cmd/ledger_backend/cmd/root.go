// Package cmd provides the ledger_backend CLI commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/platform/metrics"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/memory"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

var (
	debug bool

	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledger_backend",
	Short: "Double-entry ledger engine",
	Long: `ledger_backend posts and validates double-entry journal entries, converts
multi-currency lines, enforces the fiscal calendar and reconciles invoices.

Configuration is read from the environment (and .env when present).

Example:
  ledger_backend migrate up
  ledger_backend seed --file chart.yaml
  ledger_backend serve`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger = newLogger(cfg, debug)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		slog.Error("Command failed", slog.String("error", err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tokenCmd)
}

// newLogger builds the JSON handler in production and the text handler otherwise.
func newLogger(cfg *config.Config, debug bool) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProduction {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// buildServices wires the service container over the configured storage driver.
// The returned cleanup releases the database pool, if any.
func buildServices(ctx context.Context, rec *metrics.Recorder) (*portssvc.ServiceContainer, func(), error) {
	opts := []services.Option{services.WithMetrics(rec)}

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("Using the in-memory store; data is lost on exit")
		repos := memory.NewRepositoryProvider(memory.NewStore())
		return services.NewServiceContainer(cfg, repos, opts...), func() {}, nil
	default:
		if cfg.AutoMigrate {
			if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, logger); err != nil {
				return nil, nil, err
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")
		repos := pgsql.NewRepositoryProvider(pool)
		return services.NewServiceContainer(cfg, repos, opts...), func() { database.ClosePgxPool(pool) }, nil
	}
}
