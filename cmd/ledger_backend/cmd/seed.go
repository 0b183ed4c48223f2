package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/platform/seed"
)

var (
	seedFile string
	seedUser string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data (currencies, rates, accounts, journals, partners, fiscal years) from YAML",
	Long: `seed loads a YAML file through the services, so every validation rule applies.
Records that already exist are skipped; the command can be re-run safely.

Example:
  ledger_backend seed --file chart.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.StorageDriver == config.StorageDriverMemory {
			logger.Warn("Seeding the in-memory store only validates the file")
		}
		file, err := seed.LoadFile(seedFile)
		if err != nil {
			return err
		}

		svc, cleanup, err := buildServices(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer cleanup()

		sum, err := seed.NewSeeder(svc, seedUser).Apply(cmd.Context(), file)
		if err != nil {
			return err
		}
		logger.Info("Seed finished", slog.String("file", seedFile), slog.Int("created", sum.Created), slog.Int("skipped", sum.Skipped))
		fmt.Fprintf(cmd.OutOrStdout(), "created %d, skipped %d\n", sum.Created, sum.Skipped)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "seed YAML file")
	seedCmd.Flags().StringVar(&seedUser, "user", "seed", "actor recorded in createdBy")
	_ = seedCmd.MarkFlagRequired("file")
}
