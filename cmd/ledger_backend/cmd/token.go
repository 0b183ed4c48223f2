package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_engine/internal/middleware"
)

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Issue a bearer token signed with JWT_SECRET",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.IsProduction {
			return fmt.Errorf("token issuing is disabled in production")
		}
		token, err := middleware.IssueToken(cfg.JWTSecret, args[0], tokenTTL)
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}
