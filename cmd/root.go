package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fairlead/fairlead/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "fairlead",
	Short: "Trade-show exhibitor enrichment pipeline",
	Long:  "Scrapes the exhibitor listing, finds company websites and about pages, enriches each exhibitor via Claude with local fallbacks, and reports on the result set.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
