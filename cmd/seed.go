package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fairlead/fairlead/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Scrape the exhibitor listing into the seed file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		src := seed.NewSource(cfg.Seed.ListingURL)
		exhibitors, err := src.Fetch(ctx)
		if err != nil {
			return err
		}
		zap.L().Info("seed: listing parsed", zap.Int("exhibitors", len(exhibitors)))

		out := cfg.Data.Path(cfg.Data.ExhibitorFile)
		if err := seed.Save(out, cfg.Seed.ListingURL, exhibitors); err != nil {
			return err
		}

		fmt.Printf("Saved %d exhibitors to %s\n", len(exhibitors), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
