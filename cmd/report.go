package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fairlead/fairlead/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the most complete stage output",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, from, err := loadResults(
			cfg.Data.Path(cfg.Data.CompleteFile),
			cfg.Data.Path(cfg.Data.FinalFile),
			cfg.Data.Path(cfg.Data.EnrichedFile),
		)
		if err != nil {
			return err
		}

		fmt.Printf("Source: %s\n\n", from)
		report.Build(records).Write(os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
