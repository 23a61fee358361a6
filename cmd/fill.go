package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fairlead/fairlead/internal/stage"
)

var fillCmd = &cobra.Command{
	Use:   "fill [all|N] [start]",
	Short: "Fill remaining gaps locally by sentence extraction and keyword scoring",
	Long:  "Makes no external calls: summaries still carrying a missing sentinel are extracted from about-page content and categories are keyword-scored. One pass settles every record it touches.",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Local tier has no quota to protect: unbounded by default.
		w, err := parseWindow(args, 0)
		if err != nil {
			return err
		}

		input, from, err := loadResults(
			cfg.Data.Path(cfg.Data.FinalFile),
			cfg.Data.Path(cfg.Data.EnrichedFile),
		)
		if err != nil {
			return err
		}
		zap.L().Info("fill: input loaded", zap.String("from", from), zap.Int("records", len(input)))

		return runStage(ctx, stage.NewFillStage(), input, cfg.Data.Path(cfg.Data.CompleteFile), w, 0, "local_fallback")
	},
}

func init() {
	rootCmd.AddCommand(fillCmd)
}
