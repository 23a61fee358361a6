package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/fairlead/fairlead/internal/enrich"
	"github.com/fairlead/fairlead/internal/seed"
	"github.com/fairlead/fairlead/internal/stage"
	anthropicpkg "github.com/fairlead/fairlead/pkg/anthropic"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich [all|N] [start]",
	Short: "Enrich fetched exhibitors via Claude",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cfg.Anthropic.Key == "" {
			return eris.New("anthropic key not configured (set FAIRLEAD_ANTHROPIC_KEY or anthropic.key)")
		}

		w, err := parseWindow(args, cfg.Pipeline.EnrichTestLimit)
		if err != nil {
			return err
		}

		input, _, err := loadResults(cfg.Data.Path(cfg.Data.AboutFile))
		if err != nil {
			return err
		}

		seedFile, err := seed.LoadFile(cfg.Data.Path(cfg.Data.ExhibitorFile))
		if err != nil {
			return err
		}

		producer := enrich.NewProducer(anthropicpkg.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model)
		st := stage.NewEnrichStage(producer, seedFile.Index())

		return runStage(ctx, st, input, cfg.Data.Path(cfg.Data.EnrichedFile), w, pipelineDelay(), cfg.Anthropic.Model)
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}
