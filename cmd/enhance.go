package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/fairlead/fairlead/internal/discover"
	"github.com/fairlead/fairlead/internal/enrich"
	"github.com/fairlead/fairlead/internal/scrape"
	"github.com/fairlead/fairlead/internal/stage"
	anthropicpkg "github.com/fairlead/fairlead/pkg/anthropic"
	"github.com/fairlead/fairlead/pkg/ddg"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance [all|N] [start]",
	Short: "Retry failed summaries and discover LinkedIn pages",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cfg.Anthropic.Key == "" {
			return eris.New("anthropic key not configured (set FAIRLEAD_ANTHROPIC_KEY or anthropic.key)")
		}

		w, err := parseWindow(args, cfg.Pipeline.EnhanceTestLimit)
		if err != nil {
			return err
		}

		input, _, err := loadResults(cfg.Data.Path(cfg.Data.EnrichedFile))
		if err != nil {
			return err
		}

		producer := enrich.NewProducer(anthropicpkg.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model)
		fetcher := scrape.NewFetcher(time.Duration(cfg.Pipeline.FetchTimeoutSecs) * time.Second)
		disc := discover.New(ddg.NewClient(), fetcher)
		st := stage.NewEnhanceStage(producer, disc)

		return runStage(ctx, st, input, cfg.Data.Path(cfg.Data.FinalFile), w, pipelineDelay(), cfg.Anthropic.Model)
	},
}

func init() {
	rootCmd.AddCommand(enhanceCmd)
}
