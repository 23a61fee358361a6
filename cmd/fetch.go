package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/fairlead/fairlead/internal/discover"
	"github.com/fairlead/fairlead/internal/model"
	"github.com/fairlead/fairlead/internal/scrape"
	"github.com/fairlead/fairlead/internal/seed"
	"github.com/fairlead/fairlead/internal/stage"
	"github.com/fairlead/fairlead/pkg/ddg"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [all|N] [start]",
	Short: "Find websites and fetch about-page content for seeded exhibitors",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		w, err := parseWindow(args, cfg.Pipeline.FetchTestLimit)
		if err != nil {
			return err
		}

		seedFile, err := seed.LoadFile(cfg.Data.Path(cfg.Data.ExhibitorFile))
		if err != nil {
			return err
		}

		input := make([]model.Record, 0, len(seedFile.Exhibitors))
		for _, name := range seedFile.Names() {
			input = append(input, model.Record{Name: name})
		}

		fetcher := scrape.NewFetcher(time.Duration(cfg.Pipeline.FetchTimeoutSecs) * time.Second)
		disc := discover.New(ddg.NewClient(), fetcher)
		st := stage.NewFetchStage(disc, fetcher)

		return runStage(ctx, st, input, cfg.Data.Path(cfg.Data.AboutFile), w, pipelineDelay(), "")
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
