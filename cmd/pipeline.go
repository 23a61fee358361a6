package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/fairlead/fairlead/internal/checkpoint"
	"github.com/fairlead/fairlead/internal/ledger"
	"github.com/fairlead/fairlead/internal/model"
	"github.com/fairlead/fairlead/internal/stage"
)

// parseWindow interprets the shared positional arguments [all|N] [start].
// Every externally-calling stage defaults to a small test limit; the literal
// "all" lifts it for a full run.
func parseWindow(args []string, defaultLimit int) (checkpoint.Window, error) {
	w := checkpoint.Window{Limit: defaultLimit}

	if len(args) >= 1 {
		if args[0] == "all" {
			w.Limit = 0
		} else {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return w, eris.Errorf("invalid limit %q: expected a positive number or \"all\"", args[0])
			}
			w.Limit = n
		}
	}
	if len(args) >= 2 {
		start, err := strconv.Atoi(args[1])
		if err != nil || start < 0 {
			return w, eris.Errorf("invalid start offset %q", args[1])
		}
		w.Start = start
	}
	return w, nil
}

// runStage executes one pipeline stage: load the stage's prior output as the
// resume store, run, and print the summary. The ledger is best-effort.
func runStage(ctx context.Context, st stage.Stage, input []model.Record, outPath string, w checkpoint.Window, delay time.Duration, modelUsed string) error {
	store, err := checkpoint.Load(outPath, modelUsed)
	if err != nil {
		return err
	}

	runner := stage.NewRunner(store, outPath, delay)

	ldg, err := ledger.Open(cfg.Data.Path(cfg.Data.LedgerFile))
	if err != nil {
		zap.L().Warn("ledger unavailable, continuing without audit trail", zap.Error(err))
	} else {
		defer ldg.Close() //nolint:errcheck
		runner = runner.WithLedger(ldg)
	}

	summary, err := runner.Run(ctx, st, input, w)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d processed, %d skipped, %d failed (of %d)\n",
		st.Name(), summary.Processed, summary.Skipped, summary.Failed, summary.Total)
	fmt.Printf("Output: %s\n", outPath)
	return nil
}

// loadResults reads the first existing envelope among candidate paths.
func loadResults(paths ...string) ([]model.Record, string, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		store, err := checkpoint.Load(p, "")
		if err != nil {
			return nil, "", err
		}
		return store.Records(), p, nil
	}
	return nil, "", eris.Errorf("no stage output found; run the earlier stages first (looked for %v)", paths)
}

func pipelineDelay() time.Duration {
	return time.Duration(cfg.Pipeline.DelaySecs) * time.Second
}
