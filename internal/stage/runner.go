// Package stage contains the sequential stage runner: the loop that turns a
// filtered work list into per-record producer calls, merges, synchronous
// checkpoints, and a fixed inter-item delay.
package stage

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fairlead/fairlead/internal/checkpoint"
	"github.com/fairlead/fairlead/internal/model"
)

// Stage is one unit of the pipeline.
type Stage interface {
	// Name identifies the stage in logs and the run ledger.
	Name() string
	// Needs reports whether a previously stored record still has work left
	// for this stage. It must consult the sentinel policy only.
	Needs(rec model.Record) bool
	// Process fills the record's missing fields in place. On error the
	// implementation must have already written the stage's error sentinels
	// into rec: a failed record is persisted in a well-defined state, never
	// a partially-written one.
	Process(ctx context.Context, rec *model.Record) error
}

// Ledger records stage runs for auditing. Implementations must tolerate
// being nil-checked; ledger failures never affect the pipeline.
type Ledger interface {
	RecordRun(ctx context.Context, stage string, summary Summary, started, finished time.Time) error
}

// Summary aggregates a single stage run.
type Summary struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Runner executes a stage over a work list, checkpointing after every item.
type Runner struct {
	store   *checkpoint.Store
	path    string
	limiter *rate.Limiter
	ledger  Ledger
}

// NewRunner creates a Runner flushing to path after each record. delay is
// the fixed inter-item pause applied after every processed item, successful
// or not; zero disables it.
func NewRunner(store *checkpoint.Store, path string, delay time.Duration) *Runner {
	var limiter *rate.Limiter
	if delay > 0 {
		limiter = rate.NewLimiter(rate.Every(delay), 1)
		// Drain the initial token so the very first Wait already honors
		// the inter-item delay.
		limiter.Allow()
	}
	return &Runner{store: store, path: path, limiter: limiter}
}

// WithLedger attaches a run ledger.
func (r *Runner) WithLedger(l Ledger) *Runner {
	r.ledger = l
	return r
}

// Run processes the input through st. Records already satisfied in the
// store are skipped; every processed record is merged into the store and the
// store is flushed in full before the next record is touched. A producer
// failure marks the record failed and the loop continues; only a checkpoint
// flush failure aborts the run.
func (r *Runner) Run(ctx context.Context, st Stage, input []model.Record, w checkpoint.Window) (Summary, error) {
	log := zap.L().With(zap.String("stage", st.Name()))
	started := time.Now()

	// Satisfied counts are taken before windowing: records cut by a test
	// limit are not "skipped", they are simply outside this run.
	pending := checkpoint.FilterWork(input, r.store, st.Needs, checkpoint.All)
	work := w.Apply(pending)
	summary := Summary{
		Total:   len(input),
		Skipped: len(input) - len(pending),
	}

	log.Info("stage: starting",
		zap.Int("input", len(input)),
		zap.Int("work", len(work)),
		zap.Int("already_satisfied", summary.Skipped),
	)

	for i, rec := range work {
		if err := ctx.Err(); err != nil {
			return summary, eris.Wrap(err, "stage: canceled")
		}

		itemLog := log.With(
			zap.String("name", rec.Name),
			zap.Int("index", i+1),
			zap.Int("of", len(work)),
		)

		if err := st.Process(ctx, &rec); err != nil {
			summary.Failed++
			itemLog.Warn("stage: record failed, continuing", zap.Error(err))
		} else {
			itemLog.Info("stage: record processed")
		}
		summary.Processed++

		r.store.Put(rec)
		if err := r.store.Flush(r.path); err != nil {
			// Without a durable checkpoint we cannot claim progress.
			return summary, eris.Wrap(err, "stage: checkpoint flush")
		}

		if r.limiter != nil && i < len(work)-1 {
			if err := r.limiter.Wait(ctx); err != nil {
				return summary, eris.Wrap(err, "stage: rate limit wait")
			}
		}
	}

	finished := time.Now()
	if r.ledger != nil {
		if err := r.ledger.RecordRun(ctx, st.Name(), summary, started, finished); err != nil {
			log.Warn("stage: ledger record failed", zap.Error(err))
		}
	}

	log.Info("stage: complete",
		zap.Int("processed", summary.Processed),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped),
		zap.Duration("elapsed", finished.Sub(started)),
	)
	return summary, nil
}
