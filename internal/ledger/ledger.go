// Package ledger records every stage invocation in a local SQLite database.
// It is an audit trail only: the JSON checkpoint files are the durability
// boundary, so ledger failures are warn-and-continue.
package ledger

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/fairlead/fairlead/internal/stage"
)

// Ledger implements stage.Ledger on SQLite.
type Ledger struct {
	db *sql.DB
}

// Open opens (creating if needed) the ledger database at path and applies
// migrations.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "ledger: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, eris.Wrapf(err, "ledger: exec %s", pragma)
		}
	}

	l := &Ledger{db: db}
	if err := l.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return l, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS stage_runs (
	id          TEXT PRIMARY KEY,
	stage       TEXT NOT NULL,
	total       INTEGER NOT NULL,
	processed   INTEGER NOT NULL,
	skipped     INTEGER NOT NULL,
	failed      INTEGER NOT NULL,
	started_at  DATETIME NOT NULL,
	finished_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stage_runs_stage ON stage_runs(stage);
CREATE INDEX IF NOT EXISTS idx_stage_runs_started_at ON stage_runs(started_at);
`

func (l *Ledger) migrate() error {
	_, err := l.db.Exec(migration)
	return eris.Wrap(err, "ledger: migrate")
}

// RecordRun inserts one stage run row.
func (l *Ledger) RecordRun(ctx context.Context, stageName string, summary stage.Summary, started, finished time.Time) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO stage_runs (id, stage, total, processed, skipped, failed, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), stageName,
		summary.Total, summary.Processed, summary.Skipped, summary.Failed,
		started.UTC(), finished.UTC(),
	)
	return eris.Wrap(err, "ledger: record run")
}

// Run is one recorded stage invocation.
type Run struct {
	ID         string
	Stage      string
	Total      int
	Processed  int
	Skipped    int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// ListRuns returns the most recent runs, newest first.
func (l *Ledger) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, stage, total, processed, skipped, failed, started_at, finished_at
		 FROM stage_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "ledger: list runs")
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Stage, &r.Total, &r.Processed, &r.Skipped, &r.Failed, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, eris.Wrap(err, "ledger: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "ledger: iterate runs")
}

// Close closes the database.
func (l *Ledger) Close() error {
	return l.db.Close()
}
