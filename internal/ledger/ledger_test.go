package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlead/fairlead/internal/stage"
)

func openLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestRecordAndListRuns(t *testing.T) {
	l := openLedger(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, l.RecordRun(ctx, "fetch",
		stage.Summary{Total: 10, Processed: 5, Skipped: 5},
		base, base.Add(time.Minute)))
	require.NoError(t, l.RecordRun(ctx, "enrich",
		stage.Summary{Total: 5, Processed: 4, Failed: 1},
		base.Add(2*time.Minute), base.Add(3*time.Minute)))

	runs, err := l.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "enrich", runs[0].Stage)
	assert.Equal(t, 1, runs[0].Failed)
	assert.Equal(t, "fetch", runs[1].Stage)
	assert.Equal(t, 5, runs[1].Skipped)
	assert.NotEmpty(t, runs[0].ID)
	assert.NotEqual(t, runs[0].ID, runs[1].ID)
}

func TestListRunsLimit(t *testing.T) {
	l := openLedger(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, l.RecordRun(ctx, "fill",
			stage.Summary{Total: i},
			base.Add(time.Duration(i)*time.Minute),
			base.Add(time.Duration(i)*time.Minute+time.Second)))
	}

	runs, err := l.ListRuns(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
	assert.Equal(t, 4, runs[0].Total)
}

func TestListRunsEmpty(t *testing.T) {
	l := openLedger(t)

	runs, err := l.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	l1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l1.RecordRun(context.Background(), "seed", stage.Summary{Total: 1}, time.Now(), time.Now()))
	require.NoError(t, l1.Close())

	// Re-opening migrates again without clobbering data.
	l2, err := Open(path)
	require.NoError(t, err)
	defer l2.Close() //nolint:errcheck

	runs, err := l2.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
