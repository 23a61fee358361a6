package checkpoint

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlead/fairlead/internal/model"
)

func TestLoadMissingFileIsEmptyStore(t *testing.T) {
	st, err := Load(filepath.Join(t.TempDir(), "nope.json"), "model-x")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Len())
	assert.Equal(t, "model-x", st.ModelUsed)
}

func TestLoadCorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path, "")
	assert.Error(t, err)
}

func TestPutPreservesInsertionOrder(t *testing.T) {
	st := NewStore("")
	st.Put(model.Record{Name: "a"})
	st.Put(model.Record{Name: "b"})
	st.Put(model.Record{Name: "c"})

	// Replacement keeps position.
	st.Put(model.Record{Name: "b", Summary: "updated"})

	recs := st.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, "a", recs[0].Name)
	assert.Equal(t, "b", recs[1].Name)
	assert.Equal(t, "updated", recs[1].Summary)
	assert.Equal(t, "c", recs[2].Name)
}

func TestFlushRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	st := NewStore("claude-test")
	st.Put(model.Record{Name: "Acme", Category: "Other", Summary: "Builds things."})
	st.Put(model.Record{Name: "Beta", Status: model.StatusWebsiteNotFound})
	require.NoError(t, st.Flush(path))

	// Envelope schema on disk.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var env model.Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, 2, env.Total)
	assert.Equal(t, "claude-test", env.ModelUsed)
	assert.NotEmpty(t, env.Timestamp)

	// Reload yields the same records in the same order.
	reloaded, err := Load(path, "claude-test")
	require.NoError(t, err)
	assert.Equal(t, st.Records(), reloaded.Records())
}

func TestFlushLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	st := NewStore("")
	st.Put(model.Record{Name: "Acme"})
	require.NoError(t, st.Flush(path))
	require.NoError(t, st.Flush(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.json", entries[0].Name())
}

func TestFlushAfterEveryPutIsConsistentPrefix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	st := NewStore("")

	names := []string{"a", "b", "c", "d"}
	for i, n := range names {
		st.Put(model.Record{Name: n})
		require.NoError(t, st.Flush(path))

		reloaded, err := Load(path, "")
		require.NoError(t, err)
		require.Equal(t, i+1, reloaded.Len())
	}
}
