package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomy(t *testing.T) {
	assert.Len(t, Categories, 20)
	assert.Equal(t, CategoryOther, Categories[len(Categories)-1])

	assert.True(t, ValidCategory("Robotics & Automation"))
	assert.True(t, ValidCategory(CategoryOther))
	assert.False(t, ValidCategory("Quantum Gardening"))
	assert.False(t, ValidCategory(""))
}

func TestStatusValid(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("done").Valid())
	assert.False(t, Status("").Valid())
}

func TestConfidenceValid(t *testing.T) {
	for _, c := range AllConfidences() {
		assert.True(t, c.Valid())
	}
	assert.False(t, Confidence("Very High").Valid())
}

func TestRecordJSONOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(Record{Name: "Acme"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Acme"}`, string(data))
}

func TestEnvelopeFieldNames(t *testing.T) {
	env := Envelope{
		Total:     1,
		Timestamp: "2026-01-01 12:00:00",
		ModelUsed: "claude-test",
		Results:   []Record{{Name: "Acme"}},
	}
	data, err := json.Marshal(env)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"total", "timestamp", "model_used", "results"} {
		assert.Contains(t, raw, key)
	}
}
