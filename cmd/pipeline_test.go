package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlead/fairlead/internal/checkpoint"
	"github.com/fairlead/fairlead/internal/model"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		def     int
		want    checkpoint.Window
		wantErr bool
	}{
		{"defaults", nil, 5, checkpoint.Window{Limit: 5}, false},
		{"all lifts limit", []string{"all"}, 5, checkpoint.Window{}, false},
		{"explicit limit", []string{"25"}, 5, checkpoint.Window{Limit: 25}, false},
		{"limit and start", []string{"10", "40"}, 5, checkpoint.Window{Limit: 10, Start: 40}, false},
		{"all with start", []string{"all", "100"}, 5, checkpoint.Window{Start: 100}, false},
		{"zero limit rejected", []string{"0"}, 5, checkpoint.Window{}, true},
		{"garbage limit", []string{"lots"}, 5, checkpoint.Window{}, true},
		{"negative start", []string{"10", "-1"}, 5, checkpoint.Window{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseWindow(tt.args, tt.def)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadResultsPrefersFirstExisting(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "second.json")

	st := checkpoint.NewStore("")
	st.Put(model.Record{Name: "Acme"})
	require.NoError(t, st.Flush(second))

	records, from, err := loadResults(filepath.Join(dir, "first.json"), second)
	require.NoError(t, err)
	assert.Equal(t, second, from)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme", records[0].Name)
}

func TestLoadResultsNoneExist(t *testing.T) {
	dir := t.TempDir()
	_, _, err := loadResults(filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json"))
	assert.Error(t, err)
}
