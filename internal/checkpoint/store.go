// Package checkpoint holds the durable record store and the resume
// controller. The store is the single shared mutable resource in the
// pipeline: it is flushed in full after every processed record, and that
// flush is the recovery boundary a restarted run resumes from.
package checkpoint

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"

	"github.com/fairlead/fairlead/internal/model"
)

// Store is an insertion-ordered collection of records keyed by name.
// Iteration order is merge order, so a flushed file is always a valid,
// self-consistent prefix of the full run.
type Store struct {
	records []model.Record
	index   map[string]int
	// ModelUsed tags the envelope with the producing model/source.
	ModelUsed string
}

// NewStore creates an empty Store.
func NewStore(modelUsed string) *Store {
	return &Store{
		index:     make(map[string]int),
		ModelUsed: modelUsed,
	}
}

// Load reads a prior stage output envelope into a Store. A missing file is
// not an error: it yields an empty store (first run).
func Load(path, modelUsed string) (*Store, error) {
	st := NewStore(modelUsed)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return nil, eris.Wrapf(err, "checkpoint: read %s", path)
	}

	var env model.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, eris.Wrapf(err, "checkpoint: parse %s", path)
	}

	for _, rec := range env.Results {
		st.Put(rec)
	}
	return st, nil
}

// Get returns the record for name and whether it exists.
func (s *Store) Get(name string) (model.Record, bool) {
	i, ok := s.index[name]
	if !ok {
		return model.Record{}, false
	}
	return s.records[i], true
}

// Has reports whether a record with the given name exists.
func (s *Store) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Put inserts or replaces a record by name. Replacement keeps the record's
// original position so resumed runs preserve merge order.
func (s *Store) Put(rec model.Record) {
	if i, ok := s.index[rec.Name]; ok {
		s.records[i] = rec
		return
	}
	s.index[rec.Name] = len(s.records)
	s.records = append(s.records, rec)
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// Records returns the records in merge order. The returned slice is shared;
// callers must not mutate it.
func (s *Store) Records() []model.Record { return s.records }

// Flush serializes the complete store to path as a stage envelope. The write
// is atomic (temp file + rename) so a crash mid-persist can never leave a
// truncated or corrupted checkpoint behind. A flush failure is the one fatal
// error in the pipeline: progress cannot be safely claimed without it.
func (s *Store) Flush(path string) error {
	env := model.Envelope{
		Total:     len(s.records),
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		ModelUsed: s.ModelUsed,
		Results:   s.records,
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return eris.Wrap(err, "checkpoint: marshal envelope")
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return eris.Wrapf(err, "checkpoint: create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return eris.Wrapf(err, "checkpoint: write %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return eris.Wrapf(err, "checkpoint: sync %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return eris.Wrapf(err, "checkpoint: close %s", tmpName)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return eris.Wrapf(err, "checkpoint: rename %s -> %s", tmpName, path)
	}
	return nil
}
