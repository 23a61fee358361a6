package checkpoint

import "github.com/fairlead/fairlead/internal/model"

// Window optionally slices the filtered work list for bounded test runs and
// offset resumes. Limit <= 0 means no limit.
type Window struct {
	Start int
	Limit int
}

// All is the unbounded window.
var All = Window{}

// Apply slices items to the window. Out-of-range starts yield an empty list.
func (w Window) Apply(items []model.Record) []model.Record {
	if w.Start > 0 {
		if w.Start >= len(items) {
			return nil
		}
		items = items[w.Start:]
	}
	if w.Limit > 0 && w.Limit < len(items) {
		items = items[:w.Limit]
	}
	return items
}

// FilterWork computes the filtered work list for a stage: input records, in
// input order, excluding any record that has already been satisfied.
//
// The resume contract is uniform across stages: a record is skipped iff its
// key is present in the stage's prior output AND the stage's needs predicate
// reports nothing left to produce for the stored record. A key absent from
// prior output always admits the record; a stored record whose fields are
// still sentinel-missing is re-admitted, which is what drives the fallback
// cascade on later runs. Given unchanged prior output and work list the
// result is identical on every call.
// Re-admitted records are taken from the prior store rather than the input:
// the stored version is the field superset (monotonic enrichment) and
// re-processing must not regress it.
func FilterWork(input []model.Record, prior *Store, needs func(model.Record) bool, w Window) []model.Record {
	var work []model.Record
	for _, rec := range input {
		if stored, ok := prior.Get(rec.Name); ok {
			if !needs(stored) {
				continue
			}
			rec = stored
		}
		work = append(work, rec)
	}
	return w.Apply(work)
}
