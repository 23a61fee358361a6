// Package report aggregates a stage output into the final run summary:
// counts by category, confidence tier, fetch status, and hall, plus field
// coverage. NoData and Error sentinels are always counted apart.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fairlead/fairlead/internal/model"
	"github.com/fairlead/fairlead/internal/sentinel"
)

// Report is the aggregate view over a set of records.
type Report struct {
	Total          int
	ByCategory     map[string]int
	ByConfidence   map[model.Confidence]int
	ByStatus       map[model.Status]int
	ByHall         map[string]int
	WithSummary    int
	WithLinkedIn   int
	NoDataRecords  int
	ErrorRecords   int
	NeedsMoreWork  int
}

// Build computes a Report from records.
func Build(records []model.Record) *Report {
	r := &Report{
		Total:        len(records),
		ByCategory:   make(map[string]int),
		ByConfidence: make(map[model.Confidence]int),
		ByStatus:     make(map[model.Status]int),
		ByHall:       make(map[string]int),
	}

	for _, rec := range records {
		if rec.Category != "" {
			r.ByCategory[rec.Category]++
		}
		if rec.Confidence != "" {
			r.ByConfidence[rec.Confidence]++
		}
		if rec.Status != "" {
			r.ByStatus[rec.Status]++
		}
		if rec.Hall != "" {
			r.ByHall[rec.Hall]++
		}
		if !sentinel.SummaryMissing(rec.Summary) && rec.Summary != sentinel.SummaryUnavailable {
			r.WithSummary++
		}
		if rec.LinkedInURL != "" {
			r.WithLinkedIn++
		}

		// NoData and Error stay separate: "nothing to analyze" is not
		// "analysis failed".
		switch rec.Category {
		case sentinel.CategoryNoData:
			r.NoDataRecords++
		case sentinel.CategoryError:
			r.ErrorRecords++
		}
		if sentinel.NeedsEnhancement(rec) {
			r.NeedsMoreWork++
		}
	}
	return r
}

// Write renders the report as text.
func (r *Report) Write(w io.Writer) {
	fmt.Fprintf(w, "Enrichment Summary\n")
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(w, "Total records: %d\n", r.Total)

	if r.Total == 0 {
		return
	}

	fmt.Fprintf(w, "\nConfidence:\n")
	for _, c := range model.AllConfidences() {
		if n := r.ByConfidence[c]; n > 0 {
			fmt.Fprintf(w, "  %-16s %d\n", string(c)+":", n)
		}
	}

	fmt.Fprintf(w, "\nTop categories:\n")
	for _, kv := range topCounts(r.ByCategory, 10) {
		fmt.Fprintf(w, "  %-42s %d\n", kv.key+":", kv.count)
	}

	if len(r.ByStatus) > 0 {
		fmt.Fprintf(w, "\nFetch status:\n")
		for _, s := range model.AllStatuses() {
			if n := r.ByStatus[s]; n > 0 {
				fmt.Fprintf(w, "  %-22s %d\n", string(s)+":", n)
			}
		}
	}

	if len(r.ByHall) > 0 {
		fmt.Fprintf(w, "\nHall distribution (top 10):\n")
		for _, kv := range topCounts(r.ByHall, 10) {
			fmt.Fprintf(w, "  Hall %-8s %d\n", kv.key+":", kv.count)
		}
	}

	pct := func(n int) float64 { return float64(n) / float64(r.Total) * 100 }
	fmt.Fprintf(w, "\nCoverage:\n")
	fmt.Fprintf(w, "  with summary:  %d (%.1f%%)\n", r.WithSummary, pct(r.WithSummary))
	fmt.Fprintf(w, "  with linkedin: %d (%.1f%%)\n", r.WithLinkedIn, pct(r.WithLinkedIn))
	fmt.Fprintf(w, "  no data:       %d\n", r.NoDataRecords)
	fmt.Fprintf(w, "  errored:       %d\n", r.ErrorRecords)
	fmt.Fprintf(w, "  needs work:    %d\n", r.NeedsMoreWork)
}

type keyCount struct {
	key   string
	count int
}

// topCounts orders a count map descending by count, ties alphabetical, and
// keeps the first n.
func topCounts(m map[string]int, n int) []keyCount {
	out := make([]keyCount, 0, len(m))
	for k, v := range m {
		out = append(out, keyCount{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
