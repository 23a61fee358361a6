package stage

import (
	"context"
	"strings"

	"github.com/fairlead/fairlead/internal/fallback"
	"github.com/fairlead/fairlead/internal/model"
	"github.com/fairlead/fairlead/internal/sentinel"
)

// FillStage is the degraded local tier: when the AI producer's output is
// still a missing sentinel (service unavailable, quota exhausted), it fills
// summaries by sentence extraction and categories by keyword scoring. It
// makes no external calls and writes terminal values, so one pass settles
// every record it touches.
type FillStage struct{}

// NewFillStage creates the local fill stage.
func NewFillStage() *FillStage { return &FillStage{} }

func (s *FillStage) Name() string { return "fill" }

// Needs admits records whose summary or category is still a sentinel.
func (s *FillStage) Needs(rec model.Record) bool {
	return sentinel.SummaryMissing(rec.Summary) || sentinel.CategoryMissing(rec.Category)
}

func (s *FillStage) Process(_ context.Context, rec *model.Record) error {
	cleaned := fallback.CleanText(rec.AboutContent)

	if sentinel.SummaryMissing(rec.Summary) {
		if extracted := fallback.ExtractSummary(cleaned); extracted != "" {
			rec.Summary = extracted
			// Provenance tag: extracted, not AI-generated.
			rec.Confidence = model.ConfidenceExtracted
		} else {
			rec.Summary = sentinel.SummaryUnavailable
		}
	}

	if sentinel.CategoryMissing(rec.Category) {
		if cleaned != "" {
			rec.Category = fallback.Categorize(cleaned)
			if sentinel.TagsMissing(rec.Tags) {
				rec.Tags = []string{categoryTag(rec.Category)}
			}
		} else {
			rec.Category = sentinel.CategoryUncategorized
		}
	}

	return nil
}

// categoryTag derives a short tag from a taxonomy label, e.g.
// "Robotics & Automation" -> "Robotics".
func categoryTag(category string) string {
	if idx := strings.Index(category, "&"); idx >= 0 {
		category = category[:idx]
	}
	return strings.TrimSpace(category)
}
