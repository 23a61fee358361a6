package stage

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/fairlead/fairlead/internal/discover"
	"github.com/fairlead/fairlead/internal/enrich"
	"github.com/fairlead/fairlead/internal/model"
	"github.com/fairlead/fairlead/internal/sentinel"
)

// EnhanceStage fills gaps the enrichment tier left behind: AI summaries for
// records whose summary is still a sentinel, and LinkedIn profile discovery
// for records without one. A summary produced here carries Medium
// confidence, one tier below the full enrichment result.
type EnhanceStage struct {
	producer   *enrich.Producer
	discoverer *discover.Discoverer
}

// NewEnhanceStage creates the enhancement stage.
func NewEnhanceStage(p *enrich.Producer, d *discover.Discoverer) *EnhanceStage {
	return &EnhanceStage{producer: p, discoverer: d}
}

func (s *EnhanceStage) Name() string { return "enhance" }

// Needs admits records with any missing derived field: sentinel summary or
// category, or absent LinkedIn URL.
func (s *EnhanceStage) Needs(rec model.Record) bool {
	return sentinel.NeedsEnhancement(rec)
}

// Process attempts each missing field independently: a summary failure does
// not block the LinkedIn lookup. The first error is reported after all
// attempts, with the record left in a well-defined state either way.
func (s *EnhanceStage) Process(ctx context.Context, rec *model.Record) error {
	log := zap.L().With(zap.String("name", rec.Name))
	var firstErr error

	if sentinel.NeedsSummary(*rec) && rec.AboutContent != "" {
		summary, err := s.producer.ProduceSummary(ctx, rec.Name, rec.AboutContent)
		switch {
		case err != nil:
			firstErr = eris.Wrap(err, "enhance: summary")
			log.Warn("enhance: summary generation failed", zap.Error(err))
		case summary != "":
			rec.Summary = summary
			rec.Confidence = model.ConfidenceMedium
			log.Info("enhance: summary generated")
		}
	}

	if sentinel.LinkedInMissing(rec.LinkedInURL) {
		if url := s.discoverer.LinkedIn(ctx, rec.Name, rec.Website); url != "" {
			rec.LinkedInURL = url
			log.Info("enhance: linkedin found", zap.String("url", url))
		} else {
			log.Info("enhance: linkedin not found")
		}
	}

	return firstErr
}
