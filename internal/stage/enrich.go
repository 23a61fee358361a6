package stage

import (
	"context"

	"github.com/fairlead/fairlead/internal/enrich"
	"github.com/fairlead/fairlead/internal/model"
	"github.com/fairlead/fairlead/internal/seed"
	"github.com/fairlead/fairlead/internal/sentinel"
)

// EnrichStage runs the AI producer over fetched content and merges venue
// metadata from the seed source. Records whose fetch never succeeded get
// NoData sentinels without an API call; producer failures get Error
// sentinels. Both re-admit the record to the fallback cascade on later runs.
type EnrichStage struct {
	producer *enrich.Producer
	halls    map[string]seed.Exhibitor
}

// NewEnrichStage creates the enrichment stage. halls may be nil when venue
// metadata is unavailable.
func NewEnrichStage(p *enrich.Producer, halls map[string]seed.Exhibitor) *EnrichStage {
	return &EnrichStage{producer: p, halls: halls}
}

func (s *EnrichStage) Name() string { return "enrich" }

// Needs admits records whose category or summary is still a sentinel.
func (s *EnrichStage) Needs(rec model.Record) bool {
	return sentinel.NeedsSummary(rec)
}

func (s *EnrichStage) Process(ctx context.Context, rec *model.Record) error {
	s.mergeVenue(rec)

	if rec.Status != model.StatusSuccess {
		applyEnrichment(rec, enrich.NoDataResult())
		return nil
	}

	result, err := s.producer.Produce(ctx, rec.Name, rec.AboutContent)
	applyEnrichment(rec, result)
	return err
}

// mergeVenue fills hall/space/logo from the seed source, never overwriting
// values already present.
func (s *EnrichStage) mergeVenue(rec *model.Record) {
	info, ok := s.halls[rec.Name]
	if rec.Hall == "" {
		if ok {
			rec.Hall = info.Hall
		} else {
			rec.Hall = "Unknown"
		}
	}
	if rec.SpaceSqm == "" {
		if ok {
			rec.SpaceSqm = info.SpaceSqm
		} else {
			rec.SpaceSqm = "Unknown"
		}
	}
	if rec.LogoURL == "" && ok {
		rec.LogoURL = info.LogoURL
	}
}

// applyEnrichment merges producer output into the record, field by field.
// A field is only written while its current value is sentinel-missing, so a
// repeated run can fill gaps but never regress a present value. Confidence
// follows whichever producer last wrote a derived field.
func applyEnrichment(rec *model.Record, e enrich.Enrichment) {
	wrote := false
	if sentinel.CategoryMissing(rec.Category) {
		rec.Category = e.Category
		wrote = true
	}
	if sentinel.SummaryMissing(rec.Summary) {
		rec.Summary = e.Summary
		wrote = true
	}
	if sentinel.OfferingsMissing(rec.KeyOfferings) && len(e.KeyOfferings) > 0 {
		rec.KeyOfferings = e.KeyOfferings
	}
	if sentinel.TagsMissing(rec.Tags) && len(e.Tags) > 0 {
		rec.Tags = e.Tags
	}
	if wrote {
		rec.Confidence = e.Confidence
	}
}
