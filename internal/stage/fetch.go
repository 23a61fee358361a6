package stage

import (
	"context"

	"go.uber.org/zap"

	"github.com/fairlead/fairlead/internal/discover"
	"github.com/fairlead/fairlead/internal/model"
	"github.com/fairlead/fairlead/internal/scrape"
)

// FetchStage discovers each exhibitor's website and about page and extracts
// cleaned content. Its product is the record's status field: every outcome,
// including "website not found", is a terminal status, so a record is only
// re-fetched while its status is still pending.
type FetchStage struct {
	discoverer *discover.Discoverer
	fetcher    *scrape.Fetcher
}

// NewFetchStage creates the fetch stage.
func NewFetchStage(d *discover.Discoverer, f *scrape.Fetcher) *FetchStage {
	return &FetchStage{discoverer: d, fetcher: f}
}

func (s *FetchStage) Name() string { return "fetch" }

// Needs admits records that have never reached a terminal fetch status.
func (s *FetchStage) Needs(rec model.Record) bool {
	return rec.Status == "" || rec.Status == model.StatusPending
}

// Process runs the website → about page → content chain. Source failures
// are results, not errors: they land in the status field and the record is
// persisted in a well-defined state.
func (s *FetchStage) Process(ctx context.Context, rec *model.Record) error {
	log := zap.L().With(zap.String("name", rec.Name))
	rec.Status = model.StatusPending

	website := rec.Website
	if website == "" {
		website = s.discoverer.Website(ctx, rec.Name)
	}
	if website == "" {
		rec.Status = model.StatusWebsiteNotFound
		log.Info("fetch: website not found")
		return nil
	}
	rec.Website = website

	aboutURL := s.discoverer.AboutPage(ctx, website)
	if aboutURL == "" {
		// No dedicated about page; the homepage stands in.
		aboutURL = website
	}
	rec.AboutPageURL = aboutURL

	content, err := s.fetcher.Text(ctx, aboutURL)
	if err != nil || content == "" {
		rec.Status = model.StatusContentFetchFailed
		log.Info("fetch: content fetch failed", zap.String("url", aboutURL), zap.Error(err))
		return nil
	}

	rec.AboutContent = content
	rec.Status = model.StatusSuccess
	log.Info("fetch: content extracted",
		zap.String("url", aboutURL),
		zap.Int("chars", len(content)),
	)
	return nil
}
