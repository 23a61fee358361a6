// Package discover locates an exhibitor's website, about page, and LinkedIn
// company profile using search plus a small, bounded number of verification
// probes. All lookups degrade to "not found" rather than failing the caller.
package discover

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/fairlead/fairlead/internal/scrape"
	"github.com/fairlead/fairlead/pkg/ddg"
)

// aboutPatterns are the URL path shapes recognized as about pages, also used
// as probe candidates when the homepage exposes no about link.
var aboutPatterns = []string{
	"/about",
	"/about-us",
	"/aboutus",
	"/about/",
	"/about-us/",
	"/company",
	"/company/about",
	"/who-we-are",
}

// aboutLinkWords match navigation link text pointing at an about page.
var aboutLinkWords = []string{"about", "who we are", "company"}

// Discoverer performs website/about/LinkedIn lookups.
type Discoverer struct {
	search  ddg.Client
	fetcher *scrape.Fetcher
}

// New creates a Discoverer.
func New(search ddg.Client, fetcher *scrape.Fetcher) *Discoverer {
	return &Discoverer{search: search, fetcher: fetcher}
}

// Website finds the most likely homepage for an exhibitor by web search.
// Returns "" when nothing suitable is found.
func (d *Discoverer) Website(ctx context.Context, name string) string {
	result, err := d.search.FirstResult(ctx, name+" official website")
	if err != nil {
		zap.L().Debug("discover: website search failed",
			zap.String("name", name),
			zap.Error(err),
		)
		return ""
	}
	return result
}

// AboutPage finds the about page for a homepage: first by scanning anchor
// text on the homepage, then by probing common about paths. Returns "" when
// neither strategy lands; the caller falls back to the homepage itself.
func (d *Discoverer) AboutPage(ctx context.Context, website string) string {
	base, err := url.Parse(website)
	if err != nil || base.Host == "" {
		return ""
	}

	doc, err := d.fetcher.Document(ctx, website)
	if err == nil {
		if found := aboutLinkFromDoc(doc, base); found != "" {
			return found
		}
	} else {
		zap.L().Debug("discover: homepage fetch failed",
			zap.String("website", website),
			zap.Error(err),
		)
	}

	// Bounded probe of common about paths.
	root := base.Scheme + "://" + base.Host
	for _, pattern := range aboutPatterns {
		candidate := root + pattern
		if d.fetcher.Head(ctx, candidate) {
			return candidate
		}
	}
	return ""
}

// aboutLinkFromDoc scans anchors for about-ish link text whose resolved URL
// matches a known about path pattern.
func aboutLinkFromDoc(doc *goquery.Document, base *url.URL) string {
	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.ToLower(strings.TrimSpace(sel.Text()))
		href, _ := sel.Attr("href")
		if href == "" {
			return true
		}

		matchesWord := false
		for _, word := range aboutLinkWords {
			if strings.Contains(text, word) {
				matchesWord = true
				break
			}
		}
		if !matchesWord {
			return true
		}

		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		full := base.ResolveReference(ref).String()
		lower := strings.ToLower(full)
		for _, pattern := range aboutPatterns {
			if strings.Contains(lower, pattern) {
				found = full
				return false
			}
		}
		return true
	})
	return found
}

// LinkedIn finds a company's LinkedIn profile: first by scanning the
// company's own website for a linkedin.com/company link, then by probing
// slug candidates constructed from the name. Returns "" when not found.
func (d *Discoverer) LinkedIn(ctx context.Context, name, website string) string {
	if website != "" {
		if found := d.linkedInFromWebsite(ctx, website); found != "" {
			return found
		}
	}

	for _, candidate := range linkedInCandidates(name) {
		if d.fetcher.Head(ctx, candidate) {
			return candidate
		}
	}
	return ""
}

func (d *Discoverer) linkedInFromWebsite(ctx context.Context, website string) string {
	doc, err := d.fetcher.Document(ctx, website)
	if err != nil {
		zap.L().Debug("discover: linkedin website scan failed",
			zap.String("website", website),
			zap.Error(err),
		)
		return ""
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if !strings.Contains(href, "linkedin.com/company/") {
			return true
		}
		found = cleanLinkedInURL(href)
		return false
	})
	return found
}

// cleanLinkedInURL strips query/fragment noise and normalizes scheme-less
// hrefs.
func cleanLinkedInURL(href string) string {
	if idx := strings.IndexAny(href, "?#"); idx >= 0 {
		href = href[:idx]
	}
	switch {
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "/"):
		return "https://www.linkedin.com" + href
	default:
		return "https://" + href
	}
}

// linkedInCandidates builds likely company-page URLs from the exhibitor
// name: legal suffixes stripped, spaces slugified. Each entry costs a
// verification probe, so the list stays small.
func linkedInCandidates(name string) []string {
	clean := strings.ToLower(name)
	for _, suffix := range []string{"pvt. ltd.", "private limited", "pvt ltd", "ltd", "llp"} {
		clean = strings.ReplaceAll(clean, suffix, "")
	}
	clean = strings.NewReplacer("(", "", ")", "").Replace(clean)
	clean = strings.TrimSpace(clean)

	slug := strings.NewReplacer(" ", "-", ".", "", ",", "").Replace(clean)
	var b strings.Builder
	for _, r := range slug {
		if r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	slug = b.String()
	if slug == "" {
		return nil
	}

	return []string{
		fmt.Sprintf("https://www.linkedin.com/company/%s", slug),
		fmt.Sprintf("https://www.linkedin.com/company/%s-india", slug),
		fmt.Sprintf("https://www.linkedin.com/company/%s", strings.ReplaceAll(slug, "-", "")),
	}
}
