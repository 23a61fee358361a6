// Package scrape fetches web pages and reduces them to cleaned plain text
// bounded to a fixed length, and exposes the parsed document for link
// discovery. Network failures surface as errors which callers map to absent
// content; nothing here panics on a bad host.
package scrape

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

const (
	// maxContentChars bounds cleaned text handed downstream.
	maxContentChars = 2000
	// maxBodyBytes caps how much HTML we read per page.
	maxBodyBytes = 512 * 1024

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Fetcher retrieves and cleans page content.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with sensible defaults.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Document fetches a URL and parses it into a goquery document.
func (f *Fetcher) Document(ctx context.Context, targetURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "scrape: create request for %s", targetURL)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "scrape: fetch %s", targetURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("scrape: %s returned status %d", targetURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrapf(err, "scrape: parse %s", targetURL)
	}
	return doc, nil
}

// Text fetches a URL and returns its cleaned plain text: script, style, nav,
// header and footer subtrees removed, whitespace collapsed, bounded to 2000
// chars with an ellipsis.
func (f *Fetcher) Text(ctx context.Context, targetURL string) (string, error) {
	doc, err := f.Document(ctx, targetURL)
	if err != nil {
		return "", err
	}
	return CleanDocument(doc), nil
}

// Head issues a HEAD request and reports whether the URL answers 200.
// Used for bounded verification probes during discovery.
func (f *Fetcher) Head(ctx context.Context, targetURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

// CleanDocument strips boilerplate subtrees and reduces a document to
// bounded plain text.
func CleanDocument(doc *goquery.Document) string {
	doc.Find("script, style, nav, header, footer").Remove()

	text := doc.Find("body").Text()
	if text == "" {
		text = doc.Text()
	}
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	if len(text) > maxContentChars {
		text = text[:maxContentChars] + "..."
	}
	return text
}
