// Package ddg provides a client for the DuckDuckGo HTML search endpoint.
package ddg

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://html.duckduckgo.com/html/"

// Client defines the search operations used by discovery.
type Client interface {
	// FirstResult returns the URL of the top search result for query, or an
	// error when the search fails or yields nothing.
	FirstResult(ctx context.Context, query string) (string, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the search endpoint (used in tests).
func WithBaseURL(base string) Option {
	return func(c *httpClient) { c.baseURL = base }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a DuckDuckGo HTML search client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) FirstResult(ctx context.Context, query string) (string, error) {
	searchURL := c.baseURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "ddg: create request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "ddg: search")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("ddg: search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return "", eris.Wrap(err, "ddg: parse results")
	}

	href, ok := doc.Find(".result__a").First().Attr("href")
	if !ok || href == "" {
		return "", eris.Errorf("ddg: no results for %q", query)
	}
	return unwrapRedirect(href), nil
}

// unwrapRedirect extracts the destination from DuckDuckGo's uddg redirect
// wrapper; plain URLs pass through unchanged.
func unwrapRedirect(href string) string {
	idx := strings.Index(href, "uddg=")
	if idx < 0 {
		return href
	}
	wrapped := href[idx+len("uddg="):]
	if amp := strings.Index(wrapped, "&"); amp >= 0 {
		wrapped = wrapped[:amp]
	}
	if decoded, err := url.QueryUnescape(wrapped); err == nil {
		return decoded
	}
	return wrapped
}
