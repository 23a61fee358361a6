// Package seed extracts the exhibitor seed list from the expo listing page.
// The listing embeds its data as a JavaScript array in the page source, so
// extraction is regexp-based rather than DOM-based.
package seed

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Exhibitor is one startup entry from the seed source, with venue metadata.
type Exhibitor struct {
	Name     string
	Hall     string
	SpaceSqm string
	LogoURL  string
}

var (
	arrayRe    = regexp.MustCompile(`const exhibitors\s*=\s*(\[[\s\S]*?\])\s*;`)
	objectRe   = regexp.MustCompile(`\{([\s\S]*?)\}\s*(?:,|\])`)
	categoryRe = regexp.MustCompile(`categories\s*:\s*['"]Startup['"]`)
	// name values may contain escaped quotes, so the capture walks escape
	// pairs instead of stopping at the first quote.
	nameRe     = regexp.MustCompile(`name\s*:\s*['"]((?:\\.|[^'"\\])*)['"]`)
	hallRe     = regexp.MustCompile(`hall\s*:\s*['"](.*?)['"]`)
	sqmRe      = regexp.MustCompile(`sqm\s*:\s*['"](.*?)['"]`)
	logoRe     = regexp.MustCompile(`logo\s*:\s*['"](.*?)['"]`)
)

// Source fetches and parses the exhibitor listing.
type Source struct {
	url    string
	client *http.Client
}

// NewSource creates a Source for the given listing URL.
func NewSource(url string) *Source {
	return &Source{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Fetch downloads the listing page and extracts every startup exhibitor in
// page order, duplicate names removed.
func (s *Source) Fetch(ctx context.Context) ([]Exhibitor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "seed: create request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "seed: fetch listing")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("seed: listing returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "seed: read listing body")
	}

	return Parse(string(body))
}

// Parse extracts startup exhibitors from the raw page source.
func Parse(page string) ([]Exhibitor, error) {
	m := arrayRe.FindStringSubmatch(page)
	if m == nil {
		return nil, eris.New("seed: exhibitor data not found in page source")
	}

	var out []Exhibitor
	seen := make(map[string]bool)
	for _, obj := range objectRe.FindAllStringSubmatch(m[1], -1) {
		body := obj[1]
		if !categoryRe.MatchString(body) {
			continue
		}
		nm := nameRe.FindStringSubmatch(body)
		if nm == nil {
			continue
		}

		name := strings.TrimSpace(nm[1])
		name = strings.NewReplacer(`\'`, `'`, `\"`, `"`).Replace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		ex := Exhibitor{Name: name, Hall: "Unknown", SpaceSqm: "Unknown"}
		if hm := hallRe.FindStringSubmatch(body); hm != nil {
			ex.Hall = hm[1]
		}
		if sm := sqmRe.FindStringSubmatch(body); sm != nil {
			ex.SpaceSqm = sm[1]
		}
		if lm := logoRe.FindStringSubmatch(body); lm != nil {
			ex.LogoURL = lm[1]
		}
		out = append(out, ex)
	}
	return out, nil
}
