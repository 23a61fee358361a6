package discover

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlead/fairlead/internal/scrape"
	"github.com/fairlead/fairlead/pkg/ddg"
)

type cannedSearch struct {
	result string
	err    error
}

func (c *cannedSearch) FirstResult(_ context.Context, _ string) (string, error) {
	return c.result, c.err
}

var _ ddg.Client = (*cannedSearch)(nil)

func newDiscoverer(t *testing.T, search ddg.Client) *Discoverer {
	t.Helper()
	return New(search, scrape.NewFetcher(2*time.Second))
}

func TestWebsite(t *testing.T) {
	d := newDiscoverer(t, &cannedSearch{result: "https://acme.example/"})
	assert.Equal(t, "https://acme.example/", d.Website(context.Background(), "Acme"))

	d = newDiscoverer(t, &cannedSearch{err: fmt.Errorf("blocked")})
	assert.Equal(t, "", d.Website(context.Background(), "Acme"))
}

func TestAboutPageFromAnchor(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="/pricing">Pricing</a>
			<a href="/about-us">About Us</a>
		</body></html>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	d := newDiscoverer(t, &cannedSearch{})
	got := d.AboutPage(context.Background(), srv.URL)
	assert.Equal(t, srv.URL+"/about-us", got)
}

func TestAboutPageByProbe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<html><body><a href="/pricing">Pricing</a></body></html>`)
		case "/company":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	d := newDiscoverer(t, &cannedSearch{})
	got := d.AboutPage(context.Background(), srv.URL)
	assert.Equal(t, srv.URL+"/company", got)
}

func TestAboutPageNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			fmt.Fprint(w, `<html><body>nothing</body></html>`)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	d := newDiscoverer(t, &cannedSearch{})
	assert.Equal(t, "", d.AboutPage(context.Background(), srv.URL))
}

func TestAboutPageBadWebsite(t *testing.T) {
	d := newDiscoverer(t, &cannedSearch{})
	assert.Equal(t, "", d.AboutPage(context.Background(), "not a url"))
}

func TestLinkedInFromWebsite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="https://twitter.com/acme">Twitter</a>
			<a href="https://www.linkedin.com/company/acme-robotics?originalSubdomain=in">LinkedIn</a>
		</body></html>`)
	}))
	t.Cleanup(srv.Close)

	d := newDiscoverer(t, &cannedSearch{})
	got := d.LinkedIn(context.Background(), "Acme Robotics", srv.URL)
	assert.Equal(t, "https://www.linkedin.com/company/acme-robotics", got)
}

func TestCleanLinkedInURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.linkedin.com/company/acme?trk=nav", "https://www.linkedin.com/company/acme"},
		{"https://www.linkedin.com/company/acme#section", "https://www.linkedin.com/company/acme"},
		{"/company/acme", "https://www.linkedin.com/company/acme"},
		{"www.linkedin.com/company/acme", "https://www.linkedin.com/company/acme"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanLinkedInURL(tt.in), "input %q", tt.in)
	}
}

func TestLinkedInCandidates(t *testing.T) {
	got := linkedInCandidates("Acme Robotics Pvt. Ltd.")
	require.Len(t, got, 3)
	assert.Equal(t, "https://www.linkedin.com/company/acme-robotics", got[0])
	assert.Equal(t, "https://www.linkedin.com/company/acme-robotics-india", got[1])
	assert.Equal(t, "https://www.linkedin.com/company/acmerobotics", got[2])
}

func TestLinkedInCandidatesEmptyName(t *testing.T) {
	assert.Nil(t, linkedInCandidates("..."))
}
