package stage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlead/fairlead/internal/discover"
	"github.com/fairlead/fairlead/internal/model"
	"github.com/fairlead/fairlead/internal/scrape"
)

// fakeSearch is a canned ddg.Client.
type fakeSearch struct {
	result string
	err    error
}

func (f *fakeSearch) FirstResult(_ context.Context, _ string) (string, error) {
	return f.result, f.err
}

func newFetchEnv(t *testing.T, handler http.Handler) (*httptest.Server, *FetchStage) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	fetcher := scrape.NewFetcher(2 * time.Second)
	disc := discover.New(&fakeSearch{result: srv.URL}, fetcher)
	return srv, NewFetchStage(disc, fetcher)
}

func TestFetchStageSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><a href="/about">About</a><p>Homepage.</p></body></html>`)
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Acme builds welding robots for factories.</p></body></html>`)
	})

	srv, st := newFetchEnv(t, mux)

	rec := model.Record{Name: "Acme"}
	require.NoError(t, st.Process(context.Background(), &rec))

	assert.Equal(t, model.StatusSuccess, rec.Status)
	assert.Equal(t, srv.URL, rec.Website)
	assert.Equal(t, srv.URL+"/about", rec.AboutPageURL)
	assert.Contains(t, rec.AboutContent, "welding robots")
}

func TestFetchStageWebsiteNotFound(t *testing.T) {
	fetcher := scrape.NewFetcher(2 * time.Second)
	disc := discover.New(&fakeSearch{result: ""}, fetcher)
	st := NewFetchStage(disc, fetcher)

	rec := model.Record{Name: "Ghost Corp"}
	require.NoError(t, st.Process(context.Background(), &rec))

	assert.Equal(t, model.StatusWebsiteNotFound, rec.Status)
	assert.Empty(t, rec.Website)
}

func TestFetchStageHomepageFallback(t *testing.T) {
	// No about link and no about paths: the homepage itself is fetched.
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html><body><p>Acme makes robots and nothing else matters here.</p></body></html>`)
	})

	srv, st := newFetchEnv(t, mux)

	rec := model.Record{Name: "Acme"}
	require.NoError(t, st.Process(context.Background(), &rec))

	assert.Equal(t, model.StatusSuccess, rec.Status)
	assert.Equal(t, srv.URL, rec.AboutPageURL)
	assert.Contains(t, rec.AboutContent, "Acme makes robots")
}

func TestFetchStageContentFetchFailed(t *testing.T) {
	_, st := newFetchEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))

	rec := model.Record{Name: "Acme"}
	require.NoError(t, st.Process(context.Background(), &rec))

	assert.Equal(t, model.StatusContentFetchFailed, rec.Status)
	assert.Empty(t, rec.AboutContent)
}

func TestFetchStageKeepsKnownWebsite(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Known site content that is long enough.</p></body></html>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	fetcher := scrape.NewFetcher(2 * time.Second)
	// Search would point elsewhere; the stored website wins.
	disc := discover.New(&fakeSearch{result: "https://wrong.example"}, fetcher)
	st := NewFetchStage(disc, fetcher)

	rec := model.Record{Name: "Acme", Website: srv.URL}
	require.NoError(t, st.Process(context.Background(), &rec))

	assert.Equal(t, srv.URL, rec.Website)
	assert.Equal(t, model.StatusSuccess, rec.Status)
}

func TestFetchStageNeeds(t *testing.T) {
	st := &FetchStage{}
	assert.True(t, st.Needs(model.Record{}))
	assert.True(t, st.Needs(model.Record{Status: model.StatusPending}))
	assert.False(t, st.Needs(model.Record{Status: model.StatusSuccess}))
	assert.False(t, st.Needs(model.Record{Status: model.StatusWebsiteNotFound}))
	assert.False(t, st.Needs(model.Record{Status: model.StatusContentFetchFailed}))
}
