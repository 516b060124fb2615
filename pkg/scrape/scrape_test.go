package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsab-ru/sitekit/pkg/errors"
	"github.com/alexsab-ru/sitekit/pkg/fetch"
	"github.com/alexsab-ru/sitekit/pkg/listings"
	"github.com/alexsab-ru/sitekit/pkg/logging"
)

const page = `<html><body>
<div class="cars">
  <div class="car">
    <a class="more" href="/models/haval-jolion/?utm_source=x">Подробнее</a>
    <h3 class="title">HAVAL Jolion</h3>
    <p class="price">от 2 199 000 <span>₽*</span></p>
  </div>
  <a class="car" href="https://haval.ru/models/dargo">
    <h3 class="title">Haval Dargo</h3>
    <p class="price">по запросу</p>
  </a>
</div>
</body></html>`

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestExtract(t *testing.T) {
	sel := Selectors{Item: ".car", Model: ".title", Price: ".price", Link: "a.more"}
	got, err := Extract(page, mustURL(t, "https://haval.ru/catalog/"), "haval", sel)
	require.NoError(t, err)

	want := []listings.Listing{
		{ID: "haval-jolion", Brand: "haval", Model: "Jolion", Price: 2199000, Link: "https://haval.ru/models/haval-jolion/"},
		{ID: "haval-dargo", Brand: "haval", Model: "Dargo", Price: 0, Link: "https://haval.ru/models/dargo"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractModelFromLink(t *testing.T) {
	sel := Selectors{Item: ".car", Model: ModelFromLink, Price: ".price", Link: "a.more"}
	got, err := Extract(page, mustURL(t, "https://haval.ru/"), "haval", sel)
	require.NoError(t, err)
	assert.Equal(t, "jolion", got[0].Model)
	assert.Equal(t, "dargo", got[1].Model)
}

func TestExtractErrors(t *testing.T) {
	base := mustURL(t, "https://haval.ru/")

	_, err := Extract(page, base, "haval", Selectors{Item: ".missing", Model: ".title", Price: ".price"})
	assert.True(t, errors.IsNotFound(err))

	_, err = Extract(page, base, "haval", Selectors{Item: ".car", Model: ".title", Price: ".nope", Link: "a"})
	assert.ErrorContains(t, err, "no price")

	_, err = Extract(page, base, "haval", Selectors{Item: "div.car", Model: ".title", Price: ".price"})
	assert.ErrorContains(t, err, "empty path")
}

func TestLoadSteps(t *testing.T) {
	inline := `[
		// wait for the catalog
		{type: 'waitForNetworkIdle'},
		{type: 'click', selector: '.tab-all', wait: 500},
		{type: 'get', selector: '.card', variable: 'item'},
		{type: 'get', selector: '.card-price', variable: 'PRICE'},
	]`
	steps, err := LoadSteps(inline)
	require.NoError(t, err)
	require.Len(t, steps, 4)
	assert.Equal(t, Step{Type: StepClick, Selector: ".tab-all", Wait: 500}, steps[1])

	sel, ignored := Apply(Selectors{Item: ".car", Model: ".title", Price: ".price"}, steps)
	assert.Equal(t, Selectors{Item: ".card", Model: ".title", Price: ".card-price"}, sel)
	assert.Equal(t, []string{StepWaitForNetworkIdle, StepClick}, ignored)

	path := filepath.Join(t.TempDir(), "steps.json5")
	require.NoError(t, os.WriteFile(path, []byte(inline), 0o644))
	fromFile, err := LoadSteps(path)
	require.NoError(t, err)
	assert.Equal(t, steps, fromFile)

	none, err := LoadSteps("  ")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = LoadSteps(`{"type": "get"}`)
	assert.True(t, errors.IsInvalidInput(err))

	_, err = LoadSteps(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestScraperRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	logging.DisableLoggingForTest(t)
	s := &Scraper{
		Client:    fetch.New(),
		Brand:     "haval",
		URL:       server.URL + "/catalog/",
		Selectors: Selectors{Item: ".car", Model: ".title", Price: ".price", Link: "a.more"},
		Retries:   3,
	}

	got, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, got, 2)
	assert.Equal(t, "haval-dargo", got[0].ID, "sorted by id")
}

func TestScraperSingleAttemptByDefault(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	logging.DisableLoggingForTest(t)
	s := &Scraper{
		Client:    fetch.New(),
		Brand:     "haval",
		URL:       server.URL,
		Selectors: Selectors{Item: ".car", Model: ".title", Price: ".price"},
	}
	_, err := s.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, DefaultRetries)
}

func TestScraperGivesUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	logging.DisableLoggingForTest(t)
	s := &Scraper{
		Client:    fetch.New(),
		Brand:     "haval",
		URL:       server.URL,
		Selectors: Selectors{Item: ".car", Model: ".title", Price: ".price"},
		Retries:   2,
	}
	_, err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HAVAL")
	assert.True(t, errors.IsUnavailable(err))

	_, err = (&Scraper{Client: fetch.New(), URL: server.URL}).Run(context.Background())
	var cfg *errors.ConfigError
	assert.True(t, errors.As(err, &cfg))
}
