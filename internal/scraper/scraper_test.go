package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logogrip/internal/catalog"
	"logogrip/internal/domain"
)

const azPage = `<html><body><div class="main"><div class="main-l"><div class="a-z">
<dl>
  <dt>L</dt>
  <dd><a href="/land-rover/">Land Rover</a></dd>
  <dt>N</dt>
  <dd><a href="/no-logo/">No Logo</a></dd>
  <dt>P</dt>
  <dd><a href="/private/brand/">Private</a></dd>
  <dt>V</dt>
  <dd><a href="/volkswagen/">Volkswagen</a></dd>
  <dd><a href="/empty/"></a></dd>
</dl>
</div></div></div></body></html>`

type site struct {
	*httptest.Server
	flaky atomic.Int32
	logos map[string][]byte
}

func newSite(t *testing.T, az string) *site {
	t.Helper()
	s := &site{logos: map[string][]byte{
		"/logos/vw.png": []byte("vw-logo-bytes"),
		"/logos/lr.png": []byte("lr-logo-bytes"),
	}}

	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
	})
	mux.HandleFunc("/car-brands-a-z", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, az)
	})
	mux.HandleFunc("/volkswagen/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><meta property="og:image" content="/logos/vw.png"></head></html>`)
	})
	mux.HandleFunc("/land-rover/", func(w http.ResponseWriter, r *http.Request) {
		// First request fails to exercise retries.
		if s.flaky.Add(1) == 1 {
			http.Error(w, "try again", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintf(w, `<html><head><meta property="og:image" content="%s/logos/lr.png"></head></html>`, s.URL)
	})
	mux.HandleFunc("/no-logo/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>nothing</title></head></html>`)
	})
	mux.HandleFunc("/private/", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("robots.txt disallowed path was fetched: %s", r.URL.Path)
	})
	mux.HandleFunc("/logos/", func(w http.ResponseWriter, r *http.Request) {
		data, ok := s.logos[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func newTestScraper(baseURL, target string) *Scraper {
	return New(Options{
		BaseURL:       baseURL,
		TargetDir:     target,
		Concurrency:   2,
		Retries:       3,
		Backoff:       time.Millisecond,
		RespectRobots: true,
	})
}

func TestManufacturers(t *testing.T) {
	srv := newSite(t, azPage)

	got, err := newTestScraper(srv.URL, t.TempDir()).Manufacturers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Manufacturer{
		{Name: "Land Rover", URL: "/land-rover/"},
		{Name: "No Logo", URL: "/no-logo/"},
		{Name: "Private", URL: "/private/brand/"},
		{Name: "Volkswagen", URL: "/volkswagen/"},
	}, got)
}

func TestManufacturersEmpty(t *testing.T) {
	srv := newSite(t, `<html><body><div class="main"></div></body></html>`)

	_, err := newTestScraper(srv.URL, t.TempDir()).Manufacturers(context.Background())
	assert.ErrorIs(t, err, ErrNoManufacturers)
}

func TestManufacturersDuplicates(t *testing.T) {
	page := `<html><body><div class="main"><div class="main-l"><div class="a-z"><dl>
<dd><a href="/bmw/">BMW</a></dd><dd><a href="/bmw-2/">BMW</a></dd>
</dl></div></div></div></body></html>`
	srv := newSite(t, page)

	_, err := newTestScraper(srv.URL, t.TempDir()).Manufacturers(context.Background())
	assert.ErrorIs(t, err, ErrDuplicateManufacturers)
	assert.ErrorContains(t, err, "BMW")
}

func TestRun(t *testing.T) {
	srv := newSite(t, azPage)
	target := t.TempDir()

	existing := []domain.Entity{
		{Name: "Zastava", Slug: "zastava", Image: domain.Image{Path: "images/zastava.png"}},
	}
	_, err := catalog.WriteManifest(filepath.Join(target, "logos.json"), existing)
	require.NoError(t, err)

	res, err := newTestScraper(srv.URL, target).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, res.Discovered)
	assert.Equal(t, []string{"Land Rover", "Volkswagen"}, res.Downloaded)
	assert.Equal(t, []string{"No Logo", "Private"}, res.Missing)
	assert.Empty(t, res.Unchanged)
	assert.True(t, res.ManifestWritten)

	data, err := os.ReadFile(filepath.Join(target, "images", "volkswagen.png"))
	require.NoError(t, err)
	assert.Equal(t, "vw-logo-bytes", string(data))

	manifest, err := catalog.ReadManifest(res.ManifestPath)
	require.NoError(t, err)
	require.Len(t, manifest, 3)
	assert.Equal(t, "Land Rover", manifest[0].Name)
	assert.Equal(t, "images/land-rover.png", manifest[0].Image.Path)
	assert.Equal(t, srv.URL+"/logos/lr.png", manifest[0].Image.Source)
	assert.Equal(t, "Volkswagen", manifest[1].Name)
	assert.Equal(t, srv.URL+"/logos/vw.png", manifest[1].Image.Source)
	assert.Equal(t, "Zastava", manifest[2].Name)

	// A second run finds identical files and leaves the manifest alone.
	again, err := newTestScraper(srv.URL, target).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, again.Downloaded)
	assert.Equal(t, []string{"Land Rover", "Volkswagen"}, again.Unchanged)
	assert.False(t, again.ManifestWritten)
}

func TestRunCancelled(t *testing.T) {
	srv := newSite(t, azPage)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestScraper(srv.URL, t.TempDir()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetGivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := New(Options{BaseURL: srv.URL, Retries: 3, Backoff: time.Millisecond})
	_, err := s.get(context.Background(), srv.URL+"/x")
	assert.ErrorContains(t, err, "after 3 attempts")
	assert.Equal(t, int32(3), calls.Load())
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".png", extension("https://x/logo.png"))
	assert.Equal(t, ".jpg", extension("https://x/logo.JPG?v=2"))
	assert.Equal(t, ".png", extension("https://x/logo"))
	assert.Equal(t, ".webp", extension("/a/b.webp"))
}

func TestAbsolute(t *testing.T) {
	s := New(Options{BaseURL: "https://www.carlogos.org/"})
	assert.Equal(t, "https://www.carlogos.org/bmw/", s.absolute("/bmw/"))
	assert.Equal(t, "https://cdn.example.com/x.png", s.absolute("https://cdn.example.com/x.png"))
}

func TestHostRateLimiterSpacesRequests(t *testing.T) {
	l := newHostRateLimiter(30 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, l.Wait(ctx, "https://a.example/1"))
	require.NoError(t, l.Wait(ctx, "https://a.example/2"))
	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)

	assert.Error(t, l.Wait(ctx, "/relative"))
}
