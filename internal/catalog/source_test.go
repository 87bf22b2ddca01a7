package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSourcePicksImplementation(t *testing.T) {
	src, err := NewSource("https://example.com/data/logos.json", SourceOptions{})
	require.NoError(t, err)
	require.IsType(t, &HTTPSource{}, src)
	assert.Equal(t, "https://example.com/data", src.AssetBase())

	src, err = NewSource("logos.json", SourceOptions{})
	require.NoError(t, err)
	require.IsType(t, &FileSource{}, src)
	assert.True(t, filepath.IsAbs(src.Origin()))

	_, err = NewSource("  ", SourceOptions{})
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logos.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

	src := &FileSource{Path: path}
	data, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Equal(t, dir, src.AssetBase())

	missing := &FileSource{Path: filepath.Join(dir, "missing.json")}
	_, err = missing.Fetch(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPSource(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/logos.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"name":"Volkswagen","slug":"volkswagen"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/logos.json", SourceOptions{UserAgent: "logogrip-test"})
	data, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), "Volkswagen")
	assert.Equal(t, "logogrip-test", gotUA)

	missing := NewHTTPSource(srv.URL+"/nope.json", SourceOptions{})
	_, err = missing.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrHTTPStatus)
	assert.ErrorContains(t, err, "404")
}
