package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ErrHTTPStatus is returned when the manifest server answers with a non-2xx status
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// maxManifestSize caps how much of a remote manifest is read
const maxManifestSize = 32 << 20

// Source provides the raw manifest bytes
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	// Origin is the path or URL the manifest is read from
	Origin() string
	// AssetBase is the directory or URL relative image paths resolve against
	AssetBase() string
}

// SourceOptions configures remote sources
type SourceOptions struct {
	Timeout   time.Duration
	UserAgent string
	Client    *http.Client
}

// NewSource picks an HTTP source for http(s) URLs and a file source otherwise
func NewSource(location string, opts SourceOptions) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("manifest location is empty")
	}

	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return NewHTTPSource(u.String(), opts), nil
	}

	abs, err := filepath.Abs(location)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}
	return &FileSource{Path: abs}, nil
}

// FileSource reads the manifest from the local filesystem
type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return data, nil
}

func (s *FileSource) Origin() string    { return s.Path }
func (s *FileSource) AssetBase() string { return filepath.Dir(s.Path) }

// HTTPSource downloads the manifest with a GET request
type HTTPSource struct {
	URL       string
	userAgent string
	client    *http.Client
}

// NewHTTPSource creates a source for url
func NewHTTPSource(rawURL string, opts SourceOptions) *HTTPSource {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPSource{URL: rawURL, userAgent: opts.UserAgent, client: client}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest body: %w", err)
	}
	return data, nil
}

func (s *HTTPSource) Origin() string { return s.URL }

func (s *HTTPSource) AssetBase() string {
	u, err := url.Parse(s.URL)
	if err != nil {
		return s.URL
	}
	u.Path = path.Dir(u.Path)
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
