// Package scraper rebuilds the logo manifest from a car logo website.
//
// Manufacturers are discovered on the site's A-Z page, each manufacturer
// page is read for its og:image logo, and logos are downloaded into
// <target>/images. The manifest at <target>/logos.json is merged with what
// was found so earlier entries are never lost.
package scraper

import (
	"bytes"
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"logogrip/internal/catalog"
	"logogrip/internal/domain"
)

const (
	// DefaultBaseURL is the site manufacturers are scraped from
	DefaultBaseURL = "https://www.carlogos.org"

	manufacturersPath     = "/car-brands-a-z"
	manufacturersSelector = "html body div.main div.main-l div.a-z dl dd a"
	logoSelector          = `meta[property="og:image"]`
	manifestName          = "logos.json"
)

var (
	// ErrNoManufacturers is returned when the A-Z page lists nobody
	ErrNoManufacturers = errors.New("no manufacturers found on the page")
	// ErrDuplicateManufacturers is returned when two manufacturers share a name
	ErrDuplicateManufacturers = errors.New("manufacturer names must be unique")
	// ErrDisallowed is returned for URLs excluded by robots.txt
	ErrDisallowed = errors.New("disallowed by robots.txt")
)

// Manufacturer is one entry of the A-Z page
type Manufacturer struct {
	Name string
	URL  string
}

// Options configures a scrape
type Options struct {
	BaseURL       string
	TargetDir     string
	LogosSubdir   string
	Concurrency   int
	RateInterval  time.Duration
	Retries       int
	Backoff       time.Duration
	UserAgent     string
	RespectRobots bool
	Client        *http.Client
	Logger        *zap.Logger
}

// Result summarises a scrape
type Result struct {
	Discovered      int
	Downloaded      []string
	Unchanged       []string
	Missing         []string
	Entities        []domain.Entity
	ManifestPath    string
	ManifestWritten bool
}

// Scraper downloads manufacturer logos
type Scraper struct {
	opts    Options
	client  *http.Client
	limiter *hostRateLimiter
	robots  *robotsPolicy
	logger  *zap.Logger
}

// New creates a scraper, filling unset options with defaults
func New(opts Options) *Scraper {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.LogosSubdir == "" {
		opts.LogosSubdir = "images"
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.Retries <= 0 {
		opts.Retries = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "logogrip/1"
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("scraper")

	s := &Scraper{
		opts:    opts,
		client:  client,
		limiter: newHostRateLimiter(opts.RateInterval),
		logger:  logger,
	}
	if opts.RespectRobots {
		s.robots = newRobotsPolicy(client, opts.UserAgent, logger)
	}
	return s
}

// Run discovers manufacturers, downloads their logos and merges the
// manifest.
func (s *Scraper) Run(ctx context.Context) (*Result, error) {
	s.logger.Info("discovering manufacturers", zap.String("base", s.opts.BaseURL))
	manufacturers, err := s.Manufacturers(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Join(s.opts.TargetDir, s.opts.LogosSubdir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create target directory: %w", err)
	}

	manifestPath := filepath.Join(s.opts.TargetDir, manifestName)
	existing, err := catalog.ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("existing manifest", zap.Int("entities", len(existing)))

	res := &Result{Discovered: len(manufacturers), ManifestPath: manifestPath}
	var mu sync.Mutex
	fresh := make([]domain.Entity, 0, len(manufacturers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for _, m := range manufacturers {
		g.Go(func() error {
			entity, changed, err := s.fetchLogo(gctx, m)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn("logo unavailable", zap.String("manufacturer", m.Name), zap.Error(err))
				res.Missing = append(res.Missing, m.Name)
			case changed:
				res.Downloaded = append(res.Downloaded, m.Name)
				fresh = append(fresh, entity)
			default:
				res.Unchanged = append(res.Unchanged, m.Name)
				fresh = append(fresh, entity)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(res.Downloaded)
	sort.Strings(res.Unchanged)
	sort.Strings(res.Missing)

	res.Entities = catalog.Merge(existing, fresh)
	if len(res.Entities) > 0 {
		written, err := catalog.WriteManifest(manifestPath, res.Entities)
		if err != nil {
			return nil, err
		}
		res.ManifestWritten = written
	}

	s.logger.Info("scrape finished",
		zap.Int("discovered", res.Discovered),
		zap.Int("downloaded", len(res.Downloaded)),
		zap.Int("unchanged", len(res.Unchanged)),
		zap.Int("missing", len(res.Missing)),
		zap.Bool("manifest_written", res.ManifestWritten))
	return res, nil
}

// Manufacturers scrapes the A-Z page, sorted by name
func (s *Scraper) Manufacturers(ctx context.Context) ([]Manufacturer, error) {
	body, err := s.get(ctx, s.opts.BaseURL+manufacturersPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manufacturer list: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse manufacturer list: %w", err)
	}

	var manufacturers []Manufacturer
	doc.Find(manufacturersSelector).Each(func(_ int, a *goquery.Selection) {
		name := strings.TrimSpace(a.Text())
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		switch {
		case name == "":
			s.logger.Warn("missing name for manufacturer", zap.String("href", href))
		case href == "":
			s.logger.Warn("missing href for manufacturer", zap.String("name", name))
		default:
			manufacturers = append(manufacturers, Manufacturer{Name: name, URL: href})
		}
	})

	if len(manufacturers) == 0 {
		return nil, ErrNoManufacturers
	}
	if dups := duplicateNames(manufacturers); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateManufacturers, strings.Join(dups, ", "))
	}

	sort.Slice(manufacturers, func(i, j int) bool {
		return manufacturers[i].Name < manufacturers[j].Name
	})
	return manufacturers, nil
}

// fetchLogo downloads one manufacturer's logo. changed is false when the
// local file already had the same content.
func (s *Scraper) fetchLogo(ctx context.Context, m Manufacturer) (domain.Entity, bool, error) {
	page, err := s.get(ctx, s.absolute(m.URL))
	if err != nil {
		return domain.Entity{}, false, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return domain.Entity{}, false, fmt.Errorf("failed to parse page: %w", err)
	}
	logoURL, ok := doc.Find(logoSelector).First().Attr("content")
	if !ok || strings.TrimSpace(logoURL) == "" {
		return domain.Entity{}, false, errors.New("logo not found")
	}
	logoURL = s.absolute(strings.TrimSpace(logoURL))

	slug := catalog.Slugify(m.Name)
	if slug == "" {
		return domain.Entity{}, false, fmt.Errorf("cannot derive slug from %q", m.Name)
	}
	relPath := path.Join(s.opts.LogosSubdir, slug+extension(logoURL))
	target := filepath.Join(s.opts.TargetDir, filepath.FromSlash(relPath))

	data, err := s.get(ctx, logoURL)
	if err != nil {
		return domain.Entity{}, false, err
	}

	entity := domain.Entity{
		Name:  m.Name,
		Slug:  slug,
		Image: domain.Image{Source: logoURL, Path: relPath},
	}

	if current, err := os.ReadFile(target); err == nil && md5.Sum(current) == md5.Sum(data) {
		s.logger.Debug("logo unchanged, skipping", zap.String("file", target))
		return entity, false, nil
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return domain.Entity{}, false, fmt.Errorf("failed to save logo: %w", err)
	}
	s.logger.Debug("downloaded logo", zap.String("manufacturer", m.Name), zap.String("file", target))
	return entity, true, nil
}

// absolute resolves ref against the base URL
func (s *Scraper) absolute(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	base, err := url.Parse(s.opts.BaseURL + "/")
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(r).String()
}

func extension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".png"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" || len(ext) > 5 {
		return ".png"
	}
	return ext
}

func duplicateNames(ms []Manufacturer) []string {
	seen := make(map[string]bool, len(ms))
	dup := make(map[string]bool)
	for _, m := range ms {
		if seen[m.Name] {
			dup[m.Name] = true
		}
		seen[m.Name] = true
	}
	out := make([]string, 0, len(dup))
	for name := range dup {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
