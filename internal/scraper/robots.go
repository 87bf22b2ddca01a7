package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

// robotsPolicy caches robots.txt per host
type robotsPolicy struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger

	mu    sync.Mutex
	hosts map[string]*robotstxt.Group
}

func newRobotsPolicy(client *http.Client, userAgent string, logger *zap.Logger) *robotsPolicy {
	return &robotsPolicy{
		client:    client,
		userAgent: userAgent,
		logger:    logger,
		hosts:     make(map[string]*robotstxt.Group),
	}
}

// Allowed reports whether rawURL may be fetched. A robots.txt that cannot
// be retrieved allows everything.
func (p *robotsPolicy) Allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, err
	}

	group, err := p.group(ctx, u)
	if err != nil {
		return false, err
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return group.Test(path), nil
}

func (p *robotsPolicy) group(ctx context.Context, u *url.URL) (*robotstxt.Group, error) {
	key := u.Scheme + "://" + u.Host

	p.mu.Lock()
	defer p.mu.Unlock()
	if g, ok := p.hosts[key]; ok {
		return g, nil
	}

	data, err := p.fetch(ctx, key+"/robots.txt")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger.Debug("robots.txt unavailable, allowing all", zap.String("host", u.Host), zap.Error(err))
		data = nil
	}

	robots, err := robotstxt.FromBytes(data)
	if err != nil {
		p.logger.Warn("invalid robots.txt, allowing all", zap.String("host", u.Host), zap.Error(err))
		robots, _ = robotstxt.FromBytes(nil)
	}
	g := robots.FindGroup(p.userAgent)
	p.hosts[key] = g
	return g, nil
}

func (p *robotsPolicy) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("robots.txt: %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 512<<10))
}
