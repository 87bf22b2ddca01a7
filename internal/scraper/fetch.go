package scraper

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const maxBodySize = 16 << 20

// get fetches rawURL, honouring robots.txt and the per-host rate limit,
// and retries failures with exponential backoff and jitter.
func (s *Scraper) get(ctx context.Context, rawURL string) ([]byte, error) {
	if s.robots != nil {
		allowed, err := s.robots.Allowed(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrDisallowed)
		}
	}

	var lastErr error
	for attempt := 0; attempt < s.opts.Retries; attempt++ {
		if err := s.limiter.Wait(ctx, rawURL); err != nil {
			return nil, err
		}

		body, err := s.once(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt < s.opts.Retries-1 {
			wait := s.opts.Backoff<<attempt + time.Duration(rand.Int64N(int64(s.opts.Backoff)))
			s.logger.Warn("request failed, retrying",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt+1),
				zap.Duration("wait", wait),
				zap.Error(err))

			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}
	return nil, fmt.Errorf("failed to read %s after %d attempts: %w", rawURL, s.opts.Retries, lastErr)
}

func (s *Scraper) once(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: %s", rawURL, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}
