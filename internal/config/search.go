package config

import (
	"logogrip/internal/search"
)

// SearchOptions converts the [search] section into matcher options
func (c *Config) SearchOptions() (search.Options, error) {
	opts := search.DefaultOptions()
	s := c.Search

	opts.Threshold = s.Threshold
	opts.Location = s.Location
	opts.IgnoreLocation = s.IgnoreLocation
	if s.Distance > 0 {
		opts.Distance = s.Distance
	}
	if s.Algorithm != "" {
		opts.Algorithm = search.Algorithm(s.Algorithm)
	}
	if len(s.Keys) > 0 {
		keys, err := search.ParseKeys(s.Keys)
		if err != nil {
			return search.Options{}, err
		}
		opts.Keys = keys
	}
	return opts, nil
}
