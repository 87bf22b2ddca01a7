package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"logogrip/internal/eventbus"
)

// FileName is the name of the per-directory configuration file
const FileName = ".logogrip.toml"

// EnvPrefix is the prefix for environment overrides (LOGOGRIP_SEARCH_THRESHOLD, ...)
const EnvPrefix = "LOGOGRIP"

// Config represents the application configuration
type Config struct {
	Version int           `mapstructure:"version" toml:"version"`
	Catalog CatalogConfig `mapstructure:"catalog" toml:"catalog"`
	Search  SearchConfig  `mapstructure:"search" toml:"search"`
	UI      UISettings    `mapstructure:"ui" toml:"ui"`
	Fetch   FetchConfig   `mapstructure:"fetch" toml:"fetch"`
	Logging LoggingConfig `mapstructure:"logging" toml:"logging"`
}

// CatalogConfig controls where the manifest comes from
type CatalogConfig struct {
	Manifest  string   `mapstructure:"manifest" toml:"manifest"`     // path or http(s) URL
	AssetRoot string   `mapstructure:"asset_root" toml:"asset_root"` // defaults to the manifest directory
	Watch     bool     `mapstructure:"watch" toml:"watch"`
	Timeout   Duration `mapstructure:"timeout" toml:"timeout"`
	UserAgent string   `mapstructure:"user_agent" toml:"user_agent"`
}

// SearchConfig tunes the fuzzy matcher
type SearchConfig struct {
	Threshold      float64  `mapstructure:"threshold" toml:"threshold"`
	Keys           []string `mapstructure:"keys" toml:"keys"`
	Algorithm      string   `mapstructure:"algorithm" toml:"algorithm"`
	Location       int      `mapstructure:"location" toml:"location"`
	Distance       int      `mapstructure:"distance" toml:"distance"`
	IgnoreLocation bool     `mapstructure:"ignore_location" toml:"ignore_location"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ZoomPresets  []int    `mapstructure:"zoom_presets" toml:"zoom_presets"`
	CopyFeedback Duration `mapstructure:"copy_feedback" toml:"copy_feedback"`
	LinkBase     string   `mapstructure:"link_base" toml:"link_base"`
	Preview      bool     `mapstructure:"preview" toml:"preview"`
}

// FetchConfig configures the manifest scraper
type FetchConfig struct {
	BaseURL       string   `mapstructure:"base_url" toml:"base_url"`
	Concurrency   int      `mapstructure:"concurrency" toml:"concurrency"`
	RateInterval  Duration `mapstructure:"rate_interval" toml:"rate_interval"`
	Retries       int      `mapstructure:"retries" toml:"retries"`
	UserAgent     string   `mapstructure:"user_agent" toml:"user_agent"`
	RespectRobots bool     `mapstructure:"respect_robots" toml:"respect_robots"`
}

// LoggingConfig configures the log file
type LoggingConfig struct {
	File  string `mapstructure:"file" toml:"file"`
	Level string `mapstructure:"level" toml:"level"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus         eventbus.EventBus
	searchPaths []string
}

// NewConfigService creates a config service that searches the working
// directory and then the user config directory.
func NewConfigService() ConfigService {
	return &configService{searchPaths: SearchPaths()}
}

// SearchPaths lists the directories Load looks in, in priority order
func SearchPaths() []string {
	paths := []string{"."}
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "logogrip"))
	}
	return paths
}

// FindFile returns the first config file present on the search paths
func FindFile() (string, bool) {
	for _, dir := range SearchPaths() {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load reads the first config file found on the search paths plus environment
// overrides. A missing file is not an error.
func (cs *configService) Load() (*Config, error) {
	v := newViper()
	v.SetConfigName(strings.TrimSuffix(FileName, ".toml"))
	for _, p := range cs.searchPaths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return decode(v)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return decode(v)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}

	return nil
}

// newViper returns a viper instance primed with defaults and env overrides
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("version", d.Version)

	v.SetDefault("catalog.manifest", d.Catalog.Manifest)
	v.SetDefault("catalog.asset_root", d.Catalog.AssetRoot)
	v.SetDefault("catalog.watch", d.Catalog.Watch)
	v.SetDefault("catalog.timeout", d.Catalog.Timeout.String())
	v.SetDefault("catalog.user_agent", d.Catalog.UserAgent)

	v.SetDefault("search.threshold", d.Search.Threshold)
	v.SetDefault("search.keys", d.Search.Keys)
	v.SetDefault("search.algorithm", d.Search.Algorithm)
	v.SetDefault("search.location", d.Search.Location)
	v.SetDefault("search.distance", d.Search.Distance)
	v.SetDefault("search.ignore_location", d.Search.IgnoreLocation)

	v.SetDefault("ui.zoom_presets", d.UI.ZoomPresets)
	v.SetDefault("ui.copy_feedback", d.UI.CopyFeedback.String())
	v.SetDefault("ui.link_base", d.UI.LinkBase)
	v.SetDefault("ui.preview", d.UI.Preview)

	v.SetDefault("fetch.base_url", d.Fetch.BaseURL)
	v.SetDefault("fetch.concurrency", d.Fetch.Concurrency)
	v.SetDefault("fetch.rate_interval", d.Fetch.RateInterval.String())
	v.SetDefault("fetch.retries", d.Fetch.Retries)
	v.SetDefault("fetch.user_agent", d.Fetch.UserAgent)
	v.SetDefault("fetch.respect_robots", d.Fetch.RespectRobots)

	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.level", d.Logging.Level)
}

// Validate rejects settings the rest of the program cannot work with
func (c *Config) Validate() error {
	if c.Search.Threshold < 0 || c.Search.Threshold > 1 {
		return fmt.Errorf("search.threshold must be within [0,1], got %v", c.Search.Threshold)
	}
	switch c.Search.Algorithm {
	case "", "bitap", "subsequence":
	default:
		return fmt.Errorf("search.algorithm must be bitap or subsequence, got %q", c.Search.Algorithm)
	}
	for _, k := range c.Search.Keys {
		switch k {
		case "name", "slug", "label":
		default:
			return fmt.Errorf("search.keys: unknown key %q", k)
		}
	}
	for _, p := range c.UI.ZoomPresets {
		if p <= 0 {
			return fmt.Errorf("ui.zoom_presets must be positive, got %d", p)
		}
	}
	if c.Fetch.Concurrency < 0 {
		return fmt.Errorf("fetch.concurrency must not be negative")
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Catalog: CatalogConfig{
			Manifest:  "logos.json",
			Watch:     true,
			Timeout:   Duration(10 * time.Second),
			UserAgent: "logogrip/1",
		},
		Search: SearchConfig{
			Threshold: 0.3,
			Keys:      []string{"name", "slug"},
			Algorithm: "bitap",
			Distance:  100,
		},
		UI: UISettings{
			ZoomPresets:  []int{100, 160, 200},
			CopyFeedback: Duration(2 * time.Second),
			Preview:      true,
		},
		Fetch: FetchConfig{
			BaseURL:       "https://www.carlogos.org",
			Concurrency:   8,
			RateInterval:  Duration(250 * time.Millisecond),
			Retries:       3,
			UserAgent:     "logogrip/1",
			RespectRobots: true,
		},
		Logging: LoggingConfig{
			File:  "logogrip.log",
			Level: "info",
		},
	}
}
