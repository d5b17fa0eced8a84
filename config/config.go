package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"audimew-storefront/internal/model"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envPrefix:"SERVER_"`
	Remote   RemoteConfig   `yaml:"remote" envPrefix:"REMOTE_"`
	Catalog  ListingConfig  `yaml:"catalog" envPrefix:"CATALOG_"`
	Events   ListingConfig  `yaml:"events" envPrefix:"EVENTS_"`
	Session  SessionConfig  `yaml:"session" envPrefix:"SESSION_"`
	Log      LogConfig      `yaml:"log" envPrefix:"LOG_"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DATABASE_"`
	DevAPI   DevAPIConfig   `yaml:"devapi" envPrefix:"DEVAPI_"`
}

// ServerConfig holds the BFF server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port" env:"PORT"`
	RequestIPHeader string  `yaml:"request_ip_header" env:"REQUEST_IP_HEADER"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec" env:"RATE_LIMIT_PER_SEC"`
	RateLimitBurst  int     `yaml:"rate_limit_burst" env:"RATE_LIMIT_BURST"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds" env:"CACHE_TTL_SECONDS"`
}

// RemoteConfig describes the storefront API the BFF talks to.
type RemoteConfig struct {
	BaseURL        string            `yaml:"base_url" env:"BASE_URL"`
	ImageBaseURL   string            `yaml:"image_base_url" env:"IMAGE_BASE_URL"`
	HTTPProxy      string            `yaml:"http_proxy" env:"HTTP_PROXY"`
	TimeoutSeconds int               `yaml:"timeout_seconds" env:"TIMEOUT_SECONDS"`
	Timeout        time.Duration     `yaml:"-" env:"-"`
	Headers        map[string]string `yaml:"headers" env:"-"`
}

// ListingConfig configures one list vertical (products or concerts).
type ListingConfig struct {
	PageSize   int      `yaml:"page_size" env:"PAGE_SIZE"`
	Categories []string `yaml:"categories" env:"CATEGORIES" envSeparator:","`
}

// SessionConfig holds the session store configuration.
type SessionConfig struct {
	TTLMinutes int           `yaml:"ttl_minutes" env:"TTL_MINUTES"`
	TTL        time.Duration `yaml:"-" env:"-"`
	CookieName string        `yaml:"cookie_name" env:"COOKIE_NAME"`
}

// LogConfig holds the logger configuration.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
	Output string `yaml:"output" env:"OUTPUT"`
}

// DatabaseConfig holds the database connection configuration for the stub API.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn" env:"DSN"`
	MaxOpenConns           int    `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns           int    `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes" env:"CONN_MAX_LIFETIME_MINUTES"`
}

// DevAPIConfig configures the local stub of the storefront API.
type DevAPIConfig struct {
	Port   int          `yaml:"port" env:"PORT"`
	Seed   bool         `yaml:"seed" env:"SEED"`
	Mirror MirrorConfig `yaml:"mirror" envPrefix:"MIRROR_"`
}

// MirrorConfig controls copying a live storefront catalog into the stub
// database. An empty SourceURL disables mirroring.
type MirrorConfig struct {
	SourceURL       string        `yaml:"source_url" env:"SOURCE_URL"`
	IntervalMinutes int           `yaml:"interval_minutes" env:"INTERVAL_MINUTES"`
	Interval        time.Duration `yaml:"-" env:"-"`
	PageSize        int           `yaml:"page_size" env:"PAGE_SIZE"`
	Workers         int           `yaml:"workers" env:"WORKERS"`
	MaxPages        int           `yaml:"max_pages" env:"MAX_PAGES"`
}

// Load reads the configuration from the given path and applies
// STOREFRONT_* environment overrides on top of it.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "STOREFRONT_"}); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills every unset field with its default value.
func (cfg *Config) ApplyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Remote.BaseURL == "" {
		cfg.Remote.BaseURL = "http://localhost:8089/api"
	}
	if cfg.Remote.ImageBaseURL == "" {
		cfg.Remote.ImageBaseURL = cfg.Remote.BaseURL
	}
	if cfg.Remote.TimeoutSeconds <= 0 {
		cfg.Remote.TimeoutSeconds = 30
	}
	cfg.Remote.Timeout = time.Duration(cfg.Remote.TimeoutSeconds) * time.Second

	if cfg.Catalog.PageSize <= 0 {
		cfg.Catalog.PageSize = 12
	}
	if len(cfg.Catalog.Categories) == 0 {
		cfg.Catalog.Categories = []string{model.AllCategory, "헤드셋", "이어폰", "스피커", "앰프"}
	}
	if cfg.Events.PageSize <= 0 {
		cfg.Events.PageSize = 10
	}
	if len(cfg.Events.Categories) == 0 {
		cfg.Events.Categories = []string{model.AllCategory, "뮤지컬", "연극", "클래식", "콘서트"}
	}

	if cfg.Session.TTLMinutes <= 0 {
		cfg.Session.TTLMinutes = 60
	}
	cfg.Session.TTL = time.Duration(cfg.Session.TTLMinutes) * time.Minute
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "sid"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file::memory:?cache=shared"
	}
	if cfg.DevAPI.Port <= 0 {
		cfg.DevAPI.Port = 8089
	}
	if cfg.DevAPI.Mirror.IntervalMinutes <= 0 {
		cfg.DevAPI.Mirror.IntervalMinutes = 30
	}
	cfg.DevAPI.Mirror.Interval = time.Duration(cfg.DevAPI.Mirror.IntervalMinutes) * time.Minute
	if cfg.DevAPI.Mirror.PageSize <= 0 {
		cfg.DevAPI.Mirror.PageSize = 50
	}
	if cfg.DevAPI.Mirror.Workers <= 0 {
		cfg.DevAPI.Mirror.Workers = 4
	}
	if cfg.DevAPI.Mirror.MaxPages <= 0 {
		cfg.DevAPI.Mirror.MaxPages = 1000
	}
}
