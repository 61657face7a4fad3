// Package config assembles the API configuration from an optional YAML file
// (CONFIG_FILE) and the environment. Environment values win.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"social-news/internal/infra/db"
	"social-news/internal/infra/scraper"
	scrapeUC "social-news/internal/usecase/scrape"
	env "social-news/pkg/config"
)

// Store modes.
const (
	StorePostgres = "postgres"
	StoreFile     = "file"
)

// Config is everything cmd/api needs to start.
type Config struct {
	HTTPAddr           string        `yaml:"http_addr"`
	LogLevel           string        `yaml:"log_level"`
	Version            string        `yaml:"version"`
	StaticDir          string        `yaml:"static_dir"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	Store              StoreConfig   `yaml:"store"`
	Scrape             ScrapeConfig  `yaml:"scrape"`
	Tracing            TracingConfig `yaml:"tracing"`
}

// StoreConfig selects and configures the story store.
type StoreConfig struct {
	Mode string `yaml:"mode"`
	// DatabaseURL takes precedence over Database.
	DatabaseURL string              `yaml:"database_url"`
	Database    db.Params           `yaml:"database"`
	Pool        db.ConnectionConfig `yaml:"pool"`
	File        string              `yaml:"file"`
}

// ScrapeConfig configures the headline scraper and the POST /scrape limiter.
type ScrapeConfig struct {
	AllowedPrefix string        `yaml:"allowed_prefix"`
	ProbeURL      string        `yaml:"probe_url"`
	Timeout       time.Duration `yaml:"timeout"`
	RateLimit     float64       `yaml:"rate_limit"`
	RateBurst     int           `yaml:"rate_burst"`
}

// TracingConfig toggles the OpenTelemetry SDK provider.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HTTPAddr:  ":5000",
		LogLevel:  "info",
		Version:   "dev",
		StaticDir: "./static",
		Store: StoreConfig{
			Mode: StorePostgres,
			Pool: db.DefaultConnectionConfig(),
			File: "stories.json",
		},
		Scrape: ScrapeConfig{
			AllowedPrefix: scrapeUC.DefaultAllowedPrefix,
			ProbeURL:      scraper.DefaultProbeURL,
			Timeout:       scraper.DefaultTimeout,
			RateLimit:     1,
			RateBurst:     3,
		},
		Tracing: TracingConfig{SampleRatio: 1},
	}
}

// Load builds the configuration: defaults, then CONFIG_FILE, then the environment.
// The result is validated.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// mergeFile overlays the keys present in the YAML file at path.
// The path comes from the operator, not from a request.
func (c *Config) mergeFile(path string) error {
	// #nosec G304 -- CONFIG_FILE is operator supplied
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.HTTPAddr = env.GetEnvString("HTTP_ADDR", c.HTTPAddr)
	c.LogLevel = env.GetEnvString("LOG_LEVEL", c.LogLevel)
	c.Version = env.GetEnvString("VERSION", c.Version)
	c.StaticDir = env.GetEnvString("STATIC_DIR", c.StaticDir)
	c.CORSAllowedOrigins = env.GetEnvStringList("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)

	s := &c.Store
	s.Mode = strings.ToLower(env.GetEnvString("STORE_MODE", s.Mode))
	s.DatabaseURL = env.GetEnvString("DATABASE_URL", s.DatabaseURL)
	s.Database.User = env.GetEnvString("DATABASE_USERNAME", s.Database.User)
	s.Database.Password = env.GetEnvString("DATABASE_PASSWORD", s.Database.Password)
	s.Database.Host = env.GetEnvString("DATABASE_IP", s.Database.Host)
	s.Database.Port = env.GetEnvString("DATABASE_PORT", s.Database.Port)
	s.Database.Name = env.GetEnvString("DATABASE_NAME", s.Database.Name)
	s.Pool.MaxOpenConns = env.GetEnvInt("DB_MAX_OPEN_CONNS", s.Pool.MaxOpenConns)
	s.Pool.MaxIdleConns = env.GetEnvInt("DB_MAX_IDLE_CONNS", s.Pool.MaxIdleConns)
	s.Pool.ConnMaxLifetime = env.GetEnvDuration("DB_CONN_MAX_LIFETIME", s.Pool.ConnMaxLifetime)
	s.Pool.ConnMaxIdleTime = env.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", s.Pool.ConnMaxIdleTime)
	s.File = env.GetEnvString("STORIES_FILE", s.File)

	sc := &c.Scrape
	sc.AllowedPrefix = env.GetEnvString("SCRAPE_ALLOWED_PREFIX", sc.AllowedPrefix)
	sc.ProbeURL = env.GetEnvString("SCRAPE_PROBE_URL", sc.ProbeURL)
	sc.Timeout = env.GetEnvDuration("SCRAPE_TIMEOUT", sc.Timeout)
	sc.RateLimit = env.GetEnvFloat("SCRAPE_RATE_LIMIT", sc.RateLimit)
	sc.RateBurst = env.GetEnvInt("SCRAPE_RATE_BURST", sc.RateBurst)

	c.Tracing.Enabled = env.GetEnvBool("TRACING_ENABLED", c.Tracing.Enabled)
	c.Tracing.SampleRatio = env.GetEnvFloat("TRACING_SAMPLE_RATIO", c.Tracing.SampleRatio)
}

// DSN returns DATABASE_URL, or a DSN composed from the discrete DATABASE_* settings.
func (s StoreConfig) DSN() string {
	if s.DatabaseURL != "" {
		return s.DatabaseURL
	}
	return s.Database.DSN()
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.HTTPAddr == "" {
		add("http_addr is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		add("log_level %q must be debug, info, warn or error", c.LogLevel)
	}

	switch c.Store.Mode {
	case StorePostgres:
		if c.Store.DatabaseURL == "" && (c.Store.Database.Host == "" || c.Store.Database.Name == "") {
			add("postgres store needs DATABASE_URL or DATABASE_IP and DATABASE_NAME")
		}
		p := c.Store.Pool
		if p.MaxOpenConns < 0 || p.MaxIdleConns < 0 {
			add("pool connection counts must be non-negative")
		}
		if p.MaxOpenConns > 0 && p.MaxIdleConns > p.MaxOpenConns {
			add("max_idle_conns (%d) exceeds max_open_conns (%d)", p.MaxIdleConns, p.MaxOpenConns)
		}
		if err := env.ValidateNonNegativeDuration(p.ConnMaxLifetime); err != nil {
			add("conn_max_lifetime: %w", err)
		}
		if err := env.ValidateNonNegativeDuration(p.ConnMaxIdleTime); err != nil {
			add("conn_max_idle_time: %w", err)
		}
	case StoreFile:
		if c.Store.File == "" {
			add("file store needs STORIES_FILE")
		}
	default:
		add("store mode %q must be %s or %s", c.Store.Mode, StorePostgres, StoreFile)
	}

	if u, err := url.Parse(c.Scrape.AllowedPrefix); err != nil || u.Scheme == "" || u.Host == "" {
		add("scrape allowed_prefix %q must be an absolute URL", c.Scrape.AllowedPrefix)
	}
	if u, err := url.Parse(c.Scrape.ProbeURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		add("scrape probe_url %q must be an http(s) URL", c.Scrape.ProbeURL)
	}
	if err := env.ValidateDurationRange(c.Scrape.Timeout, time.Second, 2*time.Minute); err != nil {
		add("scrape timeout: %w", err)
	}
	if c.Scrape.RateLimit <= 0 {
		add("scrape rate_limit must be positive, got %v", c.Scrape.RateLimit)
	}
	if c.Scrape.RateBurst < 1 {
		add("scrape rate_burst must be at least 1, got %d", c.Scrape.RateBurst)
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		add("tracing sample_ratio must be within [0, 1], got %v", c.Tracing.SampleRatio)
	}

	return errors.Join(errs...)
}
