package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Page store backends.
const (
	StoreMemory    = "memory"
	StoreRedis     = "redis"
	StoreMemcached = "memcached"
)

// Config holds all configuration for the application.
type Config struct {
	Addr          string        `env:"AUTHFORMS_ADDR" envDefault:":8080"`
	SessionSecret string        `env:"AUTHFORMS_SESSION_SECRET,required"`
	PageStore     string        `env:"AUTHFORMS_PAGE_STORE" envDefault:"memory"`
	RedisURL      string        `env:"AUTHFORMS_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	MemcachedAddr []string      `env:"AUTHFORMS_MEMCACHED_ADDR" envDefault:"localhost:11211" envSeparator:","`
	PageTTL       time.Duration `env:"AUTHFORMS_PAGE_TTL" envDefault:"30m"`
	StaticDir     string        `env:"AUTHFORMS_STATIC_DIR"`
	HtmxURL       string        `env:"AUTHFORMS_HTMX_URL" envDefault:"https://unpkg.com/htmx.org@2.0.4"`
	SubmitRate    int           `env:"AUTHFORMS_SUBMIT_RATE" envDefault:"10"`
	LogFormat     string        `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads a .env file if there is one and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}
	return Parse()
}

// Parse reads the configuration from the environment alone.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values env tags cannot express.
func (c *Config) Validate() error {
	switch c.PageStore {
	case StoreMemory, StoreRedis, StoreMemcached:
	default:
		return fmt.Errorf("AUTHFORMS_PAGE_STORE: unknown store %q", c.PageStore)
	}
	if len(c.SessionSecret) < 16 {
		return errors.New("AUTHFORMS_SESSION_SECRET must be at least 16 bytes")
	}
	if c.PageTTL <= 0 {
		return errors.New("AUTHFORMS_PAGE_TTL must be positive")
	}
	if c.SubmitRate <= 0 {
		return errors.New("AUTHFORMS_SUBMIT_RATE must be positive")
	}
	return nil
}
