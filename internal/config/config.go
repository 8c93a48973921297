// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/pokeview.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Preference store backends.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Table names for the postgres preference store.
const (
	PreferencesTable = "preferences"
)

// Config is populated from environment variables.
type Config struct {
	// API server
	APIHost     string `env:"API_HOST"    envDefault:"0.0.0.0"`
	APIPort     int    `env:"API_PORT"    envDefault:"8000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// CORS
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:4321,http://localhost:5173"`

	// Rate limiting (inbound)
	RateLimitEnabled  bool          `env:"RATE_LIMIT_ENABLED"  envDefault:"true"`
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW"   envDefault:"60s"`

	// Upstream PokéAPI
	PokeAPIBaseURL           string        `env:"POKEAPI_BASE_URL"            envDefault:"https://pokeapi.co/api/v2"`
	PokeAPIRequestsPerMinute int           `env:"POKEAPI_REQUESTS_PER_MINUTE" envDefault:"600"`
	UpstreamTimeout          time.Duration `env:"UPSTREAM_TIMEOUT"            envDefault:"15s"`
	FanoutLimit              int           `env:"FANOUT_LIMIT"                envDefault:"8"`

	// Machine translation
	TranslateEnabled bool          `env:"TRANSLATE_ENABLED" envDefault:"true"`
	TranslateURL     string        `env:"TRANSLATE_URL"     envDefault:"https://libretranslate.de/translate"`
	TranslateAPIKey  string        `env:"TRANSLATE_API_KEY"`
	TranslateTimeout time.Duration `env:"TRANSLATE_TIMEOUT" envDefault:"5s"`

	// Cache
	CacheEnabled bool `env:"CACHE_ENABLED" envDefault:"true"`

	// Localization
	DefaultLanguage string `env:"DEFAULT_LANGUAGE"`

	// Preference store
	PreferenceStore string `env:"PREFERENCE_STORE"`
	PreferenceFile  string `env:"PREFERENCE_FILE"`
	RedisURL        string `env:"REDIS_URL"`

	// Database (postgres preference store)
	DatabaseURL    string        `env:"DATABASE_URL"`
	DBPoolMinConns int           `env:"DB_POOL_MIN_CONNS" envDefault:"1"`
	DBPoolMaxConns int           `env:"DB_POOL_MAX_CONNS" envDefault:"5"`
	DBPoolMaxLife  time.Duration `env:"DB_POOL_MAX_LIFE"  envDefault:"30m"`
}

// Load reads configuration from environment variables. defaultStore is the
// preference backend used when PREFERENCE_STORE is unset.
func Load(defaultStore string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if cfg.PreferenceStore == "" {
		cfg.PreferenceStore = defaultStore
	}
	if cfg.PreferenceFile == "" {
		cfg.PreferenceFile = defaultPreferenceFile()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	switch c.PreferenceStore {
	case StoreMemory, StoreFile:
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL must be set when PREFERENCE_STORE=redis")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL must be set when PREFERENCE_STORE=postgres")
		}
	default:
		return fmt.Errorf("config: unknown PREFERENCE_STORE %q", c.PreferenceStore)
	}
	if c.FanoutLimit < 0 {
		return fmt.Errorf("config: FANOUT_LIMIT must not be negative")
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func defaultPreferenceFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "pokeview", "preferences.yaml")
}
