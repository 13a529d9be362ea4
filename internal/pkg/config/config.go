// Package config loads service settings from the environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	// Timezone decides the default delivery day when a request omits it.
	Timezone string `env:"TIMEZONE, default=America/Argentina/Buenos_Aires"`

	Geocode GeocodeConfig
	Verify  VerifyConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type GeocodeConfig struct {
	APIKey   string        `env:"GOOGLE_MAPS_API_KEY"`
	BaseURL  string        `env:"GEOCODE_BASE_URL,  default=https://maps.googleapis.com/maps/api"`
	Timeout  time.Duration `env:"GEOCODE_TIMEOUT,   default=5s"`
	Region   string        `env:"GEOCODE_REGION,    default=ar"`
	Language string        `env:"GEOCODE_LANGUAGE,  default=es"`
	Country  string        `env:"GEOCODE_COUNTRY,   default=ar"`
	CacheTTL time.Duration `env:"GEOCODE_CACHE_TTL, default=10m"`
}

type VerifyConfig struct {
	Retries int           `env:"VERIFY_RETRIES,       default=0"`
	Backoff time.Duration `env:"VERIFY_RETRY_BACKOFF, default=200ms"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=delivery_zones"`
}

type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED,  default=true"`
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l and validates it.
func LoadWith(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location returns the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Geocode.Timeout <= 0 {
		return fmt.Errorf("GEOCODE_TIMEOUT must be positive, got %s", c.Geocode.Timeout)
	}
	if c.Verify.Retries < 0 {
		return fmt.Errorf("VERIFY_RETRIES must not be negative, got %d", c.Verify.Retries)
	}
	return nil
}
