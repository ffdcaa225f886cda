// Package config loads runtime settings from LIGHTBNB_ prefixed environment
// variables, optionally seeded from a .env file.
//
// Nested keys use a double underscore: LIGHTBNB_DATABASE__URL maps to
// database.url.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "LIGHTBNB_"

const (
	DefaultSessionTTL  = 24 * time.Hour
	DefaultSearchLimit = 10
	DefaultSearchTTL   = 30 * time.Second
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
	DefaultMaxConns    = 4
)

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Redis    RedisConfig    `koanf:"redis"`
	Auth     AuthConfig     `koanf:"auth"`
	Search   SearchConfig   `koanf:"search"`
	Log      LogConfig      `koanf:"log"`
}

type Primary struct {
	Env string `koanf:"env"`
}

// DatabaseConfig points at the LightBnB PostgreSQL database.
type DatabaseConfig struct {
	URL        string `koanf:"url" validate:"required"`
	MaxConns   int32  `koanf:"max_conns" validate:"gte=0"`
	LogQueries bool   `koanf:"log_queries"`
}

// RedisConfig is optional. An empty Addr disables the search cache.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
}

type AuthConfig struct {
	JWTSecret  string        `koanf:"jwt_secret"`
	SessionTTL time.Duration `koanf:"session_ttl"`
}

type SearchConfig struct {
	DefaultLimit int           `koanf:"default_limit" validate:"gte=0"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"omitempty,oneof=console json"`
}

// envKey turns LIGHTBNB_DATABASE__URL into database.url.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Load reads the environment, applies defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	cfg.applyDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Primary.Env == "" {
		c.Primary.Env = "local"
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Auth.SessionTTL <= 0 {
		c.Auth.SessionTTL = DefaultSessionTTL
	}
	if c.Search.DefaultLimit == 0 {
		c.Search.DefaultLimit = DefaultSearchLimit
	}
	if c.Search.CacheTTL <= 0 {
		c.Search.CacheTTL = DefaultSearchTTL
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
