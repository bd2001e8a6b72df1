package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the tenant portal server.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Tenants   TenantsConfig
	Templates TemplatesConfig
}

type ServerConfig struct {
	Port            int
	Env             string
	LogLevel        slog.Level
	RateLimitPerMin int
}

type StoreConfig struct {
	Driver        string
	MigrationsDir string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig is optional; an empty URL selects the in-process cache.
type RedisConfig struct {
	URL string
}

type AuthConfig struct {
	JWTSecret      string
	Issuer         string
	AccessTokenTTL time.Duration
}

type TenantsConfig struct {
	// File is an optional YAML overlay on the built-in tenants.
	File string
}

type TemplatesConfig struct {
	CacheTTL     time.Duration
	FetchTimeout time.Duration
	// APIURL, when set, makes sessions fetch templates from a remote
	// template API instead of the local store.
	APIURL string
}

const minJWTSecretLen = 32

var validDrivers = map[string]bool{
	"postgres": true,
	"memory":   true,
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            envInt("PORTAL_PORT", 8080),
			Env:             envString("PORTAL_ENV", "development"),
			LogLevel:        envLevel("LOG_LEVEL", slog.LevelInfo),
			RateLimitPerMin: envInt("RATE_LIMIT_PER_MIN", 120),
		},
		Store: StoreConfig{
			Driver:        envString("STORE_DRIVER", "postgres"),
			MigrationsDir: envString("MIGRATIONS_DIR", "migrations"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("JWT_SECRET"),
			Issuer:         envString("JWT_ISSUER", "tenantportal"),
			AccessTokenTTL: envDuration("ACCESS_TOKEN_TTL", time.Hour),
		},
		Tenants: TenantsConfig{
			File: os.Getenv("TENANTS_FILE"),
		},
		Templates: TemplatesConfig{
			CacheTTL:     envDuration("TEMPLATE_CACHE_TTL", 5*time.Minute),
			FetchTimeout: envDuration("TEMPLATE_FETCH_TIMEOUT", 5*time.Second),
			APIURL:       os.Getenv("TEMPLATE_API_URL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if !validDrivers[c.Store.Driver] {
		return fmt.Errorf("STORE_DRIVER must be one of postgres, memory; got %q", c.Store.Driver)
	}
	if c.Store.Driver == "postgres" && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is postgres")
	}

	if c.Redis.URL != "" && !strings.HasPrefix(c.Redis.URL, "redis://") && !strings.HasPrefix(c.Redis.URL, "rediss://") {
		return fmt.Errorf("REDIS_URL must start with redis:// or rediss://, got %q", c.Redis.URL)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Auth.JWTSecret) < minJWTSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLen)
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}

	if c.Templates.APIURL != "" && !strings.HasPrefix(c.Templates.APIURL, "http://") && !strings.HasPrefix(c.Templates.APIURL, "https://") {
		return fmt.Errorf("TEMPLATE_API_URL must start with http:// or https://, got %q", c.Templates.APIURL)
	}

	if c.Server.RateLimitPerMin <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MIN must be positive")
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envLevel(key string, defaultVal slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		return defaultVal
	}
	return l
}
