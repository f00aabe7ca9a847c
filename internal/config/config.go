// Package config loads and validates environment variables at startup.
// Fail-fast: if a variable is missing or malformed, the process exits with an error.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"jobmate/recruitment-service/internal/legacy"
)

// Supported DB_DRIVER values.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Config holds all runtime configuration for the recruitment service.
type Config struct {
	Port     string
	GRPCPort string // empty disables the gRPC listener

	DBDriver    string
	DatabaseURL string
	RedisURL    string // empty disables events and stats snapshots

	LegacyAPIURL     string // empty disables legacy sync
	LegacyAPIKey     string
	LegacyAPIRetries int
	LegacyAPIBackoff time.Duration
	LegacyAPITimeout time.Duration
	LegacyAPIRPS     float64

	StatsSchedule string

	LogLevel  string
	LogFormat string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("GRPC_PORT", "50051")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("LEGACY_API_URL", "")
	v.SetDefault("LEGACY_API_KEY", "")
	v.SetDefault("LEGACY_API_RETRIES", 3)
	v.SetDefault("LEGACY_API_BACKOFF", "1s")
	v.SetDefault("LEGACY_API_TIMEOUT", "15s")
	v.SetDefault("LEGACY_API_RPS", 0)
	v.SetDefault("STATS_SCHEDULE", "@every 15m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

// Load reads an optional .env file, then the environment, and returns a
// validated Config. Variables already set in the environment win over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:             v.GetString("PORT"),
		GRPCPort:         v.GetString("GRPC_PORT"),
		DBDriver:         strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		RedisURL:         v.GetString("REDIS_URL"),
		LegacyAPIURL:     v.GetString("LEGACY_API_URL"),
		LegacyAPIKey:     v.GetString("LEGACY_API_KEY"),
		LegacyAPIRetries: v.GetInt("LEGACY_API_RETRIES"),
		LegacyAPIBackoff: v.GetDuration("LEGACY_API_BACKOFF"),
		LegacyAPITimeout: v.GetDuration("LEGACY_API_TIMEOUT"),
		LegacyAPIRPS:     v.GetFloat64("LEGACY_API_RPS"),
		StatsSchedule:    v.GetString("STATS_SCHEDULE"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=%s", DriverPostgres)
		}
	case DriverSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "file:recruitment.db"
		}
	default:
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, cfg.DBDriver)
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT must not be empty")
	}
	if cfg.LegacyAPIRetries < 1 {
		return nil, fmt.Errorf("LEGACY_API_RETRIES must be a positive integer, got %q", v.GetString("LEGACY_API_RETRIES"))
	}
	if cfg.LegacyAPIBackoff <= 0 {
		return nil, fmt.Errorf("LEGACY_API_BACKOFF must be a positive duration, got %q", v.GetString("LEGACY_API_BACKOFF"))
	}
	if cfg.LegacyAPITimeout <= 0 {
		return nil, fmt.Errorf("LEGACY_API_TIMEOUT must be a positive duration, got %q", v.GetString("LEGACY_API_TIMEOUT"))
	}
	if cfg.LegacyAPIRPS < 0 {
		return nil, fmt.Errorf("LEGACY_API_RPS must not be negative")
	}
	if _, err := cron.ParseStandard(cfg.StatsSchedule); err != nil {
		return nil, fmt.Errorf("STATS_SCHEDULE %q: %w", cfg.StatsSchedule, err)
	}

	return cfg, nil
}

// LegacyEnabled reports whether a legacy endpoint is configured.
func (c *Config) LegacyEnabled() bool { return c.LegacyAPIURL != "" }

// Legacy returns the legacy client configuration.
func (c *Config) Legacy() legacy.Config {
	return legacy.Config{
		BaseURL: c.LegacyAPIURL,
		APIKey:  c.LegacyAPIKey,
		Retries: c.LegacyAPIRetries,
		Backoff: c.LegacyAPIBackoff,
		Timeout: c.LegacyAPITimeout,
		RPS:     c.LegacyAPIRPS,
	}
}
