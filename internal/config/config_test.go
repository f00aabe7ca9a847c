package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/recruitment")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "50051", cfg.GRPCPort)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 3, cfg.LegacyAPIRetries)
	assert.Equal(t, time.Second, cfg.LegacyAPIBackoff)
	assert.Equal(t, 15*time.Second, cfg.LegacyAPITimeout)
	assert.Zero(t, cfg.LegacyAPIRPS)
	assert.Equal(t, "@every 15m", cfg.StatsSchedule)
	assert.False(t, cfg.LegacyEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/recruitment")
	t.Setenv("PORT", "8080")
	t.Setenv("LEGACY_API_URL", "http://legacy.local")
	t.Setenv("LEGACY_API_KEY", "k")
	t.Setenv("LEGACY_API_RETRIES", "5")
	t.Setenv("LEGACY_API_BACKOFF", "250ms")
	t.Setenv("LEGACY_API_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.LegacyEnabled())

	lc := cfg.Legacy()
	assert.Equal(t, "http://legacy.local", lc.BaseURL)
	assert.Equal(t, "k", lc.APIKey)
	assert.Equal(t, 5, lc.Retries)
	assert.Equal(t, 250*time.Millisecond, lc.Backoff)
	assert.Equal(t, 2.5, lc.RPS)
}

func TestLoad_SQLiteDefaultsDSN(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file:recruitment.db", cfg.DatabaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "postgres without url", env: map[string]string{"DATABASE_URL": ""}},
		{name: "unknown driver", env: map[string]string{"DB_DRIVER": "mysql"}},
		{name: "zero retries", env: map[string]string{"LEGACY_API_RETRIES": "0"}},
		{name: "non-numeric retries", env: map[string]string{"LEGACY_API_RETRIES": "three"}},
		{name: "bad backoff", env: map[string]string{"LEGACY_API_BACKOFF": "soon"}},
		{name: "negative rps", env: map[string]string{"LEGACY_API_RPS": "-1"}},
		{name: "bad schedule", env: map[string]string{"STATS_SCHEDULE": "whenever"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/recruitment")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
