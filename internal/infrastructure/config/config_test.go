package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	assert.Equal(t, "gemini-1.5-pro-latest", cfg.Gemini.Model)
	assert.Empty(t, cfg.Gemini.APIKey)
	assert.Empty(t, cfg.History.OverridePath)

	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":               "9000",
		"HOST":               "127.0.0.1",
		"GEMINI_API_KEY":     "secret",
		"GEMINI_MODEL":       "gemini-1.5-flash",
		"HISTORY_STORE_PATH": "/data/History",
		"SESSION_TTL":        "2h",
		"LOG_LEVEL":          "debug",
		"LOG_DEV":            "true",
		"RATE_LIMIT_RPS":     "500",
		"RATE_LIMIT_BURST":   "1000",
		"RATE_LIMIT_ENABLED": "false",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "/data/History", cfg.History.OverridePath)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	// An unparsable duration makes Load fail; LoadOrDefault falls back.
	t.Setenv("SESSION_TTL", "not-a-duration")

	cfg := LoadOrDefault()
	require.NotNil(t, cfg)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
}
