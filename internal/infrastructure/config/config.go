package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	Lookup    LookupConfig
	History   HistoryConfig
	Session   SessionConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// GeminiConfig holds generative-model configuration.
type GeminiConfig struct {
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	Model   string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-pro-latest"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`
}

// LookupConfig holds quick-lookup service configuration.
type LookupConfig struct {
	BaseURL string `envconfig:"LOOKUP_BASE_URL"`
}

// HistoryConfig holds history extraction configuration.
type HistoryConfig struct {
	// OverridePath points at an explicit history store, bypassing the
	// per-OS path table. Useful when the server platform differs from the
	// user's machine.
	OverridePath string `envconfig:"HISTORY_STORE_PATH"`
}

// SessionConfig holds session store configuration.
type SessionConfig struct {
	TTL time.Duration `envconfig:"SESSION_TTL" default:"30m"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Gemini: GeminiConfig{
			Model: "gemini-1.5-pro-latest",
		},
		Session: SessionConfig{
			TTL: 30 * time.Minute,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
