// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the resolved server configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port int

	// GeminiAPIKey authenticates against the Gemini API. Empty means the
	// generation endpoint reports a configuration error.
	GeminiAPIKey string

	// GeminiModel overrides the default generation model.
	GeminiModel string

	// GeminiBaseURL overrides the Gemini API host, mainly for tests.
	GeminiBaseURL string

	// RedisURL enables the Redis session store when non-empty.
	RedisURL string

	// StateEncryptionKey encrypts stored session state when set. Decoded
	// from base64, must be 32 bytes.
	StateEncryptionKey []byte

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present.
func Load() (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          8080,
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		LogLevel:      "info",
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STATE_ENCRYPTION_KEY"); v != "" {
		key, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("STATE_ENCRYPTION_KEY is not valid base64: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("STATE_ENCRYPTION_KEY must decode to 32 bytes, got %d", len(key))
		}
		cfg.StateEncryptionKey = key
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
