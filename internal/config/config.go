// Package config reads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/mmynk/splitledger/pkg/logging"
)

var ErrMissingSecret = errors.New("JWT_SECRET must be set")

// Config holds the server settings.
type Config struct {
	Port            int
	DBPath          string
	JWTSecret       string
	TokenTTL        time.Duration
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
}

// Load reads the configuration from environment variables, applying
// defaults for everything except JWT_SECRET.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:    getEnv("DB_PATH", "./data/splitledger.db"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		LogLevel:  logging.ParseLevel(os.Getenv("LOG_LEVEL")),
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, value)
	}
	return d, nil
}
