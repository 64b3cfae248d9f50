// Package config provides configuration for the history service.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/xiaot623/termmon/internal/domain"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPAddr        string        `env:"HTTP_ADDR,default=127.0.0.1:3333"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	// Database
	DatabaseURL string `env:"DATABASE_URL,default=termmon.db"`

	// Recording policy module; empty uses the built-in one.
	PolicyFile string `env:"POLICY_FILE"`

	// What to do when the store fails during a request.
	FailurePolicy domain.FailurePolicy `env:"STORAGE_FAILURE_POLICY,default=respond"`

	// Logging
	LogLevel string `env:"LOG_LEVEL,default=info"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}
	if !cfg.FailurePolicy.Valid() {
		return nil, fmt.Errorf("invalid STORAGE_FAILURE_POLICY %q: want %q or %q",
			cfg.FailurePolicy, domain.FailurePolicyRespond, domain.FailurePolicyExit)
	}
	return cfg, nil
}

// AccessLog reports whether per-request access logging is enabled.
func (c *Config) AccessLog() bool {
	return c.LogLevel != "warn" && c.LogLevel != "error"
}
