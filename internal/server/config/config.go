// Package config loads server configuration from environment variables.
// Конфигурация читается один раз при старте и передается компонентам
// явно, глобального состояния нет.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the Taskkeeper server.
type Config struct {
	// Address is the HTTP listen address.
	Address string `env:"TASKKEEPER_ADDRESS" envDefault:":8080"`

	// DatabasePath is the path to the SQLite database file.
	DatabasePath string `env:"TASKKEEPER_DATABASE_PATH" envDefault:"taskkeeper.db"`

	// JWTSecret is the HMAC secret for signing tokens (HS256).
	JWTSecret string `env:"TASKKEEPER_JWT_SECRET"`

	// AccessTokenTTL is the session token lifetime. Default is 7 days.
	AccessTokenTTL time.Duration `env:"TASKKEEPER_ACCESS_TOKEN_TTL" envDefault:"10080m"`

	// ResetTokenTTL is the password reset token lifetime.
	ResetTokenTTL time.Duration `env:"TASKKEEPER_RESET_TOKEN_TTL" envDefault:"15m"`

	// RateLimit is the default number of requests per window per client IP.
	RateLimit int `env:"TASKKEEPER_RATE_LIMIT" envDefault:"300"`

	// AuthRateLimit is the stricter limit for credential endpoints.
	AuthRateLimit int `env:"TASKKEEPER_AUTH_RATE_LIMIT" envDefault:"10"`

	// RateLimitWindow is the rate limiting window.
	RateLimitWindow time.Duration `env:"TASKKEEPER_RATE_LIMIT_WINDOW" envDefault:"1m"`

	// Debug enables verbose logging and text log output.
	Debug bool `env:"TASKKEEPER_DEBUG" envDefault:"false"`
}

// Load парсит конфигурацию из переменных окружения
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("TASKKEEPER_JWT_SECRET is required")
	}

	return cfg, nil
}
