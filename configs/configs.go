// Package configs parses the application wide configuration from environment
// variables. Package specific settings live next to the packages that use
// them; this package holds the knobs main needs for wiring.
package configs

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "WALLET_"

type Config struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	ServerRequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"60s"`

	WorkerCount         uint `env:"WORKER_COUNT" envDefault:"1"`
	WorkerQueueCapacity uint `env:"WORKER_QUEUE_CAPACITY" envDefault:"100"`

	DisableRatePolling     bool `env:"DISABLE_RATE_POLLING" envDefault:"false"`
	DisablePhishingRefresh bool `env:"DISABLE_PHISHING_REFRESH" envDefault:"false"`

	DisableIdempotencyMiddleware      bool   `env:"DISABLE_IDEMPOTENCY_MIDDLEWARE" envDefault:"false"`
	IdempotencyMiddlewareDatabaseType string `env:"IDEMPOTENCY_MIDDLEWARE_DATABASE_TYPE" envDefault:"local"`
	IdempotencyMiddlewareRedisURL     string `env:"IDEMPOTENCY_MIDDLEWARE_REDIS_URL"`

	MaintenancePauseDuration time.Duration `env:"MAINTENANCE_PAUSE_DURATION" envDefault:"5m"`
}

// Parse reads the main configuration from environment variables.
func Parse() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("error while parsing envs: %w", err)
	}
	return &cfg, nil
}

// ConfigureLogger sets the global logrus level from the configured string.
func ConfigureLogger(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("invalid log level %q, defaulting to info", level)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
