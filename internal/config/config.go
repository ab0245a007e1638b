// Package config loads server settings from PROBMODELS_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/b5strbal/probability-models/internal/logging"
	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the serve and mcp commands.
// Command-line flags override any value set here.
type Config struct {
	Addr      string        `env:"PROBMODELS_ADDR"       envDefault:":8080"`
	Dir       string        `env:"PROBMODELS_DIR"`
	RedisAddr string        `env:"PROBMODELS_REDIS_ADDR"`
	RedisDB   int           `env:"PROBMODELS_REDIS_DB"   envDefault:"0"`
	RedisTTL  time.Duration `env:"PROBMODELS_REDIS_TTL"  envDefault:"0s"`
	LogLevel  string        `env:"PROBMODELS_LOG_LEVEL"  envDefault:"info"`
	LogFormat string        `env:"PROBMODELS_LOG_FORMAT" envDefault:"text"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the environment configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.RedisTTL < 0 {
		return Config{}, fmt.Errorf("parse env: PROBMODELS_REDIS_TTL must not be negative")
	}
	return cfg, nil
}

// Level returns the configured log level, forced to debug when debug is set.
func (c Config) Level(debug bool) (slog.Level, error) {
	if debug {
		return slog.LevelDebug, nil
	}
	return logging.ParseLevel(c.LogLevel)
}

// Logger builds the process logger.
func (c Config) Logger(debug bool) (*slog.Logger, error) {
	level, err := c.Level(debug)
	if err != nil {
		return nil, err
	}
	return logging.New(level, c.LogFormat), nil
}
