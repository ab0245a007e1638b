package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	probmodels "github.com/b5strbal/probability-models"
	"github.com/b5strbal/probability-models/internal/catalog"
	"github.com/b5strbal/probability-models/internal/config"
	"github.com/b5strbal/probability-models/pkg/adapters/file"
	"github.com/b5strbal/probability-models/pkg/adapters/redis"
	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/b5strbal/probability-models/pkg/ports"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// settings merges the environment configuration with command-line flags.
func settings(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	if dir, _ := cmd.Flags().GetString("dir"); cmd.Flags().Changed("dir") {
		cfg.Dir = dir
	}
	if addr, _ := cmd.Flags().GetString("redis"); cmd.Flags().Changed("redis") {
		cfg.RedisAddr = addr
	}
	debug, _ := cmd.Flags().GetBool("debug")

	logger, err := cfg.Logger(debug)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

// openStore picks the experiment source: definition files, then Redis, then
// the built-in catalog. The returned func releases the store.
func openStore(cfg config.Config, logger *slog.Logger) (ports.ExperimentStore, func(), error) {
	switch {
	case cfg.Dir != "" && cfg.RedisAddr != "":
		return nil, nil, fmt.Errorf("--dir and --redis are mutually exclusive")
	case cfg.Dir != "":
		info, err := os.Stat(cfg.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid experiment directory: %w", err)
		}
		if !info.IsDir() {
			return nil, nil, fmt.Errorf("invalid experiment directory: %s is not a directory", cfg.Dir)
		}
		logger.Debug("loading experiments from files", "dir", cfg.Dir)
		return file.New(cfg.Dir), func() {}, nil
	case cfg.RedisAddr != "":
		logger.Debug("loading experiments from redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		store, closeStore := openRedis(cfg, logger)
		return store, closeStore, nil
	default:
		logger.Debug("using built-in catalog")
		return catalog.Store(), func() {}, nil
	}
}

// openRedis connects to the configured Redis. The returned func closes it.
func openRedis(cfg config.Config, logger *slog.Logger) (*redis.Store, func()) {
	store := redis.New(cfg.RedisAddr, os.Getenv("PROBMODELS_REDIS_PASSWORD"), cfg.RedisDB, redis.WithTTL(cfg.RedisTTL))
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing redis", "error", err)
		}
	}
}

// newEngine builds the engine for a command from its flags and environment.
func newEngine(cmd *cobra.Command, hooks ...domain.LifecycleHooks) (*probmodels.Engine, *slog.Logger, func(), error) {
	cfg, logger, err := settings(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	eng, closeStore, err := buildEngine(cfg, logger, hooks...)
	if err != nil {
		return nil, nil, nil, err
	}
	return eng, logger, closeStore, nil
}

func buildEngine(cfg config.Config, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*probmodels.Engine, func(), error) {
	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	eng, err := probmodels.New(
		probmodels.WithStore(store),
		probmodels.WithLogger(logger),
		probmodels.WithLifecycleHooks(domain.CombineHooks(hooks...)),
	)
	if err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	return eng, closeStore, nil
}

// renderLogHooks logs every finished render at info level.
func renderLogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRenderEnd: func(ctx context.Context, e *domain.RenderEvent) {
			if e.Err != nil {
				logger.Info("render failed", "experiment", e.Experiment, "model", e.Model, "duration", e.Duration, "error", e.Err)
				return
			}
			logger.Info("render", "experiment", e.Experiment, "model", e.Model, "duration", e.Duration)
		},
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
