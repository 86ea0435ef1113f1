// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/database"
	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// loadConfig loads configuration using the --config flag, applies any
// explicitly set override flags and initializes the global logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"source", &cfg.Source.Kind},
		{"movies", &cfg.Source.MoviesPath},
		{"ratings", &cfg.Source.RatingsPath},
		{"duckdb", &cfg.Source.DuckDBPath},
		{"log-level", &cfg.Logging.Level},
	}
	changed := false
	for _, o := range overrides {
		if flags.Changed(o.flag) {
			*o.dst, _ = flags.GetString(o.flag)
			changed = true
		}
	}
	if flags.Changed("port") {
		cfg.Server.Port, _ = flags.GetInt("port")
		changed = true
	}
	if changed {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logging.Init(cfg.LogConfig())
	return cfg, nil
}

// buildEngine reads the configured source and builds the engine. The
// source is closed before returning; the engine keeps no reference to it.
func buildEngine(ctx context.Context, cfg *config.Config) (*recommend.Engine, error) {
	logger := logging.WithComponent("recommend")

	provider, closeFn, err := openProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeFn(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close source")
		}
	}()

	engine, err := recommend.Build(ctx, provider, cfg.EngineConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	metrics.RecordBuild(engine.BuildStats())
	return engine, nil
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func openProvider(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (recommend.DataProvider, func() error, error) {
	switch cfg.Source.Kind {
	case config.SourceDuckDB:
		src, err := database.Open(ctx, cfg.DatabaseConfig(), logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open duckdb source: %w", err)
		}
		logging.Info().Str("path", cfg.Source.DuckDBPath).Msg("Using DuckDB source")
		return src, src.Close, nil
	default:
		logging.Info().
			Str("movies", cfg.Source.MoviesPath).
			Str("ratings", cfg.Source.RatingsPath).
			Msg("Using file source")
		return dataset.NewFileSource(cfg.DatasetConfig(), logger), func() error { return nil }, nil
	}
}
