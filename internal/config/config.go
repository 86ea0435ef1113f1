// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/database"
	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Source kinds.
const (
	SourceFile   = "file"
	SourceDuckDB = "duckdb"
)

// Config holds all application configuration.
type Config struct {
	Source    SourceConfig    `koanf:"source"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// SourceConfig selects where movie and rating records are read from.
type SourceConfig struct {
	Kind           string `koanf:"kind" validate:"oneof=file duckdb"`
	MoviesPath     string `koanf:"movies_path"`
	RatingsPath    string `koanf:"ratings_path"`
	MoviesEncoding string `koanf:"movies_encoding" validate:"oneof=latin-1 utf-8"`
	DuckDBPath     string `koanf:"duckdb_path"`
	MoviesTable    string `koanf:"movies_table" validate:"required"`
	RatingsTable   string `koanf:"ratings_table" validate:"required"`
}

// RecommendConfig configures the recommendation engine.
type RecommendConfig struct {
	TopN          int           `koanf:"top_n" validate:"min=1,max=100"`
	SentinelScore float64       `koanf:"sentinel_score" validate:"lte=-1"`
	Workers       int           `koanf:"workers" validate:"min=0,max=1024"`
	CacheEnabled  bool          `koanf:"cache_enabled"`
	CacheSize     int           `koanf:"cache_size" validate:"min=0"`
	CacheTTL      time.Duration `koanf:"cache_ttl" validate:"min=0"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// SecurityConfig configures CORS and rate limiting.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"min=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// EngineConfig converts the recommend section to the engine's configuration.
func (c *Config) EngineConfig() *recommend.Config {
	return &recommend.Config{
		TopN:          c.Recommend.TopN,
		SentinelScore: c.Recommend.SentinelScore,
		Workers:       c.Recommend.Workers,
		Cache: recommend.CacheConfig{
			Enabled: c.Recommend.CacheEnabled,
			Size:    c.Recommend.CacheSize,
			TTL:     c.Recommend.CacheTTL,
		},
	}
}

// DatasetConfig returns the file source settings.
func (c *Config) DatasetConfig() dataset.Config {
	return dataset.Config{
		MoviesPath:     c.Source.MoviesPath,
		RatingsPath:    c.Source.RatingsPath,
		MoviesEncoding: c.Source.MoviesEncoding,
	}
}

// DatabaseConfig returns the DuckDB source settings.
func (c *Config) DatabaseConfig() database.Config {
	return database.Config{
		Path:         c.Source.DuckDBPath,
		MoviesTable:  c.Source.MoviesTable,
		RatingsTable: c.Source.RatingsTable,
	}
}

// LogConfig returns the logging settings. Output is left to the logging
// package default.
func (c *Config) LogConfig() logging.Config {
	return logging.Config{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		Caller:    c.Logging.Caller,
		Timestamp: true,
	}
}
