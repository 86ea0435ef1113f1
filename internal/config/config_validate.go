// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/tomtom215/reelmatch/internal/validation"
)

// ErrInvalidConfig wraps every validation failure returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// tableNamePattern restricts DuckDB table names to plain identifiers, since
// they are interpolated into queries.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks struct tags and cross-field rules.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, verr)
	}
	if err := c.validateSource(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.validateRecommend(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) validateSource() error {
	switch c.Source.Kind {
	case SourceFile:
		if c.Source.MoviesPath == "" {
			return fmt.Errorf("MOVIES_PATH is required when SOURCE_KIND=file")
		}
		if c.Source.RatingsPath == "" {
			return fmt.Errorf("RATINGS_PATH is required when SOURCE_KIND=file")
		}
	case SourceDuckDB:
		if c.Source.DuckDBPath == "" {
			return fmt.Errorf("DUCKDB_PATH is required when SOURCE_KIND=duckdb")
		}
		for _, table := range []string{c.Source.MoviesTable, c.Source.RatingsTable} {
			if !tableNamePattern.MatchString(table) {
				return fmt.Errorf("table name %q must be a plain identifier", table)
			}
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.CacheEnabled && c.Recommend.CacheSize < 1 {
		return fmt.Errorf("RECOMMEND_CACHE_SIZE must be positive when the cache is enabled, got %d", c.Recommend.CacheSize)
	}
	return nil
}
