// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"runtime"
	"time"
)

// Config contains configuration for the recommendation engine.
type Config struct {
	// TopN is the maximum number of recommendations returned.
	TopN int `json:"top_n"`

	// SentinelScore is assigned to selected items so they rank last.
	SentinelScore float64 `json:"sentinel_score"`

	// Workers bounds the goroutines used for similarity computation.
	// Zero means runtime.NumCPU().
	Workers int `json:"workers"`

	// Cache contains response cache parameters.
	Cache CacheConfig `json:"cache"`
}

// CacheConfig contains response cache parameters.
type CacheConfig struct {
	Enabled bool          `json:"enabled"`
	Size    int           `json:"size"`
	TTL     time.Duration `json:"ttl"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		TopN:          5,
		SentinelScore: -1.0,
		Workers:       0,
		Cache: CacheConfig{
			Enabled: true,
			Size:    1024,
			TTL:     10 * time.Minute,
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.SentinelScore > -1.0 {
		return fmt.Errorf("sentinel_score must be at most -1.0, got %f", c.SentinelScore)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.Cache.Enabled {
		if c.Cache.Size < 1 {
			return fmt.Errorf("cache.size must be positive, got %d", c.Cache.Size)
		}
		if c.Cache.TTL < 0 {
			return fmt.Errorf("cache.ttl must be non-negative, got %v", c.Cache.TTL)
		}
	}
	return nil
}

// workerCount resolves the effective similarity worker count.
func (c *Config) workerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
