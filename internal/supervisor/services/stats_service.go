// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// DefaultStatsInterval is used when a non-positive interval is given.
const DefaultStatsInterval = time.Minute

// StatsReporter is implemented by *recommend.Engine.
type StatsReporter interface {
	Stats() recommend.Stats
}

// StatsReporterService periodically logs a summary of engine counters.
// Nothing is logged for intervals without new requests.
type StatsReporterService struct {
	reporter StatsReporter
	interval time.Duration
	logger   zerolog.Logger
	name     string

	lastRequests int64
}

// NewStatsReporterService creates the service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStatsReporterService(reporter StatsReporter, interval time.Duration, logger zerolog.Logger) *StatsReporterService {
	if interval <= 0 {
		interval = DefaultStatsInterval
	}
	return &StatsReporterService{
		reporter: reporter,
		interval: interval,
		logger:   logger.With().Str("service", "stats-reporter").Logger(),
		name:     "stats-reporter",
	}
}

// Serve logs the build summary once, then engine counters every interval
// until ctx is canceled.
func (s *StatsReporterService) Serve(ctx context.Context) error {
	stats := s.reporter.Stats()
	s.lastRequests = stats.Requests
	s.logger.Info().
		Int("items", stats.Build.Items).
		Int("users", stats.Build.Users).
		Int("titles", stats.Build.Titles).
		Dur("build_duration", stats.Build.TotalDuration).
		Msg("Engine ready")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.report()
		}
	}
}

func (s *StatsReporterService) report() {
	stats := s.reporter.Stats()
	delta := stats.Requests - s.lastRequests
	if delta <= 0 {
		return
	}
	s.lastRequests = stats.Requests

	var hitRate float64
	if lookups := stats.CacheHits + stats.CacheMisses; lookups > 0 {
		hitRate = float64(stats.CacheHits) / float64(lookups)
	}
	s.logger.Info().
		Int64("requests", stats.Requests).
		Int64("requests_since_last", delta).
		Int64("empty_selections", stats.EmptySelections).
		Int64("unresolved_titles", stats.UnresolvedTitle).
		Float64("cache_hit_rate", hitRate).
		Msg("Engine stats")
}

// String implements fmt.Stringer for supervisor logging.
func (s *StatsReporterService) String() string {
	return s.name
}
