// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Config locates the source files.
type Config struct {
	MoviesPath     string
	RatingsPath    string
	MoviesEncoding string
}

// FileSource loads movies and ratings from local files.
// It implements recommend.DataProvider.
type FileSource struct {
	config Config
	logger zerolog.Logger
}

var _ recommend.DataProvider = (*FileSource)(nil)

// NewFileSource creates a file-backed data provider.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFileSource(cfg Config, logger zerolog.Logger) *FileSource {
	return &FileSource{
		config: cfg,
		logger: logger.With().Str("component", "dataset").Logger(),
	}
}

// LoadMovies reads the movie file.
func (s *FileSource) LoadMovies(ctx context.Context) ([]recommend.MovieRecord, error) {
	start := time.Now()

	f, err := open(s.config.MoviesPath)
	if err != nil {
		metrics.RecordSourceLoad("movies", "file", time.Since(start), 0, 0, err)
		return nil, err
	}
	defer f.Close()

	movies, stats, err := ReadMovies(ctx, f, s.config.MoviesEncoding)
	metrics.RecordSourceLoad("movies", "file", time.Since(start), stats.Kept, stats.Discarded, err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.config.MoviesPath, err)
	}

	s.logger.Info().
		Str("path", s.config.MoviesPath).
		Int("rows", stats.Rows).
		Int("kept", stats.Kept).
		Int("discarded", stats.Discarded).
		Dur("duration", time.Since(start)).
		Msg("movies loaded")

	return movies, nil
}

// LoadRatings reads the rating file.
func (s *FileSource) LoadRatings(ctx context.Context) ([]recommend.RatingRecord, error) {
	start := time.Now()

	f, err := open(s.config.RatingsPath)
	if err != nil {
		metrics.RecordSourceLoad("ratings", "file", time.Since(start), 0, 0, err)
		return nil, err
	}
	defer f.Close()

	ratings, stats, err := ReadRatings(ctx, f)
	metrics.RecordSourceLoad("ratings", "file", time.Since(start), stats.Kept, stats.Discarded, err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.config.RatingsPath, err)
	}

	s.logger.Info().
		Str("path", s.config.RatingsPath).
		Int("rows", stats.Rows).
		Int("kept", stats.Kept).
		Int("discarded", stats.Discarded).
		Dur("duration", time.Since(start)).
		Msg("ratings loaded")

	return ratings, nil
}

func open(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrSourceUnavailable)
	}
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return f, nil
}
