// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// ErrInvalidTable indicates a table name that is not a plain identifier.
var ErrInvalidTable = errors.New("database: invalid table name")

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config locates the database and its tables.
type Config struct {
	Path         string
	MoviesTable  string
	RatingsTable string
}

// Source loads records from DuckDB tables.
type Source struct {
	conn   *sql.DB
	config Config
	logger zerolog.Logger
}

var _ recommend.DataProvider = (*Source)(nil)

// Open connects to the database described by cfg. A missing database file
// is reported as dataset.ErrSourceUnavailable.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (*Source, error) {
	for _, table := range []string{cfg.MoviesTable, cfg.RatingsTable} {
		if !identifierPattern.MatchString(table) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
		}
	}

	connStr, err := connectionString(cfg.Path)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("%w: %w", dataset.ErrSourceUnavailable, err)
	}

	return &Source{
		conn:   conn,
		config: cfg,
		logger: logger.With().Str("component", "database").Str("path", cfg.Path).Logger(),
	}, nil
}

// connectionString builds the DSN. Extension auto-install is disabled so
// startup never reaches the network.
func connectionString(path string) (string, error) {
	const opts = "autoinstall_known_extensions=false&autoload_known_extensions=false"

	if path == "" {
		return "", fmt.Errorf("%w: empty database path", dataset.ErrSourceUnavailable)
	}
	if path == MemoryPath {
		return MemoryPath + "?" + opts, nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %w", dataset.ErrSourceUnavailable, err)
	}
	return path + "?access_mode=read_only&" + opts, nil
}

// DB exposes the connection, mainly for seeding tables in tests.
func (s *Source) DB() *sql.DB {
	return s.conn
}

// Close closes the connection.
func (s *Source) Close() error {
	return s.conn.Close()
}

// LoadMovies reads the movies table.
func (s *Source) LoadMovies(ctx context.Context) ([]recommend.MovieRecord, error) {
	start := time.Now()
	table := s.config.MoviesTable
	query := fmt.Sprintf(`SELECT CAST(movieId AS VARCHAR), CAST(title AS VARCHAR) FROM %q`, table)

	var (
		movies []recommend.MovieRecord
		stats  dataset.ReadStats
	)
	err := s.scan(ctx, table, query, func(rows *sql.Rows) error {
		var id, title sql.NullString
		if err := rows.Scan(&id, &title); err != nil {
			return err
		}
		stats.Rows++
		movieID, ok := dataset.ParseID(id.String)
		if !id.Valid || !title.Valid || !ok {
			stats.Discarded++
			return nil
		}
		movies = append(movies, recommend.MovieRecord{ID: movieID, Title: title.String})
		stats.Kept++
		return nil
	})
	metrics.RecordSourceLoad("movies", "duckdb", time.Since(start), stats.Kept, stats.Discarded, err)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("table", table).
		Int("rows", stats.Rows).
		Int("kept", stats.Kept).
		Int("discarded", stats.Discarded).
		Dur("duration", time.Since(start)).
		Msg("movies loaded")
	return movies, nil
}

// LoadRatings reads the ratings table.
func (s *Source) LoadRatings(ctx context.Context) ([]recommend.RatingRecord, error) {
	start := time.Now()
	table := s.config.RatingsTable
	query := fmt.Sprintf(
		`SELECT CAST(userId AS VARCHAR), CAST(movieId AS VARCHAR), TRY_CAST(rating AS DOUBLE) FROM %q`,
		table)

	var (
		ratings []recommend.RatingRecord
		stats   dataset.ReadStats
	)
	err := s.scan(ctx, table, query, func(rows *sql.Rows) error {
		var userID, movieID sql.NullString
		var rating sql.NullFloat64
		if err := rows.Scan(&userID, &movieID, &rating); err != nil {
			return err
		}
		stats.Rows++
		user, userOK := dataset.ParseID(userID.String)
		movie, movieOK := dataset.ParseID(movieID.String)
		if !userID.Valid || !movieID.Valid || !rating.Valid || !userOK || !movieOK ||
			math.IsNaN(rating.Float64) || math.IsInf(rating.Float64, 0) {
			stats.Discarded++
			return nil
		}
		ratings = append(ratings, recommend.RatingRecord{UserID: user, MovieID: movie, Rating: rating.Float64})
		stats.Kept++
		return nil
	})
	metrics.RecordSourceLoad("ratings", "duckdb", time.Since(start), stats.Kept, stats.Discarded, err)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("table", table).
		Int("rows", stats.Rows).
		Int("kept", stats.Kept).
		Int("discarded", stats.Discarded).
		Dur("duration", time.Since(start)).
		Msg("ratings loaded")
	return ratings, nil
}

// scan runs query and calls fn for each row. A failing query (typically a
// missing table or column) is reported as dataset.ErrSourceUnavailable.
func (s *Source) scan(ctx context.Context, table, query string, fn func(*sql.Rows) error) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", table, time.Since(start), err) }()

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: query %s: %w", dataset.ErrSourceUnavailable, table, err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		if err := fn(rows); err != nil {
			return fmt.Errorf("scan %s: %w", table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s: %w", table, err)
	}
	return nil
}

func closeQuietly(c interface{ Close() error }) {
	if c != nil {
		_ = c.Close()
	}
}
