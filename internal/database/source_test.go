// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

var seedStatements = []string{
	`CREATE TABLE movies (movieId VARCHAR, title VARCHAR, genres VARCHAR)`,
	`INSERT INTO movies VALUES
		('1', 'Alien', 'Horror'),
		('2.0', 'Aliens', 'Action'),
		('3', 'Clueless', 'Comedy'),
		('abc', 'Broken Id', NULL),
		('4', NULL, NULL)`,
	`CREATE TABLE ratings (userId INTEGER, movieId VARCHAR, rating VARCHAR)`,
	`INSERT INTO ratings VALUES
		(1, '1', '5'),
		(1, '2', '4'),
		(2, '1', '4'),
		(2, '2', '5'),
		(3, '3', '5'),
		(3, 'x', '5'),
		(4, '1', 'high'),
		(5, '3', 'nan'),
		(5, '1', 'inf'),
		(6, '2', '-inf'),
		(NULL, '1', '3')`,
}

func seed(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, stmt := range seedStatements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed %q: %v", stmt, err)
		}
	}
}

func openMemory(t *testing.T) *Source {
	t.Helper()
	src, err := Open(context.Background(), Config{
		Path:         MemoryPath,
		MoviesTable:  "movies",
		RatingsTable: "ratings",
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = src.Close() })
	seed(t, src.DB())
	return src
}

func TestSource_LoadMovies(t *testing.T) {
	src := openMemory(t)

	movies, err := src.LoadMovies(context.Background())
	if err != nil {
		t.Fatalf("LoadMovies() error = %v", err)
	}

	want := []recommend.MovieRecord{
		{ID: 1, Title: "Alien"},
		{ID: 2, Title: "Aliens"},
		{ID: 3, Title: "Clueless"},
	}
	if !reflect.DeepEqual(movies, want) {
		t.Errorf("LoadMovies() = %v, want %v", movies, want)
	}
}

func TestSource_LoadRatings(t *testing.T) {
	src := openMemory(t)

	ratings, err := src.LoadRatings(context.Background())
	if err != nil {
		t.Fatalf("LoadRatings() error = %v", err)
	}

	want := []recommend.RatingRecord{
		{UserID: 1, MovieID: 1, Rating: 5},
		{UserID: 1, MovieID: 2, Rating: 4},
		{UserID: 2, MovieID: 1, Rating: 4},
		{UserID: 2, MovieID: 2, Rating: 5},
		{UserID: 3, MovieID: 3, Rating: 5},
	}
	if !reflect.DeepEqual(ratings, want) {
		t.Errorf("LoadRatings() = %v, want %v", ratings, want)
	}
}

func TestSource_LoadRatings_DiscardsNonFinite(t *testing.T) {
	src := openMemory(t)
	if _, err := src.DB().Exec(`INSERT INTO ratings VALUES (7, '3', 'NaN'), (7, '2', 'Infinity')`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	ratings, err := src.LoadRatings(context.Background())
	if err != nil {
		t.Fatalf("LoadRatings() error = %v", err)
	}
	for _, r := range ratings {
		if math.IsNaN(r.Rating) || math.IsInf(r.Rating, 0) {
			t.Errorf("kept non-finite rating %+v", r)
		}
		if r.UserID >= 5 {
			t.Errorf("kept rating %+v from a non-finite row", r)
		}
	}

	engine, err := recommend.Build(context.Background(), src, recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	ranking := engine.Explain([]string{"Alien"})
	if len(ranking.Items) != 2 {
		t.Errorf("Explain(Alien) = %+v, want Aliens and Clueless", ranking.Items)
	}
}

func TestSource_BuildsEngine(t *testing.T) {
	src := openMemory(t)

	engine, err := recommend.Build(context.Background(), src, recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := engine.Recommend(context.Background(), []string{"Alien"}).Recommendations
	want := []string{"Aliens", "Clueless"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend(Alien) = %v, want %v", got, want)
	}
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name:    "empty path",
			cfg:     Config{MoviesTable: "movies", RatingsTable: "ratings"},
			wantErr: dataset.ErrSourceUnavailable,
		},
		{
			name: "missing file",
			cfg: Config{
				Path:         filepath.Join(t.TempDir(), "absent.duckdb"),
				MoviesTable:  "movies",
				RatingsTable: "ratings",
			},
			wantErr: dataset.ErrSourceUnavailable,
		},
		{
			name:    "table name with quote",
			cfg:     Config{Path: MemoryPath, MoviesTable: `movies"; DROP TABLE x; --`, RatingsTable: "ratings"},
			wantErr: ErrInvalidTable,
		},
		{
			name:    "empty table name",
			cfg:     Config{Path: MemoryPath, MoviesTable: "movies"},
			wantErr: ErrInvalidTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), tt.cfg, zerolog.Nop())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Open() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSource_MissingTable(t *testing.T) {
	src, err := Open(context.Background(), Config{
		Path:         MemoryPath,
		MoviesTable:  "movies",
		RatingsTable: "ratings",
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	if _, err := src.LoadMovies(context.Background()); !errors.Is(err, dataset.ErrSourceUnavailable) {
		t.Errorf("LoadMovies() error = %v, want ErrSourceUnavailable", err)
	}
	if _, err := src.LoadRatings(context.Background()); !errors.Is(err, dataset.ErrSourceUnavailable) {
		t.Errorf("LoadRatings() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestOpen_FileIsReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reelmatch.duckdb")

	writer, err := sql.Open("duckdb", path)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	seed(t, writer)
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	src, err := Open(context.Background(), Config{
		Path:         path,
		MoviesTable:  "movies",
		RatingsTable: "ratings",
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	movies, err := src.LoadMovies(context.Background())
	if err != nil {
		t.Fatalf("LoadMovies() error = %v", err)
	}
	if len(movies) != 3 {
		t.Errorf("len(movies) = %d, want 3", len(movies))
	}

	if _, err := src.DB().Exec(`DELETE FROM movies`); err == nil {
		t.Error("write on read-only database succeeded")
	}
}
