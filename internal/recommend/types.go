// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"time"
)

// MovieRecord is one row of the movie source.
type MovieRecord struct {
	ID    int    `json:"movie_id"`
	Title string `json:"title"`
}

// RatingRecord is one row of the rating source.
type RatingRecord struct {
	UserID  int     `json:"user_id"`
	MovieID int     `json:"movie_id"`
	Rating  float64 `json:"rating"`
}

// ScoredItem is a ranked candidate with its aggregate similarity score.
type ScoredItem struct {
	MovieID int     `json:"movie_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
}

// Result is the outcome of a recommendation request.
type Result struct {
	// Selected echoes the submitted selection in submission order.
	Selected []string `json:"selected_movies"`

	// Recommendations holds at most TopN titles in ranked order.
	Recommendations []string `json:"recommendations"`

	// Unresolved counts selected titles that matched no indexed movie.
	Unresolved int `json:"unresolved"`

	// Cached is true when the result was served from the response cache.
	Cached bool `json:"cached"`
}

// BuildStats describes the startup pipeline run.
type BuildStats struct {
	Movies         int `json:"movies"`
	Titles         int `json:"titles"`
	Ratings        int `json:"ratings"`
	RatingsJoined  int `json:"ratings_joined"`
	RatingsDropped int `json:"ratings_dropped"`
	DuplicatePairs int `json:"duplicate_pairs"`
	Items          int `json:"items"`
	Users          int `json:"users"`
	NonZero        int `json:"nonzero"`
	ZeroNormItems  int `json:"zero_norm_items"`

	MatrixDuration     time.Duration `json:"matrix_duration"`
	SimilarityDuration time.Duration `json:"similarity_duration"`
	CatalogDuration    time.Duration `json:"catalog_duration"`
	TotalDuration      time.Duration `json:"total_duration"`
	BuiltAt            time.Time     `json:"built_at"`
}

// Stats holds engine request counters.
type Stats struct {
	Requests        int64      `json:"requests"`
	EmptySelections int64      `json:"empty_selections"`
	UnresolvedTitle int64      `json:"unresolved_titles"`
	CacheHits       int64      `json:"cache_hits"`
	CacheMisses     int64      `json:"cache_misses"`
	Build           BuildStats `json:"build"`
}

// DataProvider supplies the raw movie and rating records.
// Implemented by the dataset (CSV files) and database (DuckDB) packages.
type DataProvider interface {
	// LoadMovies returns every movie record with a numeric id.
	LoadMovies(ctx context.Context) ([]MovieRecord, error)

	// LoadRatings returns every rating record with a numeric movie id.
	LoadRatings(ctx context.Context) ([]RatingRecord, error)
}
