// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on other internal packages.
// Loaders reach it through the DataProvider interface.

// ErrNoProvider is returned by Build when no data provider is supplied.
var ErrNoProvider = errors.New("recommend: data provider is required")

// Engine owns the immutable recommendation state built at startup and
// serves rankings against it. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	matrix     *RatingMatrix
	similarity *SimilarityMatrix
	catalog    *CatalogIndex
	ranker     *Ranker
	build      BuildStats

	// cache is nil when response caching is disabled.
	cache *expirable.LRU[string, cachedRanking]

	requestCount     atomic.Int64
	emptySelections  atomic.Int64
	unresolvedTitles atomic.Int64
	cacheHits        atomic.Int64
	cacheMisses      atomic.Int64
}

type cachedRanking struct {
	titles     []string
	unresolved int
}

// Build loads movies and ratings from provider and builds an engine.
// Any load failure is returned; the caller must not serve without an engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Build(ctx context.Context, provider DataProvider, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if provider == nil {
		return nil, ErrNoProvider
	}

	movies, err := provider.LoadMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}
	ratings, err := provider.LoadRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}

	return NewEngine(ctx, cfg, logger, movies, ratings)
}

// NewEngine runs the build pipeline over in-memory records.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(ctx context.Context, cfg *Config, logger zerolog.Logger, movies []MovieRecord, ratings []RatingRecord) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}

	start := time.Now()

	phase := time.Now()
	e.matrix = BuildRatingMatrix(movies, ratings)
	e.build.MatrixDuration = time.Since(phase)

	phase = time.Now()
	sim, err := ComputeSimilarity(ctx, e.matrix, cfg.workerCount())
	if err != nil {
		return nil, err
	}
	e.similarity = sim
	e.build.SimilarityDuration = time.Since(phase)

	phase = time.Now()
	e.catalog = NewCatalogIndex(movies)
	e.build.CatalogDuration = time.Since(phase)

	e.ranker = NewRanker(e.similarity, e.catalog, cfg.TopN, cfg.SentinelScore)

	if cfg.Cache.Enabled {
		e.cache = expirable.NewLRU[string, cachedRanking](cfg.Cache.Size, nil, cfg.Cache.TTL)
	}

	items, users := e.matrix.Dims()
	e.build.Movies = len(movies)
	e.build.Titles = e.catalog.Len()
	e.build.Ratings = len(ratings)
	e.build.RatingsJoined = e.matrix.Joined()
	e.build.RatingsDropped = e.matrix.Dropped()
	e.build.DuplicatePairs = e.matrix.Duplicates()
	e.build.Items = items
	e.build.Users = users
	e.build.NonZero = e.matrix.NonZero()
	e.build.ZeroNormItems = e.similarity.ZeroNormItems()
	e.build.TotalDuration = time.Since(start)
	e.build.BuiltAt = time.Now()

	e.logger.Info().
		Int("movies", e.build.Movies).
		Int("titles", e.build.Titles).
		Int("ratings", e.build.Ratings).
		Int("ratings_dropped", e.build.RatingsDropped).
		Int("duplicate_pairs", e.build.DuplicatePairs).
		Int("items", items).
		Int("users", users).
		Int("nonzero", e.build.NonZero).
		Int("zero_norm_items", e.build.ZeroNormItems).
		Dur("matrix_duration", e.build.MatrixDuration).
		Dur("similarity_duration", e.build.SimilarityDuration).
		Dur("total_duration", e.build.TotalDuration).
		Msg("recommendation state built")

	return e, nil
}

// Recommend ranks recommendations for the selected titles.
// The selection is echoed back unchanged; an empty selection yields an
// empty recommendation list.
func (e *Engine) Recommend(ctx context.Context, selection []string) Result {
	e.requestCount.Add(1)

	result := Result{
		Selected:        append([]string{}, selection...),
		Recommendations: []string{},
	}
	if len(selection) == 0 {
		e.emptySelections.Add(1)
		return result
	}

	key := cacheKey(selection)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			e.cacheHits.Add(1)
			result.Recommendations = append(result.Recommendations, cached.titles...)
			result.Unresolved = cached.unresolved
			result.Cached = true
			return result
		}
		e.cacheMisses.Add(1)
	}

	ranking := e.ranker.Rank(selection)
	titles := make([]string, len(ranking.Items))
	for i, item := range ranking.Items {
		titles[i] = item.Title
	}

	if ranking.Unresolved > 0 {
		e.unresolvedTitles.Add(int64(ranking.Unresolved))
		e.logger.Debug().
			Ctx(ctx).
			Int("unresolved", ranking.Unresolved).
			Int("selected", len(selection)).
			Msg("skipped unknown titles")
	}

	if e.cache != nil {
		e.cache.Add(key, cachedRanking{titles: titles, unresolved: ranking.Unresolved})
	}

	result.Recommendations = append(result.Recommendations, titles...)
	result.Unresolved = ranking.Unresolved
	return result
}

// Explain returns the scored ranking for a selection, bypassing the cache.
func (e *Engine) Explain(selection []string) Ranking {
	return e.ranker.Rank(selection)
}

// cacheKey keys on the exact selection sequence. Floating point sums depend
// on addition order, so permutations are cached separately. Each title is
// length-prefixed so no title content can mimic a separator.
func cacheKey(selection []string) string {
	var b strings.Builder
	for _, title := range selection {
		b.WriteString(strconv.Itoa(len(title)))
		b.WriteByte(':')
		b.WriteString(title)
	}
	return b.String()
}

// Titles returns every known title, sorted and deduplicated.
func (e *Engine) Titles() []string {
	return e.catalog.Titles()
}

// Catalog returns the catalog index.
func (e *Engine) Catalog() *CatalogIndex {
	return e.catalog
}

// Matrix returns the rating matrix.
func (e *Engine) Matrix() *RatingMatrix {
	return e.matrix
}

// Similarity returns the similarity matrix.
func (e *Engine) Similarity() *SimilarityMatrix {
	return e.similarity
}

// BuildStats returns statistics about the startup build.
func (e *Engine) BuildStats() BuildStats {
	return e.build
}

// Stats returns a snapshot of request counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:        e.requestCount.Load(),
		EmptySelections: e.emptySelections.Load(),
		UnresolvedTitle: e.unresolvedTitles.Load(),
		CacheHits:       e.cacheHits.Load(),
		CacheMisses:     e.cacheMisses.Load(),
		Build:           e.build,
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}
