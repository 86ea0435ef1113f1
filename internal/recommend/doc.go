// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend implements item-based collaborative filtering over a
// static movie catalog.
//
// # Architecture
//
// State is built once at startup by a fixed pipeline and is read-only
// afterwards:
//
//   - BuildRatingMatrix joins ratings to movies and pivots them into an
//     item x user matrix (missing ratings are stored as 0.0).
//   - ComputeSimilarity produces the symmetric item x item cosine
//     similarity matrix, processing rows in parallel.
//   - NewCatalogIndex maps titles to movie ids and back.
//
// A Ranker aggregates similarity rows for a selection of titles and returns
// the top N unselected items. The Engine owns the three immutable structures
// and adds response caching and request statistics on top.
//
// # Usage
//
//	engine, err := recommend.Build(ctx, provider, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	result := engine.Recommend(ctx, []string{"Toy Story (1995)"})
//
// # Ranking Rules
//
//   - An empty selection yields an empty result.
//   - Unknown titles are skipped without error.
//   - Duplicate titles add their similarity row once per occurrence.
//   - Selected items receive the sentinel score (-1.0 by default). The ranked
//     list ends at the first entry scoring at or below the sentinel.
//   - Equal scores are ordered by ascending movie id.
//
// # Thread Safety
//
// RatingMatrix, SimilarityMatrix, CatalogIndex and Ranker are immutable after
// construction and may be shared between goroutines without locking. Engine
// is safe for concurrent use.
package recommend
