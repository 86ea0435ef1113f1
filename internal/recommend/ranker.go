// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "sort"

// Ranker scores candidates for a selection of titles against fixed
// similarity and catalog state. It holds no mutable state.
type Ranker struct {
	similarity *SimilarityMatrix
	catalog    *CatalogIndex
	topN       int
	sentinel   float64
}

// Ranking is the scored output of a single ranking call.
type Ranking struct {
	// Items holds at most TopN candidates in ranked order.
	Items []ScoredItem

	// Unresolved counts selection entries that matched no indexed movie.
	Unresolved int
}

// NewRanker creates a ranker returning at most topN items. Selected items
// are assigned the sentinel score.
func NewRanker(similarity *SimilarityMatrix, catalog *CatalogIndex, topN int, sentinel float64) *Ranker {
	return &Ranker{
		similarity: similarity,
		catalog:    catalog,
		topN:       topN,
		sentinel:   sentinel,
	}
}

// Rank aggregates the similarity rows of the selected titles and returns the
// highest scoring items.
//
// Each occurrence of a title adds its row again. Titles that are unknown, or
// whose movie has no ratings, contribute nothing. Ties are broken by
// ascending movie id. Ranking stops at the first item whose score is at or
// below the sentinel.
func (r *Ranker) Rank(selection []string) Ranking {
	if len(selection) == 0 {
		return Ranking{Items: []ScoredItem{}}
	}

	n := r.similarity.Len()
	scores := make([]float64, n)
	selected := make([]int, 0, len(selection))
	unresolved := 0

	for _, title := range selection {
		movieID, ok := r.catalog.Lookup(title)
		if !ok {
			unresolved++
			continue
		}
		idx, ok := r.similarity.Index(movieID)
		if !ok {
			unresolved++
			continue
		}
		r.similarity.addRow(scores, idx)
		selected = append(selected, idx)
	}

	for _, idx := range selected {
		scores[idx] = r.sentinel
	}

	// Row positions follow ascending movie id, so comparing positions
	// breaks ties by movie id.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		sa, sb := scores[order[a]], scores[order[b]]
		if sa != sb {
			return sa > sb
		}
		return order[a] < order[b]
	})

	items := make([]ScoredItem, 0, min(n, r.topN))
	for _, idx := range order {
		if len(items) == r.topN || scores[idx] <= r.sentinel {
			break
		}
		movieID := r.similarity.items[idx]
		title, ok := r.catalog.Title(movieID)
		if !ok {
			continue
		}
		items = append(items, ScoredItem{
			MovieID: movieID,
			Title:   title,
			Score:   scores[idx],
		})
	}

	return Ranking{Items: items, Unresolved: unresolved}
}

// Recommend returns the ranked titles for a selection.
func (r *Ranker) Recommend(selection []string) []string {
	ranking := r.Rank(selection)
	titles := make([]string, len(ranking.Items))
	for i, item := range ranking.Items {
		titles[i] = item.Title
	}
	return titles
}
