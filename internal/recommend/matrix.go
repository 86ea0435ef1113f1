// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// RatingMatrix is the item x user rating matrix.
//
// Rows are the distinct movie ids that received at least one joined rating,
// in ascending order. Columns are the distinct user ids, in ascending order.
// Every cell is stored; a missing rating is 0.0. The matrix also keeps a
// compressed view of each row holding only its nonzero entries, which the
// similarity computation iterates.
type RatingMatrix struct {
	items     []int
	users     []int
	itemIndex map[int]int
	userIndex map[int]int

	// values is nil when the matrix has no rows.
	values *mat.Dense
	rows   []sparseRow

	nonZero    int
	joined     int
	dropped    int
	duplicates int
}

// sparseRow holds the nonzero entries of one matrix row.
// cols is strictly ascending.
type sparseRow struct {
	cols []int
	vals []float64
}

type cellKey struct {
	movieID int
	userID  int
}

// BuildRatingMatrix joins ratings to movies on movie id and pivots the result.
//
// Ratings whose movie id is not in movies are dropped, as are NaN and
// infinite ratings. When the same (movie, user) pair occurs more than once
// the last rating wins. An empty rating stream produces an empty matrix.
func BuildRatingMatrix(movies []MovieRecord, ratings []RatingRecord) *RatingMatrix {
	known := make(map[int]struct{}, len(movies))
	for _, m := range movies {
		known[m.ID] = struct{}{}
	}

	m := &RatingMatrix{}
	cells := make(map[cellKey]float64, len(ratings))
	itemSet := make(map[int]struct{})
	userSet := make(map[int]struct{})

	for _, r := range ratings {
		if math.IsNaN(r.Rating) || math.IsInf(r.Rating, 0) {
			m.dropped++
			continue
		}
		if _, ok := known[r.MovieID]; !ok {
			m.dropped++
			continue
		}
		m.joined++

		key := cellKey{movieID: r.MovieID, userID: r.UserID}
		if _, seen := cells[key]; seen {
			m.duplicates++
		}
		cells[key] = r.Rating
		itemSet[r.MovieID] = struct{}{}
		userSet[r.UserID] = struct{}{}
	}

	m.items = sortedKeys(itemSet)
	m.users = sortedKeys(userSet)
	m.itemIndex = positions(m.items)
	m.userIndex = positions(m.users)

	if len(m.items) == 0 {
		return m
	}

	m.values = mat.NewDense(len(m.items), len(m.users), nil)
	for key, rating := range cells {
		m.values.Set(m.itemIndex[key.movieID], m.userIndex[key.userID], rating)
	}

	m.rows = make([]sparseRow, len(m.items))
	for i := range m.items {
		var row sparseRow
		for j, v := range m.values.RawRowView(i) {
			if v != 0 {
				row.cols = append(row.cols, j)
				row.vals = append(row.vals, v)
			}
		}
		m.rows[i] = row
		m.nonZero += len(row.cols)
	}

	return m
}

// Items returns the row movie ids in ascending order.
func (m *RatingMatrix) Items() []int {
	return append([]int(nil), m.items...)
}

// Users returns the column user ids in ascending order.
func (m *RatingMatrix) Users() []int {
	return append([]int(nil), m.users...)
}

// Dims returns the number of rows (items) and columns (users).
func (m *RatingMatrix) Dims() (items, users int) {
	return len(m.items), len(m.users)
}

// NonZero returns the number of nonzero cells.
func (m *RatingMatrix) NonZero() int {
	return m.nonZero
}

// Joined returns the number of ratings that matched a movie.
func (m *RatingMatrix) Joined() int {
	return m.joined
}

// Dropped returns the number of ratings with no matching movie or a
// non-finite value.
func (m *RatingMatrix) Dropped() int {
	return m.dropped
}

// Duplicates returns the number of ratings that overwrote an earlier
// rating for the same movie and user.
func (m *RatingMatrix) Duplicates() int {
	return m.duplicates
}

// Value returns the stored rating for a movie and user.
// ok is false when either id is not part of the matrix.
func (m *RatingMatrix) Value(movieID, userID int) (rating float64, ok bool) {
	i, ok := m.itemIndex[movieID]
	if !ok {
		return 0, false
	}
	j, ok := m.userIndex[userID]
	if !ok {
		return 0, false
	}
	return m.values.At(i, j), true
}

// Row returns a copy of the full rating row for a movie, one entry per user.
func (m *RatingMatrix) Row(movieID int) ([]float64, bool) {
	i, ok := m.itemIndex[movieID]
	if !ok {
		return nil, false
	}
	return mat.Row(nil, i, m.values), true
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func positions(ids []int) map[int]int {
	idx := make(map[int]int, len(ids))
	for i, id := range ids {
		idx[id] = i
	}
	return idx
}
