// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SimilarityMatrix is the symmetric item x item cosine similarity matrix.
// It is indexed by the same movie ids as the RatingMatrix it was built from.
type SimilarityMatrix struct {
	items    []int
	index    map[int]int
	values   *mat.SymDense // nil when there are no items
	zeroNorm int
}

// ComputeSimilarity computes pairwise cosine similarity between the rows of m.
//
// Each unordered pair is computed once from the nonzero entries of both rows
// and stored symmetrically. Rows with a zero norm have similarity 0.0 with
// every item, including themselves; every other row has similarity 1.0 with
// itself. Rows are distributed over at most workers goroutines.
func ComputeSimilarity(ctx context.Context, m *RatingMatrix, workers int) (*SimilarityMatrix, error) {
	n := len(m.items)
	s := &SimilarityMatrix{
		items: m.Items(),
		index: positions(m.items),
	}
	if n == 0 {
		return s, nil
	}
	if workers < 1 {
		workers = 1
	}

	norms := make([]float64, n)
	for i, row := range m.rows {
		norms[i] = floats.Norm(row.vals, 2)
		if norms[i] == 0 {
			s.zeroNorm++
		}
	}

	values := mat.NewSymDense(n, nil)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if norms[i] == 0 {
				return nil
			}
			values.SetSym(i, i, 1.0)
			for j := i + 1; j < n; j++ {
				if norms[j] == 0 {
					continue
				}
				dot := sparseDot(m.rows[i], m.rows[j])
				if dot == 0 {
					continue
				}
				values.SetSym(i, j, dot/(norms[i]*norms[j]))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute similarity: %w", err)
	}

	s.values = values
	return s, nil
}

// sparseDot returns the dot product of two rows over their shared columns.
func sparseDot(a, b sparseRow) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.cols) && j < len(b.cols) {
		switch {
		case a.cols[i] == b.cols[j]:
			sum += a.vals[i] * b.vals[j]
			i++
			j++
		case a.cols[i] < b.cols[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Len returns the number of indexed items.
func (s *SimilarityMatrix) Len() int {
	return len(s.items)
}

// Items returns the indexed movie ids in ascending order.
func (s *SimilarityMatrix) Items() []int {
	return append([]int(nil), s.items...)
}

// ZeroNormItems returns the number of items whose rating row is all zero.
func (s *SimilarityMatrix) ZeroNormItems() int {
	return s.zeroNorm
}

// Index returns the row position of a movie id.
func (s *SimilarityMatrix) Index(movieID int) (int, bool) {
	i, ok := s.index[movieID]
	return i, ok
}

// Similarity returns the similarity between two movies.
// ok is false when either movie is not indexed.
func (s *SimilarityMatrix) Similarity(a, b int) (sim float64, ok bool) {
	i, ok := s.index[a]
	if !ok {
		return 0, false
	}
	j, ok := s.index[b]
	if !ok {
		return 0, false
	}
	return s.values.At(i, j), true
}

// addRow adds row i element-wise into dst. len(dst) must equal Len().
func (s *SimilarityMatrix) addRow(dst []float64, i int) {
	for j := range dst {
		dst[j] += s.values.At(i, j)
	}
}
