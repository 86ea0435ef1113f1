// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func similarityFixture(t *testing.T, workers int) *SimilarityMatrix {
	t.Helper()

	movies := []MovieRecord{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B"},
		{ID: 3, Title: "C"},
		{ID: 4, Title: "D"},
		{ID: 5, Title: "E"},
	}
	ratings := []RatingRecord{
		// A = (1, 0, 0), B = (1, 1, 0), C = (0, 0, 2), D = (3, 3, 0)
		{UserID: 1, MovieID: 1, Rating: 1},
		{UserID: 1, MovieID: 2, Rating: 1},
		{UserID: 2, MovieID: 2, Rating: 1},
		{UserID: 3, MovieID: 3, Rating: 2},
		{UserID: 1, MovieID: 4, Rating: 3},
		{UserID: 2, MovieID: 4, Rating: 3},
		// E only has an explicit zero rating
		{UserID: 3, MovieID: 5, Rating: 0},
	}

	s, err := ComputeSimilarity(context.Background(), BuildRatingMatrix(movies, ratings), workers)
	if err != nil {
		t.Fatalf("ComputeSimilarity() error = %v", err)
	}
	return s
}

func TestComputeSimilarity(t *testing.T) {
	for _, workers := range []int{1, 4} {
		s := similarityFixture(t, workers)

		t.Run("cosine values", func(t *testing.T) {
			tests := []struct {
				a, b int
				want float64
			}{
				{1, 2, 1 / math.Sqrt2},
				{2, 4, 1},
				{1, 3, 0},
				{3, 4, 0},
			}
			for _, tt := range tests {
				got, ok := s.Similarity(tt.a, tt.b)
				if !ok {
					t.Fatalf("Similarity(%d, %d) not indexed", tt.a, tt.b)
				}
				if math.Abs(got-tt.want) > epsilon {
					t.Errorf("Similarity(%d, %d) = %v, want %v (workers=%d)", tt.a, tt.b, got, tt.want, workers)
				}
			}
		})

		t.Run("diagonal is one for nonzero rows", func(t *testing.T) {
			for _, id := range []int{1, 2, 3, 4} {
				got, _ := s.Similarity(id, id)
				if got != 1.0 {
					t.Errorf("Similarity(%d, %d) = %v, want 1.0", id, id, got)
				}
			}
		})

		t.Run("zero rows are dissimilar to everything", func(t *testing.T) {
			for _, id := range s.Items() {
				got, _ := s.Similarity(5, id)
				if got != 0 {
					t.Errorf("Similarity(5, %d) = %v, want 0", id, got)
				}
			}
			if s.ZeroNormItems() != 1 {
				t.Errorf("ZeroNormItems() = %d, want 1", s.ZeroNormItems())
			}
		})

		t.Run("matrix is symmetric", func(t *testing.T) {
			for _, a := range s.Items() {
				for _, b := range s.Items() {
					ab, _ := s.Similarity(a, b)
					ba, _ := s.Similarity(b, a)
					if ab != ba {
						t.Errorf("Similarity(%d, %d) = %v, Similarity(%d, %d) = %v", a, b, ab, b, a, ba)
					}
				}
			}
		})
	}
}

func TestComputeSimilarity_Empty(t *testing.T) {
	s, err := ComputeSimilarity(context.Background(), BuildRatingMatrix(nil, nil), 2)
	if err != nil {
		t.Fatalf("ComputeSimilarity() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if _, ok := s.Similarity(1, 1); ok {
		t.Error("Similarity(1, 1) found on empty matrix")
	}
}

func TestComputeSimilarity_Canceled(t *testing.T) {
	movies := []MovieRecord{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}
	ratings := []RatingRecord{
		{UserID: 1, MovieID: 1, Rating: 4},
		{UserID: 1, MovieID: 2, Rating: 2},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ComputeSimilarity(ctx, BuildRatingMatrix(movies, ratings), 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ComputeSimilarity() error = %v, want context.Canceled", err)
	}
}
