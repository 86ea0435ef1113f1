// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

func TestReadMovies(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		encoding      string
		want          []recommend.MovieRecord
		wantDiscarded int
	}{
		{
			name:  "reads first two fields only",
			input: "1|Toy Story (1995)|01-Jan-1995||http://example.com|0|0|1\n2|GoldenEye (1995)|01-Jan-1995\n",
			want: []recommend.MovieRecord{
				{ID: 1, Title: "Toy Story (1995)"},
				{ID: 2, Title: "GoldenEye (1995)"},
			},
		},
		{
			name:  "discards non numeric ids",
			input: "abc|Broken\n3|Four Rooms (1995)\n|Empty id\n",
			want: []recommend.MovieRecord{
				{ID: 3, Title: "Four Rooms (1995)"},
			},
			wantDiscarded: 2,
		},
		{
			name:  "accepts integral float ids",
			input: "4.0|Get Shorty (1995)\n4.5|Half\n",
			want: []recommend.MovieRecord{
				{ID: 4, Title: "Get Shorty (1995)"},
			},
			wantDiscarded: 1,
		},
		{
			name:          "discards rows without a title field",
			input:         "5\n",
			want:          nil,
			wantDiscarded: 1,
		},
		{
			name:     "utf-8 passthrough",
			input:    "6|Amélie (2001)\n",
			encoding: EncodingUTF8,
			want: []recommend.MovieRecord{
				{ID: 6, Title: "Amélie (2001)"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, stats, err := ReadMovies(context.Background(), strings.NewReader(tt.input), tt.encoding)
			if err != nil {
				t.Fatalf("ReadMovies() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadMovies() = %+v, want %+v", got, tt.want)
			}
			if stats.Discarded != tt.wantDiscarded {
				t.Errorf("Discarded = %d, want %d", stats.Discarded, tt.wantDiscarded)
			}
		})
	}
}

func TestReadMovies_Latin1(t *testing.T) {
	// "Misérables" with é encoded as the single Latin-1 byte 0xE9.
	input := []byte("7|Mis\xe9rables, Les (1995)\n")

	got, _, err := ReadMovies(context.Background(), bytes.NewReader(input), EncodingLatin1)
	if err != nil {
		t.Fatalf("ReadMovies() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "Misérables, Les (1995)" {
		t.Errorf("ReadMovies() = %+v, want decoded title", got)
	}
}

func TestReadMovies_UnsupportedEncoding(t *testing.T) {
	_, _, err := ReadMovies(context.Background(), strings.NewReader("1|A\n"), "ebcdic")
	if !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("ReadMovies() error = %v, want ErrUnsupportedEncoding", err)
	}
}

func TestReadRatings(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		want          []recommend.RatingRecord
		wantDiscarded int
	}{
		{
			name:  "standard header",
			input: "userId,movieId,rating,timestamp\n1,31,2.5,1260759144\n1,1029,3.0,1260759179\n",
			want: []recommend.RatingRecord{
				{UserID: 1, MovieID: 31, Rating: 2.5},
				{UserID: 1, MovieID: 1029, Rating: 3.0},
			},
		},
		{
			name:  "columns located by name",
			input: "timestamp,rating,movieId,userId\n0,4,10,2\n",
			want: []recommend.RatingRecord{
				{UserID: 2, MovieID: 10, Rating: 4},
			},
		},
		{
			name:  "non numeric movie ids are discarded",
			input: "userId,movieId,rating\n1,tt0114709,4\n1,2,5\n",
			want: []recommend.RatingRecord{
				{UserID: 1, MovieID: 2, Rating: 5},
			},
			wantDiscarded: 1,
		},
		{
			name:          "unparseable user or rating is discarded",
			input:         "userId,movieId,rating\nx,1,4\n1,1,\n1,1,NaN\n",
			want:          nil,
			wantDiscarded: 3,
		},
		{
			name:          "short rows are discarded",
			input:         "userId,movieId,rating\n1,2\n",
			want:          nil,
			wantDiscarded: 1,
		},
		{
			name:  "byte order mark before header",
			input: "\ufeffuserId,movieId,rating\n3,4,1.5\n",
			want: []recommend.RatingRecord{
				{UserID: 3, MovieID: 4, Rating: 1.5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, stats, err := ReadRatings(context.Background(), strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadRatings() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadRatings() = %+v, want %+v", got, tt.want)
			}
			if stats.Discarded != tt.wantDiscarded {
				t.Errorf("Discarded = %d, want %d", stats.Discarded, tt.wantDiscarded)
			}
		})
	}
}

func TestReadRatings_HeaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"missing rating column", "userId,movieId\n1,2\n"},
		{"no header names", "1,2,3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadRatings(context.Background(), strings.NewReader(tt.input))
			if !errors.Is(err, ErrMissingColumn) {
				t.Errorf("ReadRatings() error = %v, want ErrMissingColumn", err)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"42", 42, true},
		{" 7 ", 7, true},
		{"12.0", 12, true},
		{"-3", -3, true},
		{"1.5", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"1e20", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseID(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseID(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
