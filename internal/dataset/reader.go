// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Supported movie file encodings.
const (
	EncodingLatin1 = "latin-1"
	EncodingUTF8   = "utf-8"
)

// Rating file column names.
const (
	ColumnUserID  = "userId"
	ColumnMovieID = "movieId"
	ColumnRating  = "rating"
)

// ctxCheckInterval is how many rows are read between context checks.
const ctxCheckInterval = 4096

var (
	// ErrSourceUnavailable indicates a source file could not be opened.
	ErrSourceUnavailable = errors.New("dataset: source unavailable")

	// ErrMissingColumn indicates the rating header lacks a required column.
	ErrMissingColumn = errors.New("dataset: required column missing")

	// ErrUnsupportedEncoding indicates an unknown movie file encoding.
	ErrUnsupportedEncoding = errors.New("dataset: unsupported encoding")
)

// ReadStats counts the rows seen by a reader.
type ReadStats struct {
	Rows      int
	Kept      int
	Discarded int
}

// ReadMovies parses the pipe-delimited movie file.
func ReadMovies(ctx context.Context, r io.Reader, encoding string) ([]recommend.MovieRecord, ReadStats, error) {
	var stats ReadStats

	decoded, err := decode(r, encoding)
	if err != nil {
		return nil, stats, err
	}

	cr := csv.NewReader(bufio.NewReader(decoded))
	cr.Comma = '|'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	var movies []recommend.MovieRecord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read movies: %w", err)
		}

		stats.Rows++
		if stats.Rows%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}

		if len(rec) < 2 {
			stats.Discarded++
			continue
		}
		id, ok := ParseID(rec[0])
		if !ok {
			stats.Discarded++
			continue
		}
		movies = append(movies, recommend.MovieRecord{ID: id, Title: rec[1]})
		stats.Kept++
	}

	return movies, stats, nil
}

// ReadRatings parses the rating CSV file. The first row must be a header.
func ReadRatings(ctx context.Context, r io.Reader) ([]recommend.RatingRecord, ReadStats, error) {
	var stats ReadStats

	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, stats, fmt.Errorf("read ratings header: %w", ErrMissingColumn)
	}
	if err != nil {
		return nil, stats, fmt.Errorf("read ratings header: %w", err)
	}

	cols, err := ratingColumns(header)
	if err != nil {
		return nil, stats, err
	}

	var ratings []recommend.RatingRecord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read ratings: %w", err)
		}

		stats.Rows++
		if stats.Rows%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}

		if len(rec) <= cols.max {
			stats.Discarded++
			continue
		}
		movieID, ok := ParseID(rec[cols.movieID])
		if !ok {
			stats.Discarded++
			continue
		}
		userID, ok := ParseID(rec[cols.userID])
		if !ok {
			stats.Discarded++
			continue
		}
		rating, err := strconv.ParseFloat(strings.TrimSpace(rec[cols.rating]), 64)
		if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
			stats.Discarded++
			continue
		}

		ratings = append(ratings, recommend.RatingRecord{
			UserID:  userID,
			MovieID: movieID,
			Rating:  rating,
		})
		stats.Kept++
	}

	return ratings, stats, nil
}

type columnIndex struct {
	userID, movieID, rating int
	max                     int
}

func ratingColumns(header []string) (columnIndex, error) {
	idx := columnIndex{userID: -1, movieID: -1, rating: -1}
	for i, name := range header {
		// A UTF-8 byte order mark may precede the first column name.
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case ColumnUserID:
			idx.userID = i
		case ColumnMovieID:
			idx.movieID = i
		case ColumnRating:
			idx.rating = i
		}
	}

	var missing []string
	if idx.userID < 0 {
		missing = append(missing, ColumnUserID)
	}
	if idx.movieID < 0 {
		missing = append(missing, ColumnMovieID)
	}
	if idx.rating < 0 {
		missing = append(missing, ColumnRating)
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	idx.max = max(idx.userID, idx.movieID, idx.rating)
	return idx, nil
}

// ParseID coerces an id field to an integer. Integral floats such as "12.0"
// are accepted; anything else is rejected.
func ParseID(field string) (int, bool) {
	field = strings.TrimSpace(field)
	if id, err := strconv.Atoi(field); err == nil {
		return id, true
	}
	f, err := strconv.ParseFloat(field, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", EncodingLatin1, "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case EncodingUTF8, "utf8":
		return r, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}
}
