// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/validation"
)

// MaxSelectedTitles bounds the per-request ranking work.
const MaxSelectedTitles = 100

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// SelectionField is the JSON key and form field carrying selected titles.
const SelectionField = "selected_movies"

// RecommendRequest is the body of POST /api/v1/recommendations. Entries are
// not checked for content: titles the catalog does not list are skipped by
// the ranker.
type RecommendRequest struct {
	SelectedMovies []string `json:"selected_movies" validate:"max=100"`
}

// MaxSearchResults caps GET /api/v1/titles/search.
const MaxSearchResults = 50

// TitleSearchRequest holds the query parameters of the title search.
type TitleSearchRequest struct {
	Query string `json:"q" validate:"title"`
	Limit int    `json:"limit" validate:"min=0,max=50"`
}

var (
	errUnsupportedMediaType = errors.New("unsupported content type")
	errBodyTooLarge         = errors.New("request body too large")
)

// parseRecommendRequest reads a JSON or form encoded selection, drops empty
// titles and validates the result.
func parseRecommendRequest(w http.ResponseWriter, r *http.Request) (*RecommendRequest, *validation.RequestValidationError, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req RecommendRequest
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil && r.Header.Get("Content-Type") != "" {
		return nil, nil, fmt.Errorf("%w: %v", errUnsupportedMediaType, err)
	}

	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, nil, errBodyTooLarge
			}
			return nil, nil, fmt.Errorf("invalid JSON body: %w", err)
		}
	case "application/x-www-form-urlencoded", "multipart/form-data", "":
		titles, err := formSelection(r)
		if err != nil {
			return nil, nil, err
		}
		req.SelectedMovies = titles
	default:
		return nil, nil, fmt.Errorf("%w: %s", errUnsupportedMediaType, mediaType)
	}

	req.SelectedMovies = dropEmpty(req.SelectedMovies)
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, verr, nil
	}
	return &req, nil, nil
}

// formSelection returns every selected_movies value in submission order.
func formSelection(r *http.Request) ([]string, error) {
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errBodyTooLarge
		}
		return nil, fmt.Errorf("invalid form body: %w", err)
	}
	return r.PostForm[SelectionField], nil
}

// dropEmpty removes empty titles and always returns a non-nil slice.
func dropEmpty(titles []string) []string {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseTitleSearchRequest reads q and limit from the query string.
func parseTitleSearchRequest(r *http.Request) (*TitleSearchRequest, *validation.RequestValidationError, error) {
	q := r.URL.Query()
	req := TitleSearchRequest{Query: q.Get("q")}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid limit %q", raw)
		}
		req.Limit = limit
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, verr, nil
	}
	return &req, nil, nil
}
