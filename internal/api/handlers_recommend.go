// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/middleware"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// StatsResponse is the payload of GET /api/v1/stats.
type StatsResponse struct {
	Engine       recommend.Stats            `json:"engine"`
	Endpoints    []middleware.EndpointStats `json:"endpoints"`
	SearchTitles int                        `json:"search_titles"`
	UptimeSec    float64                    `json:"uptime_seconds"`
}

// Titles lists every known title, sorted and deduplicated.
func (h *Handler) Titles(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("Recommendation state is not built")
		return
	}
	titles := h.engine.Titles()
	rw.SuccessWithCount(titles, len(titles))
}

// SearchTitles returns titles starting with q, ignoring case.
func (h *Handler) SearchTitles(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.titles == nil {
		rw.ServiceUnavailable("Recommendation state is not built")
		return
	}

	req, verr, err := parseTitleSearchRequest(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	titles := h.titles.Complete(req.Query, req.Limit)
	rw.SuccessWithCount(titles, len(titles))
}

// Recommendations ranks recommendations for the submitted selection.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("Recommendation state is not built")
		return
	}

	req, verr, err := parseRecommendRequest(w, r)
	switch {
	case errors.Is(err, errUnsupportedMediaType):
		rw.Error(http.StatusUnsupportedMediaType, ErrCodeUnsupportedMedia, err.Error())
		return
	case errors.Is(err, errBodyTooLarge):
		rw.Error(http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, err.Error())
		return
	case err != nil:
		rw.BadRequest(err.Error())
		return
	case verr != nil:
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	result := h.recommend(r, req.SelectedMovies)
	rw.SuccessWithCount(result, len(result.Recommendations))
}

// Stats reports engine counters, build statistics and endpoint latencies.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("Recommendation state is not built")
		return
	}

	resp := StatsResponse{
		Engine:    h.engine.Stats(),
		Endpoints: []middleware.EndpointStats{},
		UptimeSec: time.Since(h.startTime).Seconds(),
	}
	if h.titles != nil {
		resp.SearchTitles = h.titles.Len()
	}
	if h.monitor != nil {
		resp.Endpoints = h.monitor.Stats()
	}
	rw.Success(resp)
}

// recommend runs one ranking and records its metrics.
func (h *Handler) recommend(r *http.Request, selection []string) recommend.Result {
	start := time.Now()
	result := h.engine.Recommend(r.Context(), selection)
	duration := time.Since(start)

	metrics.RecordRecommendation(result, duration)
	logging.Ctx(r.Context()).Debug().
		Int("selected", len(result.Selected)).
		Int("recommended", len(result.Recommendations)).
		Int("unresolved", result.Unresolved).
		Bool("cached", result.Cached).
		Dur("duration", duration).
		Msg("recommendations served")
	return result
}
