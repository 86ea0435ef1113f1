// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/reelmatch/internal/middleware"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/search"
)

// Recommender is the engine surface the handlers need.
// *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, selection []string) recommend.Result
	Titles() []string
	Stats() recommend.Stats
}

// Handler serves the HTTP endpoints.
type Handler struct {
	engine    Recommender
	monitor   *middleware.PerformanceMonitor
	titles    *search.TitleIndex
	pages     *pageRenderer
	startTime time.Time
}

// NewHandler creates a handler. engine may be nil, in which case readiness
// fails and engine-backed endpoints answer 503. monitor may be nil.
func NewHandler(engine Recommender, monitor *middleware.PerformanceMonitor) *Handler {
	h := &Handler{
		engine:    engine,
		monitor:   monitor,
		pages:     newPageRenderer(),
		startTime: time.Now(),
	}
	if engine != nil {
		h.titles = search.NewTitleIndex(engine.Titles(), MaxSearchResults)
	}
	return h
}
