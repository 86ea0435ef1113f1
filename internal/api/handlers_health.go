// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"
)

// HealthLive reports that the process is running.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady reports whether the recommendation state is built.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("Recommendation state is not built")
		return
	}

	build := h.engine.Stats().Build
	rw.Success(map[string]interface{}{
		"ready":             true,
		"items":             build.Items,
		"users":             build.Users,
		"titles":            build.Titles,
		"built_at":          build.BuiltAt,
		"build_duration_ms": build.TotalDuration.Milliseconds(),
	})
}
