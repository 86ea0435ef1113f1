// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which requests are
// logged at warn level.
const DefaultSlowRequestThreshold = time.Second

// RequestSample is one observed request.
type RequestSample struct {
	Endpoint   string
	Method     string
	Duration   time.Duration
	StatusCode int
}

// EndpointStats aggregates the samples of one method and route.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int     `json:"request_count"`
	ErrorCount   int     `json:"error_count"`
	AvgMS        float64 `json:"avg_ms"`
	P50MS        float64 `json:"p50_ms"`
	P95MS        float64 `json:"p95_ms"`
	P99MS        float64 `json:"p99_ms"`
	MaxMS        float64 `json:"max_ms"`
}

// PerformanceMonitor keeps a sliding window of recent requests.
type PerformanceMonitor struct {
	mu            sync.RWMutex
	samples       []RequestSample
	next          int
	full          bool
	slowThreshold time.Duration
}

// NewPerformanceMonitor creates a monitor holding up to window samples.
func NewPerformanceMonitor(window int, slowThreshold time.Duration) *PerformanceMonitor {
	if window < 1 {
		window = 1
	}
	return &PerformanceMonitor{
		samples:       make([]RequestSample, window),
		slowThreshold: slowThreshold,
	}
}

// Record adds a sample, overwriting the oldest once the window is full.
func (pm *PerformanceMonitor) Record(s RequestSample) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.samples[pm.next] = s
	pm.next++
	if pm.next == len(pm.samples) {
		pm.next = 0
		pm.full = true
	}
}

// Stats returns per-endpoint statistics, busiest first.
func (pm *PerformanceMonitor) Stats() []EndpointStats {
	pm.mu.RLock()
	n := pm.next
	if pm.full {
		n = len(pm.samples)
	}
	byEndpoint := make(map[string][]RequestSample)
	for _, s := range pm.samples[:n] {
		key := s.Method + " " + s.Endpoint
		byEndpoint[key] = append(byEndpoint[key], s)
	}
	pm.mu.RUnlock()

	stats := make([]EndpointStats, 0, len(byEndpoint))
	for endpoint, samples := range byEndpoint {
		durations := make([]float64, len(samples))
		var sum float64
		errorCount := 0
		for i, s := range samples {
			durations[i] = float64(s.Duration.Microseconds()) / 1000
			sum += durations[i]
			if s.StatusCode >= http.StatusInternalServerError {
				errorCount++
			}
		}
		sort.Float64s(durations)

		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: len(samples),
			ErrorCount:   errorCount,
			AvgMS:        sum / float64(len(samples)),
			P50MS:        percentile(durations, 0.50),
			P95MS:        percentile(durations, 0.95),
			P99MS:        percentile(durations, 0.99),
			MaxMS:        durations[len(durations)-1],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Endpoint < stats[j].Endpoint
	})
	return stats
}

// Middleware records every request and logs slow ones.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := newStatusRecorder(w)

		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)
		endpoint := routePattern(r)
		pm.Record(RequestSample{
			Endpoint:   endpoint,
			Method:     r.Method,
			Duration:   duration,
			StatusCode: wrapper.statusCode,
		})

		if pm.slowThreshold > 0 && duration > pm.slowThreshold {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("endpoint", endpoint).
				Dur("duration", duration).
				Msg("slow request")
		}
	})
}

// percentile returns the nearest-rank value from sorted.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}
