// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Source Metrics
	SourceLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "source_load_duration_seconds",
			Help:    "Time spent reading a data source",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"source", "kind"},
	)

	SourceRecordsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_records_loaded_total",
			Help: "Total number of source records accepted",
		},
		[]string{"source", "kind"},
	)

	SourceRecordsDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_records_discarded_total",
			Help: "Total number of source records discarded as malformed",
		},
		[]string{"source", "kind"},
	)

	SourceLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_load_errors_total",
			Help: "Total number of failed source loads",
		},
		[]string{"source", "kind"},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// Build Metrics
	BuildPhaseDuration = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recommend_build_phase_seconds",
			Help: "Duration of the last startup build phase in seconds",
		},
		[]string{"phase"},
	)

	CatalogSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recommend_catalog_size",
			Help: "Sizes of the built recommendation state",
		},
		[]string{"dimension"},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"outcome"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent ranking a selection",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	RecommendResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_result_size",
			Help:    "Number of titles returned per recommendation request",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)

	RecommendUnresolvedTitles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_unresolved_titles_total",
			Help: "Total number of selected titles that matched no indexed movie",
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSourceLoad records one source read. source is "movies" or
// "ratings"; kind is "file" or "duckdb".
func RecordSourceLoad(source, kind string, duration time.Duration, loaded, discarded int, err error) {
	SourceLoadDuration.WithLabelValues(source, kind).Observe(duration.Seconds())
	if err != nil {
		SourceLoadErrors.WithLabelValues(source, kind).Inc()
		return
	}
	SourceRecordsLoaded.WithLabelValues(source, kind).Add(float64(loaded))
	SourceRecordsDiscarded.WithLabelValues(source, kind).Add(float64(discarded))
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordBuild publishes the startup build statistics.
func RecordBuild(stats recommend.BuildStats) {
	BuildPhaseDuration.WithLabelValues("matrix").Set(stats.MatrixDuration.Seconds())
	BuildPhaseDuration.WithLabelValues("similarity").Set(stats.SimilarityDuration.Seconds())
	BuildPhaseDuration.WithLabelValues("catalog").Set(stats.CatalogDuration.Seconds())
	BuildPhaseDuration.WithLabelValues("total").Set(stats.TotalDuration.Seconds())

	CatalogSize.WithLabelValues("movies").Set(float64(stats.Movies))
	CatalogSize.WithLabelValues("titles").Set(float64(stats.Titles))
	CatalogSize.WithLabelValues("items").Set(float64(stats.Items))
	CatalogSize.WithLabelValues("users").Set(float64(stats.Users))
	CatalogSize.WithLabelValues("nonzero_ratings").Set(float64(stats.NonZero))
	CatalogSize.WithLabelValues("ratings_dropped").Set(float64(stats.RatingsDropped))
	CatalogSize.WithLabelValues("duplicate_pairs").Set(float64(stats.DuplicatePairs))
	CatalogSize.WithLabelValues("zero_norm_items").Set(float64(stats.ZeroNormItems))
}

// RecordRecommendation records the outcome of a ranking request.
func RecordRecommendation(result recommend.Result, duration time.Duration) {
	RecommendDuration.Observe(duration.Seconds())
	RecommendResultSize.Observe(float64(len(result.Recommendations)))

	switch {
	case len(result.Selected) == 0:
		RecommendRequests.WithLabelValues("empty_selection").Inc()
		return
	case result.Cached:
		RecommendRequests.WithLabelValues("cached").Inc()
		RecommendCacheHits.Inc()
	default:
		RecommendRequests.WithLabelValues("ranked").Inc()
		RecommendCacheMisses.Inc()
	}

	if result.Unresolved > 0 {
		RecommendUnresolvedTitles.Add(float64(result.Unresolved))
	}
}
