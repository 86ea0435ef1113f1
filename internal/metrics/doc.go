// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics provides Prometheus metrics collection for Reelmatch.

Collectors are registered with the default registry at package init via
promauto and exposed at /metrics by the api package.

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)

Source Metrics:
  - source_load_duration_seconds: Time to read a source (histogram)
    Labels: source (movies, ratings), kind (file, duckdb)
  - source_records_loaded_total / source_records_discarded_total (counters)
  - source_load_errors_total (counter)
  - duckdb_query_duration_seconds, duckdb_query_errors_total

Build Metrics:
  - recommend_build_phase_seconds: Duration of each startup phase (gauge)
    Labels: phase (matrix, similarity, catalog, total)
  - recommend_catalog_size: Sizes of the built state (gauge)
    Labels: dimension

Recommendation Metrics:
  - recommend_requests_total: Ranking requests (counter)
    Labels: outcome (ranked, empty_selection, cached)
  - recommend_duration_seconds: Ranking latency (histogram)
  - recommend_result_size: Titles returned per request (histogram)
  - recommend_unresolved_titles_total: Selected titles that matched nothing
  - recommend_cache_hits_total / recommend_cache_misses_total

# Usage

	metrics.RecordAPIRequest("GET", "/api/v1/titles", "200", duration)
	metrics.RecordRecommendation(result, duration)
*/
package metrics
