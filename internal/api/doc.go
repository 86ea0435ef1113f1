// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api serves the Reelmatch HTTP interface on a chi router.

# Endpoints

JSON (standard envelope, see APIResponse):
  - GET  /api/v1/health/live       process is up
  - GET  /api/v1/health/ready      recommendation state is built
  - GET  /api/v1/titles            sorted, deduplicated catalog titles
  - GET  /api/v1/titles/search     case-insensitive prefix match (?q=&limit=)
  - POST /api/v1/recommendations   rank recommendations for a selection
  - GET  /api/v1/stats             engine counters, build and latency stats

HTML:
  - GET  /            selection form listing every title
  - POST /recommend   result page for the submitted selection

Operations:
  - GET  /metrics     Prometheus exposition

POST /api/v1/recommendations accepts either a JSON body

	{"selected_movies": ["Toy Story (1995)", "Heat (1995)"]}

or form data with a repeated selected_movies field. Empty titles are dropped
before ranking; order and duplicates are preserved.

# Middleware

Global: request ID, real IP, panic recovery, CORS, Prometheus metrics,
latency monitor, gzip compression. API routes add rate limiting (httprate)
and security headers.
*/
package api
