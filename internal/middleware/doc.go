// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package middleware provides HTTP middleware for the Reelmatch API.
//
// All middleware has the chi signature func(http.Handler) http.Handler:
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID)
//	r.Use(middleware.PrometheusMetrics)
//	r.Use(monitor.Middleware)
//
// RequestID honors an upstream X-Request-ID header and otherwise generates a
// UUID. PrometheusMetrics labels requests by chi route pattern so path
// parameters do not inflate metric cardinality. PerformanceMonitor keeps a
// sliding window of request latencies for the stats endpoint.
package middleware
