// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package main is the entry point for the Reelmatch server.
//
// Reelmatch loads a movie catalog and a table of user ratings once at
// startup, builds an item-item cosine similarity matrix, and serves top-N
// recommendations for a selection of movie titles over HTTP.
//
// # Startup
//
//  1. Configuration: defaults, config.yaml, then environment (koanf v2)
//  2. Source: CSV files or a DuckDB database (SOURCE_KIND)
//  3. Engine: rating matrix, similarity matrix and title index
//  4. Supervisor tree: HTTP server and the periodic stats reporter
//
// A source that cannot be read is fatal; the server never starts without
// a built engine.
//
// # Commands
//
//	reelmatch serve                      # default
//	reelmatch titles                     # print the catalog listing
//	reelmatch recommend -t "Alien" -t "Heat" [--scores] [--json]
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. In-flight requests get
// server.shutdown_timeout to complete.
package main
