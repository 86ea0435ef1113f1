// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config loads Reelmatch configuration with koanf v2.

# Sources

Configuration is layered, later sources overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, then config.yaml, config.yml,
    /etc/reelmatch/config.yaml
 3. Environment variables listed in envMappings

The serve command applies its command-line flags on top of the result.

# Environment Variables

Source:
  - SOURCE_KIND: file or duckdb (default: file)
  - MOVIES_PATH: pipe-delimited movie file (default: movies_100k.csv)
  - RATINGS_PATH: comma-delimited rating file (default: ratings_100k.csv)
  - MOVIES_ENCODING: latin-1 or utf-8 (default: latin-1)
  - DUCKDB_PATH: DuckDB database file, required for SOURCE_KIND=duckdb
  - MOVIES_TABLE, RATINGS_TABLE: DuckDB table names (default: movies, ratings)

Recommendation:
  - RECOMMEND_TOP_N (default: 5)
  - RECOMMEND_WORKERS: similarity goroutines, 0 for one per CPU
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_SIZE, RECOMMEND_CACHE_TTL

Server:
  - HTTP_HOST (default: 0.0.0.0), HTTP_PORT (default: 5000)
  - HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT

Security:
  - CORS_ORIGINS: comma-separated origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Load validates struct tags through the validation package, then checks
cross-field rules such as the paths each source kind requires. The returned
Config is not modified afterwards and is safe for concurrent reads.
*/
package config
