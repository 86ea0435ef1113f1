// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package dataset reads the movie and rating source files.
//
// The movie file is pipe-delimited without a header. Only the first two
// fields (movie id, title) are read; the remaining fields are ignored. It is
// decoded as Latin-1 unless configured as UTF-8.
//
// The rating file is a comma-separated file with a header row. Columns are
// located by name (userId, movieId, rating), so column order and extra
// columns do not matter.
//
// Rows that cannot be represented are discarded and counted:
//
//   - movie rows whose id is not an integer, or which have no title field
//   - rating rows whose movieId, userId or rating do not parse
//
// A missing or unreadable file is reported as ErrSourceUnavailable.
package dataset
