// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package database reads movie and rating records from a DuckDB database.

Source implements recommend.DataProvider. It is selected with
source.kind = duckdb and expects two tables:

	movies  (movieId, title, ...)
	ratings (userId, movieId, rating, ...)

Column types are not enforced. Ids are read as text and coerced with the same
rules as the CSV reader (integers, or integral floats within int32), ratings
are cast to DOUBLE, and rows that fail either conversion are discarded and
counted. Extra columns are ignored.

File databases are opened read-only. ":memory:" is accepted for tests.
Table names must be plain SQL identifiers; they are double-quoted in queries.
*/
package database
