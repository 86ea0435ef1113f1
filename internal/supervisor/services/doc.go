// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package services provides suture.Service wrappers for Reelmatch's
// long-lived components.
//
// Each wrapper implements Serve(ctx) error and String() string. Serve blocks
// until ctx is canceled and returns ctx.Err() on a clean stop; any other
// error tells the supervisor to restart the service.
package services
