// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// mockService fails the first failFirst calls to Serve, then blocks until
// its context is canceled.
type mockService struct {
	name      string
	failFirst int32
	starts    atomic.Int32
	stops     atomic.Int32
}

func newMockService(name string) *mockService {
	return &mockService{name: name}
}

func (m *mockService) Serve(ctx context.Context) error {
	n := m.starts.Add(1)
	defer m.stops.Add(1)

	if n <= m.failFirst {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) String() string {
	return m.name
}

// serveAsync runs tree.Serve in a goroutine and delivers its result.
func serveAsync(ctx context.Context, tree *SupervisorTree) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- tree.Serve(ctx) }()
	return errCh
}
