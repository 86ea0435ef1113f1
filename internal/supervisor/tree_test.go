// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.root == nil {
		t.Fatal("root supervisor = nil")
	}

	want := DefaultTreeConfig()
	if tree.config != want {
		t.Errorf("config = %+v, want %+v", tree.config, want)
	}
}

func TestNewSupervisorTree_KeepsExplicitValues(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 2,
		FailureBackoff:   time.Second,
	})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.config.FailureThreshold != 2 {
		t.Errorf("FailureThreshold = %v, want 2", tree.config.FailureThreshold)
	}
	if tree.config.FailureBackoff != time.Second {
		t.Errorf("FailureBackoff = %v, want 1s", tree.config.FailureBackoff)
	}
	if tree.config.FailureDecay != 30 {
		t.Errorf("FailureDecay = %v, want 30", tree.config.FailureDecay)
	}
}

func TestSupervisorTree_StartsBothLayers(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})

	engineSvc := newMockService("stats-reporter")
	apiSvc := newMockService("http-server")
	tree.AddEngineService(engineSvc)
	tree.AddAPIService(apiSvc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := serveAsync(ctx, tree)

	waitFor(t, func() bool { return engineSvc.starts.Load() > 0 && apiSvc.starts.Load() > 0 })
	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop after cancel")
	}

	if engineSvc.stops.Load() == 0 || apiSvc.stops.Load() == 0 {
		t.Error("services were not stopped on shutdown")
	}

	report, err := tree.UnstoppedServiceReport()
	if err == nil && len(report) != 0 {
		t.Errorf("unstopped services = %v, want none", report)
	}
}

func TestSupervisorTree_RestartsFailingService(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	flaky := newMockService("flaky")
	flaky.failFirst = 2
	stable := newMockService("stable")
	tree.AddAPIService(flaky)
	tree.AddEngineService(stable)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	errCh := serveAsync(ctx, tree)

	waitFor(t, func() bool { return flaky.starts.Load() >= 3 })
	if got := stable.starts.Load(); got != 1 {
		t.Errorf("stable starts = %d, want 1", got)
	}

	cancel()
	<-errCh
}

func TestSupervisorTree_Serve(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})
	tree.AddAPIService(newMockService("http-server"))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v", err)
	}
}
