// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// countingService runs until canceled, failing the first failFirst starts.
type countingService struct {
	name      string
	failFirst int32
	starts    atomic.Int32
}

func (s *countingService) Serve(ctx context.Context) error {
	if n := s.starts.Add(1); n <= s.failFirst {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *countingService) String() string { return s.name }

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewSupervisorTreeDefaults(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.Root() == nil {
		t.Fatal("Root() = nil")
	}
	if tree.config != DefaultTreeConfig() {
		t.Errorf("config = %+v, want %+v", tree.config, DefaultTreeConfig())
	}

	custom, _ := NewSupervisorTree(quietLogger(), TreeConfig{FailureBackoff: time.Second})
	if custom.config.FailureBackoff != time.Second || custom.config.FailureThreshold != 5 {
		t.Errorf("config = %+v, want backoff 1s and default threshold", custom.config)
	}
}

func TestSupervisorTreeLifecycle(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureBackoff:  50 * time.Millisecond,
		ShutdownTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}

	source := &countingService{name: "source"}
	api := &countingService{name: "api"}
	tree.AddSourceService(source)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	waitFor(t, "both layers to start", func() bool {
		return source.starts.Load() == 1 && api.starts.Load() == 1
	})
	cancel()

	select {
	case <-errCh:
	case <-time.After(3 * time.Second):
		t.Fatal("tree did not stop")
	}
	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) != 0 {
		t.Errorf("unstopped services = %v", unstopped)
	}
}

func TestSupervisorTreeRestartsFailedService(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	flaky := &countingService{name: "flaky", failFirst: 2}
	steady := &countingService{name: "steady"}
	tree.AddSourceService(flaky)
	tree.AddAPIService(steady)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	waitFor(t, "flaky service to be restarted", func() bool { return flaky.starts.Load() >= 3 })
	if steady.starts.Load() != 1 {
		t.Errorf("steady service starts = %d, want 1 (isolated from the other layer)", steady.starts.Load())
	}

	cancel()
	<-errCh
}
