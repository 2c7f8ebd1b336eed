// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/stylehive/internal/logging"
)

// Compile-time interface checks.
var (
	_ suture.Service = (*HTTPServerService)(nil)
	_ suture.Service = (*ReloadService)(nil)
	_ HTTPServer     = (*http.Server)(nil)
)

// fakeHTTPServer blocks in ListenAndServe until Shutdown, or fails at once
// when listenErr is set.
type fakeHTTPServer struct {
	listenErr   error
	shutdownErr error
	started     chan struct{}
	stopped     chan struct{}
	stopOnce    sync.Once
	shutdowns   atomic.Int32
}

func newFakeHTTPServer() *fakeHTTPServer {
	return &fakeHTTPServer{
		started: make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stopped
	return http.ErrServerClosed
}

func (f *fakeHTTPServer) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	f.stopOnce.Do(func() { close(f.stopped) })
	return f.shutdownErr
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	t.Parallel()

	server := newFakeHTTPServer()
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	<-server.started
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
	if got := server.shutdowns.Load(); got != 1 {
		t.Errorf("Shutdown called %d times, want 1", got)
	}
}

func TestHTTPServerService_ListenError(t *testing.T) {
	t.Parallel()

	server := newFakeHTTPServer()
	server.listenErr = errors.New("address already in use")
	svc := NewHTTPServerService(server, 0)

	err := svc.Serve(context.Background())
	if err == nil || !strings.Contains(err.Error(), "address already in use") {
		t.Errorf("Serve() error = %v, want listener error", err)
	}
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("shutdownTimeout = %v, want 10s default", svc.shutdownTimeout)
	}
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestHTTPServerService_ShutdownError(t *testing.T) {
	t.Parallel()

	server := newFakeHTTPServer()
	server.shutdownErr = errors.New("drain timeout")
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()
	<-server.started
	cancel()

	if err := <-done; err == nil || !strings.Contains(err.Error(), "drain timeout") {
		t.Errorf("Serve() error = %v, want shutdown error", err)
	}
}

// fakeReloader counts reloads and fails when err is set.
type fakeReloader struct {
	calls atomic.Int32
	err   error
}

func (f *fakeReloader) Reload(ctx context.Context) error {
	f.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("reload context has no deadline")
	}
	return f.err
}

func TestReloadService_ReloadsOnInterval(t *testing.T) {
	t.Parallel()

	reloader := &fakeReloader{}
	svc := NewReloadService(reloader, ReloadServiceConfig{
		Interval:      10 * time.Millisecond,
		ReloadOnStart: true,
	}, logging.NewTestLogger(&bytes.Buffer{}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for reloader.calls.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("reloads = %d, want >= 3", reloader.calls.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
}

func TestReloadService_FailuresDoNotStopLoop(t *testing.T) {
	t.Parallel()

	var buf safeBuffer
	reloader := &fakeReloader{err: errors.New("source offline")}
	svc := NewReloadService(reloader, ReloadServiceConfig{
		Interval:      10 * time.Millisecond,
		ReloadOnStart: true,
	}, logging.NewTestLogger(&buf))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for reloader.calls.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("loop stopped after a failed reload")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if !strings.Contains(buf.String(), "source offline") {
		t.Errorf("failure not logged: %s", buf.String())
	}
	if svc.String() != "reload-service" {
		t.Errorf("String() = %q", svc.String())
	}
}

// safeBuffer is a bytes.Buffer safe for the service goroutine and the test.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
