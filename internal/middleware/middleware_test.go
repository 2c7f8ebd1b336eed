// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/stylehive/internal/logging"
	"github.com/tomtom215/stylehive/internal/metrics"
)

func TestRequestID_GeneratesNewID(t *testing.T) {
	t.Parallel()

	var capturedID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID = GetRequestID(r.Context())
		if logging.CorrelationIDFromContext(r.Context()) == "" {
			t.Error("correlation ID missing from context")
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	responseID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID: %v", responseID, err)
	}
	if capturedID != responseID {
		t.Errorf("context ID %q != header ID %q", capturedID, responseID)
	}
}

func TestRequestID_UpstreamID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"well formed", "edge-4f2a", true},
		{"too long", strings.Repeat("a", 65), false},
		{"contains space", "bad id", false},
		{"contains newline", "bad\nid", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var captured string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured = GetRequestID(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(RequestIDHeader, tt.incoming)
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got := captured == tt.incoming; got != tt.keep {
				t.Errorf("kept upstream ID = %v, want %v (got %q)", got, tt.keep, captured)
			}
		})
	}
}

func TestPrometheusMetrics_RoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/api/v1/recommendations/product/{product}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	const pattern = "/api/v1/recommendations/product/{product}"
	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, pattern, "404")
	before := testutil.ToFloat64(counter)

	for _, product := range []string{"Hoodie", "Sneakers"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/product/"+product, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("requests under route pattern = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.APIActiveRequests); got != 0 {
		t.Errorf("active requests = %v, want 0", got)
	}
}

func TestPrometheusMetrics_DefaultStatus(t *testing.T) {
	handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "200")
	before := testutil.ToFloat64(counter)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/plain", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("unmatched 200 requests = %v, want 1", got)
	}
}

// AccessLog tests replace the global logger and do not run in parallel.

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logging.SetLogger(logging.NewTestLogger(&buf))
	logging.SetLevelString("debug")
	defer logging.Init(logging.DefaultConfig())

	tests := []struct {
		name      string
		status    int
		delay     time.Duration
		wantLevel string
	}{
		{"ok", http.StatusOK, 0, `"level":"debug"`},
		{"server error", http.StatusInternalServerError, 0, `"level":"warn"`},
		{"slow", http.StatusOK, 20 * time.Millisecond, `"slow":true`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			handler := RequestID(AccessLog(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(tt.delay)
				w.WriteHeader(tt.status)
			})))
			req := httptest.NewRequest(http.MethodGet, "/api/v1/insights/kpis", nil)
			req.Header.Set(RequestIDHeader, "req-42")
			handler.ServeHTTP(httptest.NewRecorder(), req)

			line := buf.String()
			if !strings.Contains(line, tt.wantLevel) {
				t.Errorf("log line %q missing %s", line, tt.wantLevel)
			}
			if !strings.Contains(line, `"request_id":"req-42"`) || !strings.Contains(line, `"path":"/api/v1/insights/kpis"`) {
				t.Errorf("log line %q missing request fields", line)
			}
		})
	}
}
