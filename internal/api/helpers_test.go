// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/stylehive/internal/models"
	"github.com/tomtom215/stylehive/internal/recommend"
	"github.com/tomtom215/stylehive/internal/recommend/algorithms"
	"github.com/tomtom215/stylehive/internal/transactions"
)

// envelope mirrors models.APIResponse with the payload left raw.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

// testDataset: Hoodie and Jeans always sell together, Sneakers pair with
// both once and with Cap once.
//
//	customer 1: day 1 {Hoodie, Jeans}, day 2 {Hoodie, Jeans, Sneakers}
//	customer 2: day 1 {Hoodie, Jeans}
//	customer 3: day 3 {Sneakers, Cap}
//	customer 4: day 4 {Hoodie, Jeans}
func testDataset() *transactions.Dataset {
	day := func(d int) time.Time {
		return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
	}
	rows := []transactions.Row{
		transactions.NewRow(1, "Hoodie", day(1)),
		transactions.NewRow(1, "Jeans", day(1)),
		transactions.NewRow(1, "Hoodie", day(2)),
		transactions.NewRow(1, "Jeans", day(2)),
		transactions.NewRow(1, "Sneakers", day(2)),
		transactions.NewRow(2, "Hoodie", day(1)),
		transactions.NewRow(2, "Jeans", day(1)),
		transactions.NewRow(3, "Sneakers", day(3)),
		transactions.NewRow(3, "Cap", day(3)),
		transactions.NewRow(4, "Hoodie", day(4)),
		transactions.NewRow(4, "Jeans", day(4)),
	}
	return transactions.NewDataset(rows)
}

// newEngine creates an engine fitting the real hybrid model.
func newEngine(t *testing.T) *recommend.Engine {
	t.Helper()
	cfg := recommend.DefaultConfig()
	cfg.Collaborative.Rank = 2
	engine, err := recommend.NewEngine(cfg, algorithms.FitHybrid, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

// newEmptyHandler creates a handler with nothing installed.
func newEmptyHandler(t *testing.T, src transactions.Source) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerConfig{
		Engine:  newEngine(t),
		Source:  src,
		Version: "test",
		Logger:  zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h
}

// newTestHandler creates a handler serving testDataset.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h := newEmptyHandler(t, nil)
	if err := h.Install(context.Background(), testDataset()); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	return h
}

// newTestRouter routes to h without rate limiting.
func newTestRouter(h *Handler) http.Handler {
	cfg := DefaultRouterConfig()
	cfg.RateLimitDisabled = true
	return NewRouter(h, cfg)
}

// doRequest serves one request and decodes the envelope.
func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Code != http.StatusNotModified && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: invalid envelope %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, env
}

// decodeData unmarshals the envelope payload into dst.
func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

// errorCode returns the envelope error code, or "".
func errorCode(env envelope) string {
	if env.Error == nil {
		return ""
	}
	return env.Error.Code
}
