// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/stylehive/internal/insights"
	"github.com/tomtom215/stylehive/internal/middleware"
	"github.com/tomtom215/stylehive/internal/models"
	"github.com/tomtom215/stylehive/internal/recommend"
	"github.com/tomtom215/stylehive/internal/transactions"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	t.Run("starting", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(newEmptyHandler(t, nil))

		rec, env := doRequest(t, router, http.MethodGet, "/health", "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
		var health models.HealthStatus
		decodeData(t, env, &health)
		if health.Status != "starting" || health.ModelReady {
			t.Errorf("health = %+v, want starting and not ready", health)
		}
	})

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(newTestHandler(t))

		for _, path := range []string{"/health", "/api/v1/health"} {
			rec, env := doRequest(t, router, http.MethodGet, path, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("%s status = %d, want 200", path, rec.Code)
			}
			var health models.HealthStatus
			decodeData(t, env, &health)
			if !health.ModelReady || health.Rows != 11 || health.Version != "test" {
				t.Errorf("%s health = %+v", path, health)
			}
			if health.LastLoadAt == nil {
				t.Errorf("%s last_load_at missing", path)
			}
		}
	})
}

func TestRecommendProduct(t *testing.T) {
	t.Parallel()
	router := newTestRouter(newTestHandler(t))

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/recommendations/product/Hoodie?n=3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var list models.RecommendationList
	decodeData(t, env, &list)
	if list.Count == 0 || list.Recommendations[0].Product != "Jeans" {
		t.Fatalf("recommendations = %+v, want Jeans first", list.Recommendations)
	}
	if list.Count > 3 {
		t.Errorf("count = %d, want <= 3", list.Count)
	}
	for _, r := range list.Recommendations {
		if r.Product == "Hoodie" {
			t.Error("query product recommended to itself")
		}
	}

	if env.Metadata.ModelFingerprint == "" {
		t.Error("metadata.model_fingerprint missing")
	}
	if env.Metadata.RequestID == "" || env.Metadata.RequestID != rec.Header().Get(middleware.RequestIDHeader) {
		t.Errorf("metadata.request_id = %q, header = %q", env.Metadata.RequestID, rec.Header().Get(middleware.RequestIDHeader))
	}
}

func TestRecommendProduct_EscapedName(t *testing.T) {
	t.Parallel()
	router := newTestRouter(newTestHandler(t))

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/recommendations/product/White%20T-shirt", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var list models.RecommendationList
	decodeData(t, env, &list)
	if got := list.Query["product"]; got != "White T-shirt" {
		t.Errorf("query.product = %v, want White T-shirt", got)
	}
}

func TestRecommendProduct_UnknownIsEmpty(t *testing.T) {
	t.Parallel()
	router := newTestRouter(newTestHandler(t))

	for _, path := range []string{
		"/api/v1/recommendations/product/Umbrella",
		"/api/v1/recommendations/hybrid/Umbrella",
	} {
		rec, env := doRequest(t, router, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d, want 200", path, rec.Code)
		}
		if !strings.Contains(string(env.Data), `"recommendations":[]`) {
			t.Errorf("%s data = %s, want empty list", path, env.Data)
		}
	}
}

func TestRecommendationErrors(t *testing.T) {
	t.Parallel()
	router := newTestRouter(newTestHandler(t))

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"similar unknown product", "/api/v1/recommendations/similar/Umbrella", http.StatusNotFound, CodeUnknownProd},
		{"customer unknown", "/api/v1/recommendations/customer/999", http.StatusNotFound, CodeUnknownCust},
		{"customer not integer", "/api/v1/recommendations/customer/abc", http.StatusBadRequest, CodeValidation},
		{"negative n", "/api/v1/recommendations/product/Hoodie?n=-1", http.StatusBadRequest, CodeValidation},
		{"non-numeric n", "/api/v1/recommendations/hybrid/Hoodie?n=many", http.StatusBadRequest, CodeValidation},
		{"padded product", "/api/v1/recommendations/similar/%20Hoodie", http.StatusBadRequest, CodeValidation},
		{"unknown route", "/api/v1/recommendations/nothing", http.StatusNotFound, CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := doRequest(t, router, http.MethodGet, tt.path, "")
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if got := errorCode(env); got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
			if env.Status != models.StatusError {
				t.Errorf("envelope status = %q, want error", env.Status)
			}
		})
	}
}

func TestRecommendSimilarAndCustomer(t *testing.T) {
	t.Parallel()
	router := newTestRouter(newTestHandler(t))

	tests := []struct {
		name    string
		path    string
		exclude string
	}{
		{"similar", "/api/v1/recommendations/similar/Hoodie?n=2", "Hoodie"},
		{"customer", "/api/v1/recommendations/customer/3?n=2", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := doRequest(t, router, http.MethodGet, tt.path, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			var list models.RecommendationList
			decodeData(t, env, &list)
			if list.Count > 2 {
				t.Errorf("count = %d, want <= 2", list.Count)
			}
			for _, r := range list.Recommendations {
				if tt.exclude != "" && r.Product == tt.exclude {
					t.Errorf("%s recommended to itself", tt.exclude)
				}
			}
		})
	}
}

func TestTopNClamped(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)
	router := newTestRouter(h)

	_, env := doRequest(t, router, http.MethodGet, "/api/v1/recommendations/product/Hoodie?n=100000", "")
	var list models.RecommendationList
	decodeData(t, env, &list)
	want := float64(h.engineCfg.Limits.MaxTopN)
	if got := list.Query["n"]; got != want {
		t.Errorf("query.n = %v, want %v", got, want)
	}

	_, env = doRequest(t, router, http.MethodGet, "/api/v1/recommendations/product/Hoodie", "")
	decodeData(t, env, &list)
	want = float64(h.engineCfg.Limits.DefaultTopN)
	if got := list.Query["n"]; got != want {
		t.Errorf("default query.n = %v, want %v", got, want)
	}
}

func TestRecommendBasket(t *testing.T) {
	t.Parallel()
	router := newTestRouter(newTestHandler(t))

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid", `{"products": ["Hoodie"], "n": 2}`, http.StatusOK},
		{"unknown products", `{"products": ["Umbrella"]}`, http.StatusOK},
		{"empty body", ``, http.StatusBadRequest},
		{"missing products", `{}`, http.StatusBadRequest},
		{"empty products", `{"products": []}`, http.StatusBadRequest},
		{"duplicate products", `{"products": ["Hoodie", "Hoodie"]}`, http.StatusBadRequest},
		{"blank product", `{"products": [""]}`, http.StatusBadRequest},
		{"unknown field", `{"products": ["Hoodie"], "limit": 2}`, http.StatusBadRequest},
		{"malformed", `{"products": `, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := doRequest(t, router, http.MethodPost, "/api/v1/recommendations/basket", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusBadRequest && errorCode(env) != CodeValidation {
				t.Errorf("code = %q, want %s", errorCode(env), CodeValidation)
			}
		})
	}

	t.Run("excludes basket items", func(t *testing.T) {
		t.Parallel()
		_, env := doRequest(t, router, http.MethodPost, "/api/v1/recommendations/basket", `{"products": ["Hoodie", "Jeans"]}`)
		var list models.RecommendationList
		decodeData(t, env, &list)
		for _, r := range list.Recommendations {
			if r.Product == "Hoodie" || r.Product == "Jeans" {
				t.Errorf("basket item %s recommended", r.Product)
			}
		}
	})
}

func TestNotReady(t *testing.T) {
	t.Parallel()
	router := newTestRouter(newEmptyHandler(t, nil))

	for _, path := range []string{
		"/api/v1/recommendations/product/Hoodie",
		"/api/v1/rules",
		"/api/v1/insights/kpis",
	} {
		rec, env := doRequest(t, router, http.MethodGet, path, "")
		if rec.Code != http.StatusServiceUnavailable || errorCode(env) != CodeNotReady {
			t.Errorf("%s = %d %q, want 503 %s", path, rec.Code, errorCode(env), CodeNotReady)
		}
	}

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/model/fit", `{}`)
	if rec.Code != http.StatusServiceUnavailable || errorCode(env) != CodeNotReady {
		t.Errorf("fit = %d %q, want 503 %s", rec.Code, errorCode(env), CodeNotReady)
	}
}

func TestRules(t *testing.T) {
	t.Parallel()
	router := newTestRouter(newTestHandler(t))

	t.Run("filter by product", func(t *testing.T) {
		t.Parallel()
		_, env := doRequest(t, router, http.MethodGet, "/api/v1/rules?product=Sneakers", "")
		var list RuleList
		decodeData(t, env, &list)
		if list.Count == 0 {
			t.Fatal("no rules for Sneakers")
		}
		for _, r := range list.Rules {
			if !r.Antecedent.Contains("Sneakers") {
				t.Errorf("rule %v => %v lacks Sneakers", r.Antecedent, r.Consequent)
			}
		}
		if list.Total < list.Count {
			t.Errorf("total %d < count %d", list.Total, list.Count)
		}
	})

	t.Run("limit keeps ranking order", func(t *testing.T) {
		t.Parallel()
		_, env := doRequest(t, router, http.MethodGet, "/api/v1/rules?limit=2", "")
		var list RuleList
		decodeData(t, env, &list)
		if list.Count != 2 {
			t.Fatalf("count = %d, want 2", list.Count)
		}
		if recommend.CompareRules(list.Rules[0], list.Rules[1]) > 0 {
			t.Error("rules out of ranking order")
		}
	})

	t.Run("min lift", func(t *testing.T) {
		t.Parallel()
		_, env := doRequest(t, router, http.MethodGet, "/api/v1/rules?min_lift=1.2", "")
		var list RuleList
		decodeData(t, env, &list)
		for _, r := range list.Rules {
			if r.Lift < 1.2 {
				t.Errorf("rule lift %f below 1.2", r.Lift)
			}
		}
	})

	t.Run("invalid limit", func(t *testing.T) {
		t.Parallel()
		rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/rules?limit=5000", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestItemsets(t *testing.T) {
	t.Parallel()
	router := newTestRouter(newTestHandler(t))

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/itemsets?min_size=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var list ItemsetList
	decodeData(t, env, &list)
	if list.Count == 0 {
		t.Fatal("no pair itemsets")
	}
	for _, set := range list.Itemsets {
		if set.Items.Len() < 2 {
			t.Errorf("itemset %v smaller than 2", set.Items)
		}
	}
}

func TestInsightsEndpoints(t *testing.T) {
	t.Parallel()
	router := newTestRouter(newTestHandler(t))

	paths := []string{
		"/api/v1/insights/kpis",
		"/api/v1/insights/top-products",
		"/api/v1/insights/top-products?n=2",
		"/api/v1/insights/co-purchases",
		"/api/v1/insights/seasonal",
		"/api/v1/insights/segments",
		"/api/v1/insights/affinity-network",
		"/api/v1/insights/customers",
		"/api/v1/insights/daily-sales",
		"/api/v1/insights/summary",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			t.Parallel()
			rec, env := doRequest(t, router, http.MethodGet, path, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if env.Status != models.StatusSuccess || len(env.Data) == 0 {
				t.Errorf("envelope = %+v", env)
			}
		})
	}

	t.Run("top products size", func(t *testing.T) {
		t.Parallel()
		_, env := doRequest(t, router, http.MethodGet, "/api/v1/insights/top-products?n=2", "")
		var top []insights.TopProduct
		decodeData(t, env, &top)
		if len(top) != 2 || top[0].Product != "Hoodie" && top[0].Product != "Jeans" {
			t.Errorf("top products = %+v", top)
		}
	})

	t.Run("kpis", func(t *testing.T) {
		t.Parallel()
		_, env := doRequest(t, router, http.MethodGet, "/api/v1/insights/kpis", "")
		var kpis insights.KPIs
		decodeData(t, env, &kpis)
		if kpis.TotalTransactions != 11 || kpis.UniqueCustomers != 4 || kpis.Baskets != 5 {
			t.Errorf("kpis = %+v", kpis)
		}
	})
}

func TestSegments_IncludeCustomers(t *testing.T) {
	t.Parallel()
	router := newTestRouter(newTestHandler(t))

	_, env := doRequest(t, router, http.MethodGet, "/api/v1/insights/segments", "")
	var segments insights.Segments
	decodeData(t, env, &segments)
	if len(segments.Customers) != 0 {
		t.Errorf("customers included by default: %d", len(segments.Customers))
	}

	_, env = doRequest(t, router, http.MethodGet, "/api/v1/insights/segments?include_customers=true", "")
	segments = insights.Segments{}
	decodeData(t, env, &segments)
	if len(segments.Customers) != 4 {
		t.Errorf("customers = %d, want 4", len(segments.Customers))
	}

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/insights/segments?include_customers=maybe", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestModelFit(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)
	router := newTestRouter(h)

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/model/fit", `{"min_support": 0.3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result models.FitResult
	decodeData(t, env, &result)
	if result.Cached {
		t.Error("first fit reported cached")
	}
	if result.Model.Params.MinSupport != 0.3 {
		t.Errorf("min_support = %f, want 0.3", result.Model.Params.MinSupport)
	}

	_, env = doRequest(t, router, http.MethodPost, "/api/v1/model/fit", `{"min_support": 0.3}`)
	result = models.FitResult{}
	decodeData(t, env, &result)
	if !result.Cached {
		t.Error("repeat fit not served from cache")
	}

	_, env = doRequest(t, router, http.MethodPost, "/api/v1/model/fit", `{"min_support": 0.3, "force": true}`)
	result = models.FitResult{}
	decodeData(t, env, &result)
	if result.Cached {
		t.Error("forced fit reported cached")
	}

	_, env = doRequest(t, router, http.MethodGet, "/api/v1/model", "")
	var status models.ModelStatus
	decodeData(t, env, &status)
	if status.Model == nil || status.Model.Params.MinSupport != 0.3 {
		t.Fatalf("serving model = %+v, want min_support 0.3", status.Model)
	}
	if status.Engine.CacheHits < 1 {
		t.Errorf("cache hits = %d, want >= 1", status.Engine.CacheHits)
	}
	if h.Params().MinSupport != 0.3 {
		t.Errorf("handler params min_support = %f", h.Params().MinSupport)
	}
}

func TestModelFit_Validation(t *testing.T) {
	t.Parallel()
	router := newTestRouter(newTestHandler(t))

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"zero support", `{"min_support": 0}`, "min_support"},
		{"support above one", `{"min_support": 1.5}`, "min_support"},
		{"confidence above one", `{"min_confidence": 2}`, "min_confidence"},
		{"zero rank", `{"rank": 0}`, "rank"},
		{"negative weight", `{"collaborative_weight": -1}`, "collaborative_weight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := doRequest(t, router, http.MethodPost, "/api/v1/model/fit", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if errorCode(env) != CodeValidation {
				t.Errorf("code = %q", errorCode(env))
			}
			if got := env.Error.Details["field"]; got != tt.wantField {
				t.Errorf("details.field = %v, want %s", got, tt.wantField)
			}
		})
	}
}

func TestModelFit_InProgress(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)
	router := newTestRouter(h)

	h.busy.Store(true)
	defer h.busy.Store(false)

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/model/fit", `{}`)
	if rec.Code != http.StatusConflict || errorCode(env) != CodeFitInProgress {
		t.Errorf("= %d %q, want 409 %s", rec.Code, errorCode(env), CodeFitInProgress)
	}
	if err := h.Install(context.Background(), testDataset()); !errors.Is(err, ErrFitInProgress) {
		t.Errorf("Install() error = %v, want ErrFitInProgress", err)
	}
}

func TestETag_NotModified(t *testing.T) {
	t.Parallel()
	router := newTestRouter(newTestHandler(t))

	first, _ := doRequest(t, router, http.MethodGet, "/api/v1/insights/kpis", "")
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("ETag missing")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/insights/kpis", nil)
	req.Header.Set("If-None-Match", etag)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()
	router := newTestRouter(newTestHandler(t))

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/recommendations/basket", "")
	if rec.Code != http.StatusMethodNotAllowed || errorCode(env) != CodeMethod {
		t.Errorf("= %d %q, want 405 %s", rec.Code, errorCode(env), CodeMethod)
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()
	cfg := DefaultRouterConfig()
	cfg.RateLimitRequests = 1
	router := NewRouter(newTestHandler(t), cfg)

	first, _ := doRequest(t, router, http.MethodGet, "/api/v1/insights/kpis", "")
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}
	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/insights/kpis", "")
	if rec.Code != http.StatusTooManyRequests || errorCode(env) != CodeRateLimited {
		t.Errorf("= %d %q, want 429 %s", rec.Code, errorCode(env), CodeRateLimited)
	}
}

func TestReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "transactions.csv")
	csv := "CustomerID,Product,Date\n" +
		"1,Hoodie,2024-06-01\n" +
		"1,Jeans,2024-06-01\n" +
		"2,Hoodie,2024-06-02\n" +
		"2,Jeans,2024-06-02\n" +
		"3,Cap,2024-06-03\n"
	if err := os.WriteFile(path, []byte(csv), 0o600); err != nil {
		t.Fatal(err)
	}

	h := newEmptyHandler(t, &transactions.CSVSource{Path: path})
	ctx := context.Background()

	if err := h.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if !h.Ready() {
		t.Fatal("not ready after reload")
	}
	first, _ := h.snapshot()

	// Same content keeps the serving state.
	if err := h.Reload(ctx); err != nil {
		t.Fatalf("second Reload() error = %v", err)
	}
	if st, _ := h.snapshot(); st != first {
		t.Error("unchanged dataset replaced the serving state")
	}

	if err := os.WriteFile(path, []byte(csv+"4,Cap,2024-06-04\n4,Hoodie,2024-06-04\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := h.Reload(ctx); err != nil {
		t.Fatalf("third Reload() error = %v", err)
	}
	st, _ := h.snapshot()
	if st == first || st.dataset.Len() != 7 {
		t.Errorf("changed dataset not installed: rows = %d", st.dataset.Len())
	}
}

func TestReload_Errors(t *testing.T) {
	t.Parallel()

	h := newEmptyHandler(t, nil)
	if err := h.Reload(context.Background()); err == nil {
		t.Error("Reload() without source succeeded")
	}

	h = newEmptyHandler(t, &transactions.CSVSource{Path: filepath.Join(t.TempDir(), "missing.csv")})
	err := h.Reload(context.Background())
	if !errors.Is(err, transactions.ErrDataUnavailable) {
		t.Errorf("Reload() error = %v, want ErrDataUnavailable", err)
	}
	if h.Ready() {
		t.Error("ready after failed reload")
	}
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{recommend.ErrUnknownProduct, http.StatusNotFound, CodeUnknownProd},
		{recommend.ErrUnknownCustomer, http.StatusNotFound, CodeUnknownCust},
		{recommend.ErrNotFitted, http.StatusServiceUnavailable, CodeNotReady},
		{ErrNotReady, http.StatusServiceUnavailable, CodeNotReady},
		{ErrFitInProgress, http.StatusConflict, CodeFitInProgress},
		{context.DeadlineExceeded, http.StatusGatewayTimeout, CodeFitTimeout},
		{errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		got := classifyError(wrapErr(tt.err))
		if got.status != tt.wantStatus || got.code != tt.wantCode {
			t.Errorf("classifyError(%v) = %d %s, want %d %s", tt.err, got.status, got.code, tt.wantStatus, tt.wantCode)
		}
	}
}

func wrapErr(err error) error {
	return errors.Join(errors.New("context"), err)
}
