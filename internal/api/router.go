// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/stylehive/internal/middleware"
)

// RouterConfig holds HTTP-layer settings.
type RouterConfig struct {
	CORSOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool

	// SlowRequest is the access log threshold for warnings.
	// Zero uses middleware.DefaultSlowRequestThreshold.
	SlowRequest time.Duration
}

// DefaultRouterConfig allows any origin and 100 requests per minute per IP.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CORSOrigins:       []string{"*"},
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		SlowRequest:       middleware.DefaultSlowRequestThreshold,
	}
}

// corsHandler builds the go-chi/cors middleware.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "If-None-Match", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"ETag", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           86400,
	})
}

// rateLimiter builds the per-IP go-chi/httprate limiter. Limited requests
// get the standard error envelope.
func rateLimiter(cfg RouterConfig) func(http.Handler) http.Handler {
	if cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusTooManyRequests, CodeRateLimited, "Rate limit exceeded", nil, nil)
		}),
	)
}

// NewRouter builds the chi router for h.
//
//nolint:gocritic // RouterConfig is built once at startup
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	if cfg.SlowRequest <= 0 {
		cfg.SlowRequest = middleware.DefaultSlowRequestThreshold
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(cfg.SlowRequest))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.SetHeader("X-Content-Type-Options", "nosniff"))
	r.Use(corsHandler(cfg.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Resource not found", nil, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, CodeMethod, "Method not allowed", nil, nil)
	})

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(rateLimiter(cfg))
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Get("/health", h.Health)

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/product/{product}", h.RecommendProduct)
			r.Post("/basket", h.RecommendBasket)
			r.Get("/similar/{product}", h.SimilarProducts)
			r.Get("/customer/{customerID}", h.RecommendCustomer)
			r.Get("/hybrid/{product}", h.RecommendHybrid)
		})

		r.Get("/rules", h.Rules)
		r.Get("/itemsets", h.Itemsets)

		r.Route("/insights", func(r chi.Router) {
			r.Get("/kpis", h.KPIs)
			r.Get("/top-products", h.TopProducts)
			r.Get("/co-purchases", h.CoPurchases)
			r.Get("/seasonal", h.Seasonal)
			r.Get("/segments", h.Segments)
			r.Get("/affinity-network", h.AffinityNetwork)
			r.Get("/customers", h.Customers)
			r.Get("/daily-sales", h.DailySales)
			r.Get("/summary", h.Summary)
		})

		r.Get("/model", h.Model)
		r.Post("/model/fit", h.Fit)
	})

	return r
}
