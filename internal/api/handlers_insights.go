// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/stylehive/internal/insights"
	"github.com/tomtom215/stylehive/internal/validation"
)

// withAnalyzer resolves the serving state and hands its analyzer to fn,
// which returns the payload.
func (h *Handler) withAnalyzer(w http.ResponseWriter, r *http.Request, fn func(st *servingState) interface{}) {
	start := time.Now()
	st, err := h.snapshot()
	if err != nil {
		respondDomainError(w, r, err, nil)
		return
	}
	respondSuccess(w, r, start, st.fingerprint(), fn(st))
}

// KPIs handles GET /api/v1/insights/kpis.
func (h *Handler) KPIs(w http.ResponseWriter, r *http.Request) {
	h.withAnalyzer(w, r, func(st *servingState) interface{} {
		return st.analyzer.KPIs()
	})
}

// TopProducts handles GET /api/v1/insights/top-products?n=.
// Without n the configured insights.top_products size is used.
func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	n, err := intQuery(r, "n", 0)
	if err != nil {
		respondBadRequest(w, r, err.Error(), map[string]interface{}{"parameter": "n"})
		return
	}
	q := TopNQuery{N: n}
	if verr := validation.ValidateStruct(&q); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	h.withAnalyzer(w, r, func(st *servingState) interface{} {
		return st.analyzer.TopProducts(q.N)
	})
}

// CoPurchases handles GET /api/v1/insights/co-purchases.
func (h *Handler) CoPurchases(w http.ResponseWriter, r *http.Request) {
	h.withAnalyzer(w, r, func(st *servingState) interface{} {
		out := st.analyzer.CoPurchaseInsights()
		if out == nil {
			out = []insights.CoPurchase{}
		}
		return out
	})
}

// Seasonal handles GET /api/v1/insights/seasonal.
func (h *Handler) Seasonal(w http.ResponseWriter, r *http.Request) {
	h.withAnalyzer(w, r, func(st *servingState) interface{} {
		return st.analyzer.SeasonalInsights()
	})
}

// Segments handles GET /api/v1/insights/segments. The per-customer list is
// only included with ?include_customers=true.
func (h *Handler) Segments(w http.ResponseWriter, r *http.Request) {
	include, err := boolQuery(r, "include_customers", false)
	if err != nil {
		respondBadRequest(w, r, err.Error(), map[string]interface{}{"parameter": "include_customers"})
		return
	}
	h.withAnalyzer(w, r, func(st *servingState) interface{} {
		segments := st.analyzer.CustomerSegments()
		if !include {
			segments.Customers = nil
		}
		return segments
	})
}

// AffinityNetwork handles GET /api/v1/insights/affinity-network.
func (h *Handler) AffinityNetwork(w http.ResponseWriter, r *http.Request) {
	h.withAnalyzer(w, r, func(st *servingState) interface{} {
		return st.analyzer.AffinityNetwork()
	})
}

// Customers handles GET /api/v1/insights/customers.
func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	h.withAnalyzer(w, r, func(st *servingState) interface{} {
		return st.analyzer.CustomerInsights()
	})
}

// DailySales handles GET /api/v1/insights/daily-sales.
func (h *Handler) DailySales(w http.ResponseWriter, r *http.Request) {
	h.withAnalyzer(w, r, func(st *servingState) interface{} {
		return st.dataset.DailySales()
	})
}

// Summary handles GET /api/v1/insights/summary. The summary is built once
// per dataset when it is installed.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	h.withAnalyzer(w, r, func(st *servingState) interface{} {
		return st.summary
	})
}
