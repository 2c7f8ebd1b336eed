// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/stylehive/internal/metrics"
	"github.com/tomtom215/stylehive/internal/models"
	"github.com/tomtom215/stylehive/internal/recommend"
	"github.com/tomtom215/stylehive/internal/validation"
)

// Query method labels for recommendation metrics.
const (
	methodProduct  = "product"
	methodBasket   = "basket"
	methodSimilar  = "similar"
	methodCustomer = "customer"
	methodHybrid   = "hybrid"
)

// topN reads ?n= and applies the configured default and maximum. It writes
// a 400 and returns false on bad input.
func (h *Handler) topN(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := intQuery(r, "n", 0)
	if err != nil {
		respondBadRequest(w, r, err.Error(), map[string]interface{}{"parameter": "n"})
		return 0, false
	}
	q := TopNQuery{N: n}
	if verr := validation.ValidateStruct(&q); verr != nil {
		respondValidationError(w, r, verr)
		return 0, false
	}
	return h.engineCfg.ClampTopN(q.N), true
}

// respondRecommendations records the query and writes the result list.
func (h *Handler) respondRecommendations(w http.ResponseWriter, r *http.Request, start time.Time, st *servingState,
	method string, query map[string]interface{}, recs []recommend.Recommendation, err error) {
	if err != nil {
		if errors.Is(err, recommend.ErrUnknownProduct) || errors.Is(err, recommend.ErrUnknownCustomer) {
			metrics.RecordNotFound(method)
		} else {
			metrics.RecordQuery(method, 0, err)
		}
		respondDomainError(w, r, err, query)
		return
	}

	metrics.RecordQuery(method, len(recs), nil)
	if recs == nil {
		recs = []recommend.Recommendation{}
	}
	respondSuccess(w, r, start, st.fingerprint(), models.RecommendationList{
		Query:           query,
		Count:           len(recs),
		Recommendations: recs,
	})
}

// RecommendProduct handles GET /api/v1/recommendations/product/{product}.
// Products without rules yield an empty list.
func (h *Handler) RecommendProduct(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	product, err := productParam(r)
	if err != nil {
		respondBadRequest(w, r, err.Error(), map[string]interface{}{"parameter": "product"})
		return
	}
	n, ok := h.topN(w, r)
	if !ok {
		return
	}
	st, err := h.snapshot()
	if err != nil {
		respondDomainError(w, r, err, nil)
		return
	}

	recs := st.model.RecommendForProduct(product, n)
	h.respondRecommendations(w, r, start, st, methodProduct,
		map[string]interface{}{"product": product, "n": n}, recs, nil)
}

// RecommendBasket handles POST /api/v1/recommendations/basket.
func (h *Handler) RecommendBasket(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req BasketRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondBadRequest(w, r, err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	st, err := h.snapshot()
	if err != nil {
		respondDomainError(w, r, err, nil)
		return
	}

	n := h.engineCfg.ClampTopN(req.N)
	recs := st.model.RecommendForBasket(req.Products, n)
	h.respondRecommendations(w, r, start, st, methodBasket,
		map[string]interface{}{"products": req.Products, "n": n}, recs, nil)
}

// SimilarProducts handles GET /api/v1/recommendations/similar/{product}.
func (h *Handler) SimilarProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	product, err := productParam(r)
	if err != nil {
		respondBadRequest(w, r, err.Error(), map[string]interface{}{"parameter": "product"})
		return
	}
	n, ok := h.topN(w, r)
	if !ok {
		return
	}
	st, err := h.snapshot()
	if err != nil {
		respondDomainError(w, r, err, nil)
		return
	}

	recs, err := st.model.SimilarProducts(product, n)
	h.respondRecommendations(w, r, start, st, methodSimilar,
		map[string]interface{}{"product": product, "n": n}, recs, err)
}

// RecommendCustomer handles GET /api/v1/recommendations/customer/{customerID}.
func (h *Handler) RecommendCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	raw := chi.URLParam(r, "customerID")
	customerID, err := strconv.Atoi(raw)
	if err != nil {
		respondBadRequest(w, r, "customerID must be an integer", map[string]interface{}{"parameter": "customerID", "value": raw})
		return
	}
	n, ok := h.topN(w, r)
	if !ok {
		return
	}
	st, err := h.snapshot()
	if err != nil {
		respondDomainError(w, r, err, nil)
		return
	}

	recs, err := st.model.RecommendForUser(customerID, n)
	h.respondRecommendations(w, r, start, st, methodCustomer,
		map[string]interface{}{"customer_id": customerID, "n": n}, recs, err)
}

// RecommendHybrid handles GET /api/v1/recommendations/hybrid/{product}.
func (h *Handler) RecommendHybrid(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	product, err := productParam(r)
	if err != nil {
		respondBadRequest(w, r, err.Error(), map[string]interface{}{"parameter": "product"})
		return
	}
	n, ok := h.topN(w, r)
	if !ok {
		return
	}
	st, err := h.snapshot()
	if err != nil {
		respondDomainError(w, r, err, nil)
		return
	}

	recs := st.model.Recommend(product, n)
	h.respondRecommendations(w, r, start, st, methodHybrid,
		map[string]interface{}{"product": product, "n": n}, recs, nil)
}

// RuleList is the payload of GET /rules.
type RuleList struct {
	Total int              `json:"total"`
	Count int              `json:"count"`
	Rules []recommend.Rule `json:"rules"`
}

// Rules handles GET /api/v1/rules. Rules keep ranking order; product
// restricts them to rules whose antecedent contains it.
func (h *Handler) Rules(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, err := intQuery(r, "limit", defaultListLimit)
	if err != nil {
		respondBadRequest(w, r, err.Error(), map[string]interface{}{"parameter": "limit"})
		return
	}
	minLift, err := floatQuery(r, "min_lift", 0)
	if err != nil {
		respondBadRequest(w, r, err.Error(), map[string]interface{}{"parameter": "min_lift"})
		return
	}
	q := RulesQuery{Product: r.URL.Query().Get("product"), MinLift: minLift, Limit: limit}
	if verr := validation.ValidateStruct(&q); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	st, err := h.snapshot()
	if err != nil {
		respondDomainError(w, r, err, nil)
		return
	}

	all := st.model.Rules()
	rules := make([]recommend.Rule, 0, min(len(all), q.Limit))
	for _, rule := range all {
		if q.Product != "" && !rule.Antecedent.Contains(q.Product) {
			continue
		}
		if rule.Lift < q.MinLift {
			continue
		}
		if q.Limit > 0 && len(rules) == q.Limit {
			break
		}
		rules = append(rules, rule)
	}

	respondSuccess(w, r, start, st.fingerprint(), RuleList{Total: len(all), Count: len(rules), Rules: rules})
}

// ItemsetList is the payload of GET /itemsets.
type ItemsetList struct {
	Total    int                 `json:"total"`
	Count    int                 `json:"count"`
	Itemsets []recommend.Itemset `json:"itemsets"`
}

// Itemsets handles GET /api/v1/itemsets.
func (h *Handler) Itemsets(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, err := intQuery(r, "limit", defaultListLimit)
	if err != nil {
		respondBadRequest(w, r, err.Error(), map[string]interface{}{"parameter": "limit"})
		return
	}
	minSize, err := intQuery(r, "min_size", 0)
	if err != nil {
		respondBadRequest(w, r, err.Error(), map[string]interface{}{"parameter": "min_size"})
		return
	}
	q := ItemsetsQuery{MinSize: minSize, Limit: limit}
	if verr := validation.ValidateStruct(&q); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	st, err := h.snapshot()
	if err != nil {
		respondDomainError(w, r, err, nil)
		return
	}

	all := st.model.Itemsets()
	sets := make([]recommend.Itemset, 0, min(len(all), q.Limit))
	for _, set := range all {
		if set.Items.Len() < q.MinSize {
			continue
		}
		if q.Limit > 0 && len(sets) == q.Limit {
			break
		}
		sets = append(sets, set)
	}

	respondSuccess(w, r, start, st.fingerprint(), ItemsetList{Total: len(all), Count: len(sets), Itemsets: sets})
}
