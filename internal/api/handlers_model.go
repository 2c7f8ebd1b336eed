// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/stylehive/internal/models"
	"github.com/tomtom215/stylehive/internal/validation"
)

// Model handles GET /api/v1/model.
func (h *Handler) Model(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := models.ModelStatus{
		Engine: h.engine.Status(),
		Cache:  h.engine.CacheStats(),
	}

	fingerprint := ""
	if st, err := h.snapshot(); err == nil {
		info := st.model.Info()
		status.Model = &info
		fingerprint = st.fingerprint()
	}

	respondSuccess(w, r, start, fingerprint, status)
}

// Fit handles POST /api/v1/model/fit. The body overrides the current
// hyperparameters field by field; an empty object refits with them as is.
func (h *Handler) Fit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req FitRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondBadRequest(w, r, err.Error(), nil)
		return
	}

	params := req.apply(h.Params())
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	if err := params.Validate(); err != nil {
		respondBadRequest(w, r, err.Error(), nil)
		return
	}

	model, cached, err := h.Refit(r.Context(), params, req.Force)
	if err != nil {
		respondDomainError(w, r, err, nil)
		return
	}

	info := model.Info()
	respondSuccess(w, r, start, info.Fingerprint, models.FitResult{
		Model:      info,
		Cached:     cached,
		DurationMS: time.Since(start).Milliseconds(),
	})
}
