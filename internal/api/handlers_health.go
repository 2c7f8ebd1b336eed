// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/stylehive/internal/models"
)

// Health handles GET /health. It answers 200 once a model is serving and
// 503 while starting, so it doubles as a readiness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	health := models.HealthStatus{
		Status:      "starting",
		Version:     h.version,
		Uptime:      time.Since(h.startTime).Seconds(),
		GraphExport: h.graphExport,
	}
	if h.source != nil {
		health.DataSource = h.source.Name()
	}

	status := http.StatusServiceUnavailable
	fingerprint := ""
	if st, err := h.snapshot(); err == nil {
		status = http.StatusOK
		health.Status = "healthy"
		health.ModelReady = true
		health.Rows = st.dataset.Len()
		loadedAt := st.loadedAt
		health.LastLoadAt = &loadedAt
		if src := st.dataset.Source(); src != "" {
			health.DataSource = src
		}
		fingerprint = st.fingerprint()
	}

	respondJSON(w, r, status, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     health,
		Metadata: newMetadata(r, start, fingerprint),
	})
}
