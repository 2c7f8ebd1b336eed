// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package models

import (
	"time"

	"github.com/tomtom215/stylehive/internal/cache"
	"github.com/tomtom215/stylehive/internal/recommend"
)

// HealthStatus reports service readiness.
//
// Status is "healthy" once a model is serving and "starting" before that.
type HealthStatus struct {
	Status      string     `json:"status"`
	Version     string     `json:"version"`
	ModelReady  bool       `json:"model_ready"`
	DataSource  string     `json:"data_source,omitempty"`
	Rows        int        `json:"rows"`
	LastLoadAt  *time.Time `json:"last_load_at,omitempty"`
	Uptime      float64    `json:"uptime_seconds"`
	GraphExport bool       `json:"graph_export_enabled"`
}

// ModelStatus describes the serving model and the fit engine.
type ModelStatus struct {
	Model  *recommend.ModelInfo `json:"model,omitempty"`
	Engine recommend.FitStatus  `json:"engine"`
	Cache  cache.Stats          `json:"cache"`
}

// RecommendationList is the payload of every recommendation endpoint.
type RecommendationList struct {
	Query           map[string]interface{}     `json:"query"`
	Count           int                        `json:"count"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// FitResult is the payload of POST /model/fit.
type FitResult struct {
	Model      recommend.ModelInfo `json:"model"`
	Cached     bool                `json:"cached"`
	DurationMS int64               `json:"duration_ms"`
}
