// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - dataset loads
// - model fits and the fit cache
// - recommendation queries
// - API endpoint latency and throughput
// - graph export

var (
	// Dataset Metrics
	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stylehive_dataset_load_duration_seconds",
			Help:    "Duration of transaction dataset loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	DatasetRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylehive_dataset_rows",
			Help: "Number of transaction rows in the active dataset",
		},
	)

	DatasetLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylehive_dataset_load_errors_total",
			Help: "Total number of failed dataset loads",
		},
		[]string{"source", "error_type"},
	)

	// Model Metrics
	ModelFitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stylehive_model_fit_duration_seconds",
			Help:    "Duration of model fits in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"model"},
	)

	ModelFitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylehive_model_fits_total",
			Help: "Total number of model fits by outcome",
		},
		[]string{"model", "status"},
	)

	ModelRules = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylehive_model_rules",
			Help: "Number of association rules in the last fitted model",
		},
	)

	ModelItemsets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylehive_model_itemsets",
			Help: "Number of frequent itemsets in the last fitted model",
		},
	)

	ModelRank = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylehive_model_rank",
			Help: "Effective latent factor rank of the last fitted model",
		},
	)

	// Fit Cache Metrics
	FitCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stylehive_fit_cache_hits_total",
			Help: "Total number of fit cache hits",
		},
	)

	FitCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stylehive_fit_cache_misses_total",
			Help: "Total number of fit cache misses",
		},
	)

	FitCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylehive_fit_cache_entries",
			Help: "Current number of cached fitted models",
		},
	)

	// Query Metrics
	RecommendationQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylehive_recommendation_queries_total",
			Help: "Total number of recommendation queries by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stylehive_recommendation_results",
			Help:    "Number of recommendations returned per query",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
		[]string{"method"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylehive_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stylehive_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylehive_api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	// Graph Export Metrics
	GraphExportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stylehive_graph_export_duration_seconds",
			Help:    "Duration of affinity graph exports in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	GraphExportErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stylehive_graph_export_errors_total",
			Help: "Total number of failed affinity graph exports",
		},
	)

	GraphEdgesExported = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylehive_graph_edges_exported",
			Help: "Number of edges written by the last affinity graph export",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stylehive_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylehive_circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by result",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylehive_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// Query outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// RecordDatasetLoad records a dataset load.
func RecordDatasetLoad(source string, rows int, duration time.Duration, err error) {
	DatasetLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		DatasetLoadErrors.WithLabelValues(source, errorType(err)).Inc()
		return
	}
	DatasetRows.Set(float64(rows))
}

// RecordModelFit records a model fit.
func RecordModelFit(model string, duration time.Duration, err error) {
	ModelFitDuration.WithLabelValues(model).Observe(duration.Seconds())
	status := "success"
	if err != nil {
		status = "error"
	}
	ModelFitsTotal.WithLabelValues(model, status).Inc()
}

// UpdateModelGauges publishes the size of the last fitted model.
func UpdateModelGauges(itemsets, rules, rank int) {
	ModelItemsets.Set(float64(itemsets))
	ModelRules.Set(float64(rules))
	ModelRank.Set(float64(rank))
}

// RecordFitCache records a fit cache lookup.
func RecordFitCache(hit bool, entries int) {
	if hit {
		FitCacheHits.Inc()
	} else {
		FitCacheMisses.Inc()
	}
	FitCacheEntries.Set(float64(entries))
}

// RecordQuery records a recommendation query. Queries naming unknown
// products or customers go through RecordNotFound instead.
func RecordQuery(method string, results int, err error) {
	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeError
	case results == 0:
		outcome = OutcomeEmpty
	}
	RecommendationQueries.WithLabelValues(method, outcome).Inc()
	if err == nil {
		RecommendationResults.WithLabelValues(method).Observe(float64(results))
	}
}

// RecordNotFound records a query that named an unknown entity.
func RecordNotFound(method string) {
	RecommendationQueries.WithLabelValues(method, OutcomeNotFound).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordGraphExport records an affinity graph export.
func RecordGraphExport(edges int, duration time.Duration, err error) {
	GraphExportDuration.Observe(duration.Seconds())
	if err != nil {
		GraphExportErrors.Inc()
		return
	}
	GraphEdgesExported.Set(float64(edges))
}

// RecordBreakerResult records one call through a circuit breaker.
func RecordBreakerResult(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordBreakerTransition records a circuit breaker state change. States
// are "closed", "half-open" or "open".
func RecordBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	value := 0.0
	switch to {
	case "half-open":
		value = 1
	case "open":
		value = 2
	}
	CircuitBreakerState.WithLabelValues(name).Set(value)
}

// errorType truncates error text into a bounded label value.
func errorType(err error) string {
	msg := err.Error()
	if len(msg) > 50 {
		msg = msg[:50]
	}
	return msg
}
