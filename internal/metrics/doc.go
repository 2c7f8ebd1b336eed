// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

/*
Package metrics provides Prometheus metrics for the recommendation service.

Metrics are registered with the default registry through promauto and exposed
at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Dataset:
  - stylehive_dataset_load_duration_seconds{source}
  - stylehive_dataset_rows
  - stylehive_dataset_load_errors_total{source,error_type}

Models:
  - stylehive_model_fit_duration_seconds{model}
  - stylehive_model_fits_total{model,status}
  - stylehive_model_rules, stylehive_model_itemsets, stylehive_model_rank
  - stylehive_fit_cache_hits_total, stylehive_fit_cache_misses_total
  - stylehive_fit_cache_entries

Queries and API:
  - stylehive_recommendation_queries_total{method,outcome}
  - stylehive_recommendation_results{method}
  - stylehive_api_requests_total{method,endpoint,status_code}
  - stylehive_api_request_duration_seconds{method,endpoint}
  - stylehive_api_active_requests

Graph export:
  - stylehive_graph_export_duration_seconds
  - stylehive_graph_export_errors_total
  - stylehive_graph_edges_exported
*/
package metrics
