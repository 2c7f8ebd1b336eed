// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

/*
Package api provides the HTTP REST API for StyleHive.

The API serves recommendations and merchandising insights from a fitted
model held in memory. A Handler owns the serving state (dataset, model,
insight analyzer and cached dashboard summary) and swaps it atomically
under a read-write mutex when the dataset is reloaded or the model refit.
Queries always observe one consistent state.

# Endpoints

Recommendations:
  - GET  /api/v1/recommendations/product/{product}: rule-based, for one product
  - POST /api/v1/recommendations/basket: rule-based, for a basket
  - GET  /api/v1/recommendations/similar/{product}: latent-factor neighbors
  - GET  /api/v1/recommendations/customer/{customerID}: latent-factor, for a customer
  - GET  /api/v1/recommendations/hybrid/{product}: weighted blend of both
  - GET  /api/v1/rules and /api/v1/itemsets: mined association rules and itemsets

Insights:
  - GET /api/v1/insights/kpis, top-products, co-purchases, seasonal,
    segments, affinity-network, customers, daily-sales, summary

Model:
  - GET  /api/v1/model: serving model, fit status, fit cache counters
  - POST /api/v1/model/fit: refit with validated hyperparameters

Operations:
  - GET /health and /api/v1/health
  - GET /metrics (Prometheus)

# Response Format

Every endpoint answers with the models.APIResponse envelope. Errors carry a
stable code:

	VALIDATION_ERROR   400  malformed or out-of-range input
	UNKNOWN_PRODUCT    404  product absent from the latent-factor model
	UNKNOWN_CUSTOMER   404  customer absent from the latent-factor model
	NOT_FOUND          404  no such route
	FIT_IN_PROGRESS    409  another refit is running
	RATE_LIMIT_EXCEEDED 429
	MODEL_NOT_READY    503  no dataset loaded yet
	FIT_TIMEOUT        504  refit exceeded server.fit_timeout
	INTERNAL_ERROR     500

Unknown products on rule-based and hybrid endpoints yield an empty list,
not an error.

# Middleware

Routes run behind chi's RealIP, Recoverer and Compress middleware, request
IDs and access logging from internal/middleware, go-chi/cors, go-chi/httprate
(per-IP) and Prometheus request metrics keyed by route pattern.
*/
package api
