// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

/*
Package middleware provides HTTP middleware for the StyleHive API.

All middleware has the chi signature func(http.Handler) http.Handler.

Key Components:

  - RequestID: request and correlation IDs in the header and logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - AccessLog: one structured log line per request, warn for slow requests
    and server errors

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    ...
	})

RequestID must run before AccessLog so log lines carry the request ID.
*/
package middleware
