// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tomtom215/stylehive/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which requests log at warn.
const DefaultSlowRequestThreshold = time.Second

// AccessLog logs one line per request through the request-scoped logger.
// Server errors and requests slower than slow log at warn, everything else
// at debug.
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	if slow <= 0 {
		slow = DefaultSlowRequestThreshold
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			logger := logging.Ctx(r.Context())
			var event *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				event = logger.Warn()
			case duration > slow:
				event = logger.Warn().Bool("slow", true)
			default:
				event = logger.Debug()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", duration).
				Msg("http request")
		})
	}
}
