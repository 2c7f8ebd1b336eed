// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"

	"github.com/tomtom215/stylehive/internal/logging"
	"github.com/tomtom215/stylehive/internal/middleware"
	"github.com/tomtom215/stylehive/internal/models"
)

// sanitizeLogValue escapes control characters so request input cannot
// forge log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// newMetadata stamps response metadata for r.
func newMetadata(r *http.Request, start time.Time, fingerprint string) models.Metadata {
	return models.Metadata{
		Timestamp:        time.Now().UTC(),
		QueryTimeMS:      time.Since(start).Milliseconds(),
		RequestID:        middleware.GetRequestID(r.Context()),
		ModelFingerprint: fingerprint,
	}
}

// respondJSON writes the envelope with an ETag over the payload. Successful
// GETs whose ETag matches If-None-Match get 304 Not Modified.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Vary", "Accept-Encoding")

	if status == http.StatusOK && response.Status == models.StatusSuccess {
		etag := generateETag(response.Data)
		w.Header().Set("ETag", etag)
		if r.Method == http.MethodGet && r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to write JSON response")
	}
}

// generateETag hashes the payload only, so metadata such as timestamps and
// query times do not defeat revalidation.
func generateETag(payload interface{}) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return `"` + strconv.FormatUint(xxhash.Sum64(data), 16) + `"`
}

// respondSuccess writes a 200 envelope around data.
func respondSuccess(w http.ResponseWriter, r *http.Request, start time.Time, fingerprint string, data interface{}) {
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     data,
		Metadata: newMetadata(r, start, fingerprint),
	})
}

// respondError writes an error envelope. A non-nil err is logged with the
// request's logger.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Str("code", code).Str("error", sanitizeLogValue(err.Error())).Msg("API error")
	}

	respondJSON(w, r, status, &models.APIResponse{
		Status:   models.StatusError,
		Data:     nil,
		Metadata: models.Metadata{Timestamp: time.Now().UTC(), RequestID: middleware.GetRequestID(r.Context())},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
