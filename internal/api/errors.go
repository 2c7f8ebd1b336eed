// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/stylehive/internal/recommend"
	"github.com/tomtom215/stylehive/internal/transactions"
	"github.com/tomtom215/stylehive/internal/validation"
)

// Error codes returned in the response envelope.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnknownProd   = "UNKNOWN_PRODUCT"
	CodeUnknownCust   = "UNKNOWN_CUSTOMER"
	CodeNotFound      = "NOT_FOUND"
	CodeMethod        = "METHOD_NOT_ALLOWED"
	CodeFitInProgress = "FIT_IN_PROGRESS"
	CodeRateLimited   = "RATE_LIMIT_EXCEEDED"
	CodeNotReady      = "MODEL_NOT_READY"
	CodeFitTimeout    = "FIT_TIMEOUT"
	CodeInternal      = "INTERNAL_ERROR"
)

var (
	// ErrNotReady is returned while no dataset has been installed.
	ErrNotReady = errors.New("no model is serving yet")

	// ErrFitInProgress is returned when a refit is requested while another
	// refit or reload is running.
	ErrFitInProgress = errors.New("a fit is already in progress")
)

// apiError is a resolved status, code and client message for an error.
type apiError struct {
	status  int
	code    string
	message string
}

// classifyError maps domain errors to HTTP responses.
func classifyError(err error) apiError {
	switch {
	case errors.Is(err, recommend.ErrUnknownProduct):
		return apiError{http.StatusNotFound, CodeUnknownProd, "Product not found in the fitted model"}
	case errors.Is(err, recommend.ErrUnknownCustomer):
		return apiError{http.StatusNotFound, CodeUnknownCust, "Customer not found in the fitted model"}
	case errors.Is(err, ErrFitInProgress):
		return apiError{http.StatusConflict, CodeFitInProgress, "A model fit is already in progress"}
	case errors.Is(err, ErrNotReady),
		errors.Is(err, recommend.ErrNotFitted),
		errors.Is(err, transactions.ErrDataUnavailable):
		return apiError{http.StatusServiceUnavailable, CodeNotReady, "Model is not ready"}
	case errors.Is(err, context.DeadlineExceeded):
		return apiError{http.StatusGatewayTimeout, CodeFitTimeout, "Model fit timed out"}
	default:
		return apiError{http.StatusInternalServerError, CodeInternal, "Internal server error"}
	}
}

// respondDomainError writes the envelope for err. details is attached to
// client errors only.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error, details map[string]interface{}) {
	e := classifyError(err)
	if e.status >= http.StatusInternalServerError {
		details = nil
	}
	respondError(w, r, e.status, e.code, e.message, details, err)
}

// respondValidationError writes a 400 for failed struct validation.
func respondValidationError(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
}

// respondBadRequest writes a 400 with a single message.
func respondBadRequest(w http.ResponseWriter, r *http.Request, message string, details map[string]interface{}) {
	respondError(w, r, http.StatusBadRequest, CodeValidation, message, details, nil)
}
