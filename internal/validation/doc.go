// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the API handlers. It reports
// field errors under their JSON names so messages match request bodies,
// and registers a product tag for product names taken from paths, query
// strings and basket bodies.
//
// # Quick Start
//
//	type BasketRequest struct {
//	    Products []string `json:"products" validate:"min=1,max=50,unique,dive,product"`
//	    N        int      `json:"n" validate:"gte=0,lte=100"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// # Custom Tags
//
//   - product: non-empty, at most MaxProductNameLength bytes, no leading or
//     trailing whitespace, no control characters
//
// # Error Format
//
// ToAPIError produces a VALIDATION_ERROR with the failing field, tag and
// value for a single error, or a "fields" list when several fields fail.
// Hyperparameter bounds ("min_support must be greater than 0") come from
// the validate tags on recommend.Hyperparameters.
package validation
