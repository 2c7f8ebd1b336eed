// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package recommend

import "errors"

var (
	// ErrUnknownProduct is returned when a query names a product the fitted
	// model has not seen.
	ErrUnknownProduct = errors.New("unknown product")

	// ErrUnknownCustomer is returned when a query names a customer the fitted
	// model has not seen.
	ErrUnknownCustomer = errors.New("unknown customer")

	// ErrNotFitted is returned when a model is queried before Fit.
	ErrNotFitted = errors.New("model not fitted")
)
