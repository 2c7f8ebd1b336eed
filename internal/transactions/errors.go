// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package transactions

import (
	"errors"
	"io"
)

var (
	// ErrDataUnavailable is returned when the transaction source is missing,
	// unreadable, or yields zero rows.
	ErrDataUnavailable = errors.New("transaction data unavailable")

	// ErrInconsistentDataset signals a violated dataset invariant, such as a
	// product with purchases but no purchasing customers.
	ErrInconsistentDataset = errors.New("inconsistent transaction dataset")
)

// closeQuietly closes a resource and ignores the error.
// Used in read paths where Close errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
