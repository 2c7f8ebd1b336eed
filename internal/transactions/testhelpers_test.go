// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package transactions

import (
	"testing"
	"time"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

// fixtureRows mirrors testdata/transactions.csv.
func fixtureRows(t *testing.T) []Row {
	t.Helper()
	return []Row{
		NewRow(1, "White T-shirt", day(t, "2024-01-05")),
		NewRow(1, "Blue Jeans", day(t, "2024-01-05")),
		NewRow(2, "White T-shirt", day(t, "2024-01-05")),
		NewRow(2, "Blue Jeans", day(t, "2024-01-05")),
		NewRow(2, "Sneakers", day(t, "2024-01-05")),
		NewRow(3, "Sneakers", day(t, "2024-06-10")),
		NewRow(3, "Sunglasses", day(t, "2024-06-10")),
		NewRow(1, "Sunglasses", day(t, "2024-07-01")),
		NewRow(4, "Hoodie", day(t, "2024-10-12")),
	}
}
