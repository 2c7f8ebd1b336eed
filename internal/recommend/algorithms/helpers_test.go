// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package algorithms

import (
	"math"
	"testing"
	"time"

	"github.com/tomtom215/stylehive/internal/recommend"
	"github.com/tomtom215/stylehive/internal/transactions"
)

const epsilon = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// datasetFromBaskets gives every basket its own customer and day.
func datasetFromBaskets(t *testing.T, baskets [][]string) *transactions.Dataset {
	t.Helper()
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	var rows []transactions.Row
	for i, b := range baskets {
		for _, p := range b {
			rows = append(rows, transactions.NewRow(i+1, p, start.AddDate(0, 0, i)))
		}
	}
	return transactions.NewDataset(rows)
}

// blockMatrix has two customer groups with disjoint tastes:
// customers 1-2 and 5 buy A/B, customers 3-4 buy C/D.
func blockMatrix() *transactions.Matrix {
	m := transactions.NewMatrix([]int{1, 2, 3, 4, 5}, []string{"A", "B", "C", "D"})
	m.Add(1, "A", 1)
	m.Add(1, "B", 1)
	m.Add(2, "A", 1)
	m.Add(2, "B", 1)
	m.Add(3, "C", 1)
	m.Add(3, "D", 1)
	m.Add(4, "C", 1)
	m.Add(4, "D", 1)
	m.Add(5, "A", 1)
	return m
}

func productsOf(recs []recommend.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Product
	}
	return out
}

func defaultParams() recommend.Hyperparameters {
	return recommend.DefaultConfig().Hyperparameters()
}
