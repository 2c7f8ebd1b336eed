// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

// Package cooccurrence counts how often two products land in the same basket.
//
// The matrix is dense over the product axis and recomputed from scratch on
// every call. For every basket holding more than one product, each ordered
// pair of positions (i, j) with i != j increments count(basket[i], basket[j]),
// so the matrix is symmetric by construction. A product never pairs with
// itself, which keeps the diagonal at zero. Counts are per position, not per
// basket: a basket [A, A, B] adds 2 to count(A, B). Callers wanting "baskets
// containing both" must de-duplicate basket products first.
//
// Cost is O(sum of squared basket sizes) plus O(products^2) memory, which is
// the scaling boundary for catalogs of a few thousand products.
package cooccurrence

import (
	"sort"

	"github.com/tomtom215/stylehive/internal/transactions"
)

// Pair is one ordered cell of the matrix.
type Pair struct {
	Product1 string `json:"product1"`
	Product2 string `json:"product2"`
	Count    int    `json:"count"`
}

// Matrix holds co-occurrence counts over a sorted product axis.
type Matrix struct {
	products []string
	index    map[string]int
	counts   [][]int
}

// FromDataset computes the matrix over every product in ds and every basket
// of ds, without the mining cap.
func FromDataset(ds *transactions.Dataset) *Matrix {
	return Compute(ds.Products(), ds.BasketProducts())
}

// Compute counts co-occurrences. The product axis is the union of products
// and every product seen in baskets, sorted by name.
func Compute(products []string, baskets [][]string) *Matrix {
	seen := make(map[string]struct{}, len(products))
	axis := make([]string, 0, len(products))
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			axis = append(axis, p)
		}
	}
	for _, p := range products {
		add(p)
	}
	for _, b := range baskets {
		for _, p := range b {
			add(p)
		}
	}
	sort.Strings(axis)

	m := &Matrix{
		products: axis,
		index:    make(map[string]int, len(axis)),
		counts:   make([][]int, len(axis)),
	}
	for i, p := range axis {
		m.index[p] = i
		m.counts[i] = make([]int, len(axis))
	}

	for _, basket := range baskets {
		if len(basket) < 2 {
			continue
		}
		for i, p1 := range basket {
			a := m.index[p1]
			for j, p2 := range basket {
				if i == j || p1 == p2 {
					continue
				}
				m.counts[a][m.index[p2]]++
			}
		}
	}

	return m
}

// Products returns the product axis in ascending order.
func (m *Matrix) Products() []string {
	out := make([]string, len(m.products))
	copy(out, m.products)
	return out
}

// Len returns the size of the product axis.
func (m *Matrix) Len() int { return len(m.products) }

// Count returns the co-occurrence of two products, zero when either is unknown.
func (m *Matrix) Count(a, b string) int {
	i, ok := m.index[a]
	if !ok {
		return 0
	}
	j, ok := m.index[b]
	if !ok {
		return 0
	}
	return m.counts[i][j]
}

// Row returns the counts of product against every product on the axis.
// Returns nil for unknown products.
func (m *Matrix) Row(product string) map[string]int {
	i, ok := m.index[product]
	if !ok {
		return nil
	}
	out := make(map[string]int, len(m.products))
	for j, p := range m.products {
		out[p] = m.counts[i][j]
	}
	return out
}

// Pairs returns every ordered pair with a positive count, in row-major
// product order.
func (m *Matrix) Pairs() []Pair {
	var out []Pair
	for i, p1 := range m.products {
		for j, p2 := range m.products {
			if c := m.counts[i][j]; c > 0 {
				out = append(out, Pair{Product1: p1, Product2: p2, Count: c})
			}
		}
	}
	return out
}

// Dense returns a copy of the full count grid, rows and columns following
// Products.
func (m *Matrix) Dense() [][]int {
	out := make([][]int, len(m.counts))
	for i, row := range m.counts {
		out[i] = make([]int, len(row))
		copy(out[i], row)
	}
	return out
}
