// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package transactions

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DefaultMaxBaskets caps the number of baskets handed to itemset mining.
const DefaultMaxBaskets = 1000

// Dataset is an immutable batch of transaction rows.
type Dataset struct {
	rows        []Row
	source      string
	fingerprint uint64
}

// Load reads all rows from src. It returns ErrDataUnavailable when the
// source is missing or yields no rows.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("load %s: %w: no rows", src.Name(), ErrDataUnavailable)
	}

	ds := NewDataset(rows)
	ds.source = src.Name()
	return ds, nil
}

// NewDataset wraps rows in a Dataset. The slice is copied.
func NewDataset(rows []Row) *Dataset {
	cp := make([]Row, len(rows))
	copy(cp, rows)
	return &Dataset{
		rows:        cp,
		fingerprint: fingerprint(cp),
	}
}

// fingerprint hashes the canonical row encoding in row order.
func fingerprint(rows []Row) uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)
	for _, r := range rows {
		buf = buf[:0]
		buf = strconv.AppendInt(buf, int64(r.CustomerID), 10)
		buf = append(buf, 0x1f)
		buf = append(buf, r.Product...)
		buf = append(buf, 0x1f)
		buf = r.Date.AppendFormat(buf, DateLayout)
		buf = append(buf, '\n')
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}

// Fingerprint identifies the dataset contents. Equal rows in equal order
// produce equal fingerprints.
func (d *Dataset) Fingerprint() uint64 { return d.fingerprint }

// Source names where the rows were loaded from, if known.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Rows returns a copy of the rows.
func (d *Dataset) Rows() []Row {
	cp := make([]Row, len(d.rows))
	copy(cp, d.rows)
	return cp
}

// Customers returns the distinct customer IDs in ascending order.
func (d *Dataset) Customers() []int {
	seen := make(map[int]struct{})
	var out []int
	for _, r := range d.rows {
		if _, ok := seen[r.CustomerID]; !ok {
			seen[r.CustomerID] = struct{}{}
			out = append(out, r.CustomerID)
		}
	}
	sort.Ints(out)
	return out
}

// Products returns the distinct product names in ascending order.
func (d *Dataset) Products() []string {
	out := d.ProductsInOrder()
	sort.Strings(out)
	return out
}

// ProductsInOrder returns the distinct product names in order of first appearance.
func (d *Dataset) ProductsInOrder() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range d.rows {
		if _, ok := seen[r.Product]; !ok {
			seen[r.Product] = struct{}{}
			out = append(out, r.Product)
		}
	}
	return out
}

// DateRange returns the earliest and latest purchase dates.
func (d *Dataset) DateRange() (first, last time.Time) {
	for i, r := range d.rows {
		if i == 0 || r.Date.Before(first) {
			first = r.Date
		}
		if i == 0 || r.Date.After(last) {
			last = r.Date
		}
	}
	return first, last
}

// UniqueDates returns the number of distinct purchase days.
func (d *Dataset) UniqueDates() int {
	seen := make(map[string]struct{})
	for _, r := range d.rows {
		seen[r.DateKey()] = struct{}{}
	}
	return len(seen)
}

// Basket is the set of products one customer bought on one day.
// Products keep row order and may repeat.
type Basket struct {
	CustomerID int       `json:"customer_id"`
	Date       time.Time `json:"date"`
	Products   []string  `json:"products"`
}

// Baskets groups rows by (customer, date) in order of first occurrence.
// Products keep their row order within a basket.
func (d *Dataset) Baskets() []Basket {
	type key struct {
		customer int
		date     int64
	}
	index := make(map[key]int)
	var baskets []Basket
	for _, r := range d.rows {
		k := key{r.CustomerID, r.Date.Unix()}
		i, ok := index[k]
		if !ok {
			i = len(baskets)
			index[k] = i
			baskets = append(baskets, Basket{CustomerID: r.CustomerID, Date: r.Date})
		}
		baskets[i].Products = append(baskets[i].Products, r.Product)
	}
	return baskets
}

// BasketProducts returns the product lists of all baskets.
func (d *Dataset) BasketProducts() [][]string {
	baskets := d.Baskets()
	out := make([][]string, len(baskets))
	for i, b := range baskets {
		out[i] = b.Products
	}
	return out
}

// MiningBaskets returns the product lists of baskets holding more than one
// product, truncated to limit. A limit <= 0 disables truncation.
func (d *Dataset) MiningBaskets(limit int) [][]string {
	var out [][]string
	for _, b := range d.Baskets() {
		if len(b.Products) <= 1 {
			continue
		}
		out = append(out, b.Products)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Matrix is a dense customer by product purchase-count matrix.
type Matrix struct {
	Customers []int       `json:"customers"`
	Products  []string    `json:"products"`
	Counts    [][]float64 `json:"counts"`

	customerIndex map[int]int
	productIndex  map[string]int
}

// CustomerProductMatrix counts purchases per (customer, product). Absent
// pairs are zero. Rows follow ascending customer ID and columns ascending
// product name.
func (d *Dataset) CustomerProductMatrix() *Matrix {
	m := NewMatrix(d.Customers(), d.Products())
	for _, r := range d.rows {
		m.Add(r.CustomerID, r.Product, 1)
	}
	return m
}

// NewMatrix allocates a zero matrix with the given axes.
func NewMatrix(customers []int, products []string) *Matrix {
	m := &Matrix{
		Customers:     customers,
		Products:      products,
		Counts:        make([][]float64, len(customers)),
		customerIndex: make(map[int]int, len(customers)),
		productIndex:  make(map[string]int, len(products)),
	}
	for i, c := range customers {
		m.customerIndex[c] = i
		m.Counts[i] = make([]float64, len(products))
	}
	for j, p := range products {
		m.productIndex[p] = j
	}
	return m
}

// Dims returns the number of customers and products.
func (m *Matrix) Dims() (customers, products int) {
	return len(m.Customers), len(m.Products)
}

// CustomerIndex returns the row of a customer.
func (m *Matrix) CustomerIndex(customerID int) (int, bool) {
	i, ok := m.customerIndex[customerID]
	return i, ok
}

// ProductIndex returns the column of a product.
func (m *Matrix) ProductIndex(product string) (int, bool) {
	j, ok := m.productIndex[product]
	return j, ok
}

// Add increments a cell by delta. Unknown customers or products are ignored.
func (m *Matrix) Add(customerID int, product string, delta float64) {
	i, ok := m.customerIndex[customerID]
	if !ok {
		return
	}
	j, ok := m.productIndex[product]
	if !ok {
		return
	}
	m.Counts[i][j] += delta
}
