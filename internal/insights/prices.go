// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package insights

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PriceTable holds exact unit prices per product.
type PriceTable struct {
	prices map[string]decimal.Decimal
}

// NewPriceTable converts a float price list to decimals.
func NewPriceTable(prices map[string]float64) *PriceTable {
	t := &PriceTable{prices: make(map[string]decimal.Decimal, len(prices))}
	for product, price := range prices {
		t.prices[product] = decimal.NewFromFloat(price)
	}
	return t
}

// Price returns the unit price of product.
func (t *PriceTable) Price(product string) (decimal.Decimal, bool) {
	p, ok := t.prices[product]
	return p, ok
}

// Products returns the priced products in name order.
func (t *PriceTable) Products() []string {
	out := make([]string, 0, len(t.prices))
	for p := range t.prices {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Revenue sums the unit price of every purchase. Purchases of unpriced
// products are counted separately and add nothing.
func (t *PriceTable) Revenue(products []string) (total decimal.Decimal, unpriced int) {
	total = decimal.Zero
	for _, p := range products {
		price, ok := t.prices[p]
		if !ok {
			unpriced++
			continue
		}
		total = total.Add(price)
	}
	return total, unpriced
}
