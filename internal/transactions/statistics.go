// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package transactions

import (
	"fmt"
	"sort"
	"time"
)

// ProductStats summarizes purchases of one product.
type ProductStats struct {
	Product                 string    `json:"product"`
	TotalPurchases          int       `json:"total_purchases"`
	UniqueCustomers         int       `json:"unique_customers"`
	AvgPurchasesPerCustomer float64   `json:"avg_purchases_per_customer"`
	FirstPurchase           time.Time `json:"first_purchase"`
	LastPurchase            time.Time `json:"last_purchase"`
	// PurchaseFrequency is purchases per distinct purchase day in the dataset.
	PurchaseFrequency float64 `json:"purchase_frequency"`
}

// ProductStatistics computes per-product statistics ordered by total
// purchases descending, then product name.
func (d *Dataset) ProductStatistics() ([]ProductStats, error) {
	type acc struct {
		stats     ProductStats
		customers map[int]struct{}
	}

	byProduct := make(map[string]*acc)
	for _, r := range d.rows {
		a, ok := byProduct[r.Product]
		if !ok {
			a = &acc{
				stats:     ProductStats{Product: r.Product, FirstPurchase: r.Date, LastPurchase: r.Date},
				customers: make(map[int]struct{}),
			}
			byProduct[r.Product] = a
		}
		a.stats.TotalPurchases++
		a.customers[r.CustomerID] = struct{}{}
		if r.Date.Before(a.stats.FirstPurchase) {
			a.stats.FirstPurchase = r.Date
		}
		if r.Date.After(a.stats.LastPurchase) {
			a.stats.LastPurchase = r.Date
		}
	}

	days := float64(d.UniqueDates())
	out := make([]ProductStats, 0, len(byProduct))
	for product, a := range byProduct {
		if len(a.customers) == 0 {
			return nil, fmt.Errorf("product %q has purchases but no customers: %w", product, ErrInconsistentDataset)
		}
		a.stats.UniqueCustomers = len(a.customers)
		a.stats.AvgPurchasesPerCustomer = float64(a.stats.TotalPurchases) / float64(a.stats.UniqueCustomers)
		a.stats.PurchaseFrequency = float64(a.stats.TotalPurchases) / days
		out = append(out, a.stats)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPurchases != out[j].TotalPurchases {
			return out[i].TotalPurchases > out[j].TotalPurchases
		}
		return out[i].Product < out[j].Product
	})
	return out, nil
}

// PurchaseCounts returns total purchases per product.
func (d *Dataset) PurchaseCounts() map[string]int {
	out := make(map[string]int)
	for _, r := range d.rows {
		out[r.Product]++
	}
	return out
}

// CustomerActivity summarizes one customer's purchasing.
type CustomerActivity struct {
	CustomerID         int       `json:"customer_id"`
	TotalPurchases     int       `json:"total_purchases"`
	ActiveDays         int       `json:"active_days"`
	FirstPurchase      time.Time `json:"first_purchase"`
	LastPurchase       time.Time `json:"last_purchase"`
	AvgPurchasesPerDay float64   `json:"avg_purchases_per_day"`
}

// CustomerActivity computes per-customer activity ordered by customer ID.
func (d *Dataset) CustomerActivity() []CustomerActivity {
	type acc struct {
		activity CustomerActivity
		days     map[string]struct{}
	}

	byCustomer := make(map[int]*acc)
	for _, r := range d.rows {
		a, ok := byCustomer[r.CustomerID]
		if !ok {
			a = &acc{
				activity: CustomerActivity{CustomerID: r.CustomerID, FirstPurchase: r.Date, LastPurchase: r.Date},
				days:     make(map[string]struct{}),
			}
			byCustomer[r.CustomerID] = a
		}
		a.activity.TotalPurchases++
		a.days[r.DateKey()] = struct{}{}
		if r.Date.Before(a.activity.FirstPurchase) {
			a.activity.FirstPurchase = r.Date
		}
		if r.Date.After(a.activity.LastPurchase) {
			a.activity.LastPurchase = r.Date
		}
	}

	out := make([]CustomerActivity, 0, len(byCustomer))
	for _, a := range byCustomer {
		a.activity.ActiveDays = len(a.days)
		a.activity.AvgPurchasesPerDay = float64(a.activity.TotalPurchases) / float64(a.activity.ActiveDays)
		out = append(out, a.activity)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}

// SeasonalCounts returns purchases per season per product.
func (d *Dataset) SeasonalCounts() map[Season]map[string]int {
	out := make(map[Season]map[string]int, 4)
	for _, s := range Seasons() {
		out[s] = make(map[string]int)
	}
	for _, r := range d.rows {
		out[r.Season()][r.Product]++
	}
	return out
}

// SeasonalShare returns, per product, the percentage of its purchases made
// in each season. Seasons without purchases report zero.
func (d *Dataset) SeasonalShare() map[string]map[Season]float64 {
	counts := d.SeasonalCounts()
	totals := d.PurchaseCounts()

	out := make(map[string]map[Season]float64, len(totals))
	for product, total := range totals {
		shares := make(map[Season]float64, 4)
		for _, s := range Seasons() {
			shares[s] = float64(counts[s][product]) / float64(total) * 100
		}
		out[product] = shares
	}
	return out
}

// DailySales is the purchase count of each product on one day.
type DailySales struct {
	Date  time.Time      `json:"date"`
	Sales map[string]int `json:"sales"`
}

// DailySales returns per-day product sales in date order. Every day lists
// every product, with zero for products not sold that day.
func (d *Dataset) DailySales() []DailySales {
	products := d.Products()
	index := make(map[int64]int)
	var out []DailySales
	for _, r := range d.rows {
		k := r.Date.Unix()
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			sales := make(map[string]int, len(products))
			for _, p := range products {
				sales[p] = 0
			}
			out = append(out, DailySales{Date: r.Date, Sales: sales})
		}
		out[i].Sales[r.Product]++
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
