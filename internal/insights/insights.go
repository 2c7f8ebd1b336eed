// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

// Package insights builds read-only merchandising reports over a dataset:
// KPIs, top products, co-purchase insights, seasonal champions, customer
// segments, the product affinity network, and the dashboard summary that
// combines them.
//
// An Analyzer computes product statistics and the co-occurrence matrix once
// at construction. Every report is derived from those and the dataset, so
// reports are deterministic and safe to call concurrently.
package insights

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tomtom215/stylehive/internal/cooccurrence"
	"github.com/tomtom215/stylehive/internal/transactions"
)

// Analyzer produces insight reports for one dataset.
type Analyzer struct {
	ds     *transactions.Dataset
	cfg    *Config
	prices *PriceTable
	stats  []transactions.ProductStats
	totals map[string]int
	cooc   *cooccurrence.Matrix
	logger zerolog.Logger
}

// NewAnalyzer computes product statistics and co-occurrence for ds.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAnalyzer(ds *transactions.Dataset, cfg *Config, logger zerolog.Logger) (*Analyzer, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("insights: %w", transactions.ErrDataUnavailable)
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid insights config: %w", err)
	}

	stats, err := ds.ProductStatistics()
	if err != nil {
		return nil, fmt.Errorf("product statistics: %w", err)
	}

	a := &Analyzer{
		ds:     ds,
		cfg:    cfg,
		prices: NewPriceTable(cfg.Prices),
		stats:  stats,
		totals: ds.PurchaseCounts(),
		cooc:   cooccurrence.FromDataset(ds),
		logger: logger.With().Str("component", "insights").Logger(),
	}
	a.logger.Debug().
		Int("products", len(stats)).
		Int("rows", ds.Len()).
		Msg("insight analyzer ready")
	return a, nil
}

// Dataset returns the analyzed dataset.
func (a *Analyzer) Dataset() *transactions.Dataset { return a.ds }

// CoOccurrence returns the co-occurrence matrix.
func (a *Analyzer) CoOccurrence() *cooccurrence.Matrix { return a.cooc }

// ProductStatistics returns per-product statistics, best sellers first.
func (a *Analyzer) ProductStatistics() []transactions.ProductStats {
	out := make([]transactions.ProductStats, len(a.stats))
	copy(out, a.stats)
	return out
}

// KPIs are headline dataset metrics. Money values are exact decimals
// rounded to cents.
type KPIs struct {
	TotalTransactions    int             `json:"total_transactions"`
	UniqueCustomers      int             `json:"unique_customers"`
	UniqueProducts       int             `json:"unique_products"`
	Baskets              int             `json:"baskets"`
	AvgBasketSize        float64         `json:"avg_basket_size"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	AvgOrderValue        decimal.Decimal `json:"avg_order_value"`
	UnpricedTransactions int             `json:"unpriced_transactions"`
	DateRange            string          `json:"date_range"`
}

// KPIs computes headline metrics. A basket is one customer's purchases on
// one day; average order value is revenue per basket.
func (a *Analyzer) KPIs() KPIs {
	baskets := a.ds.Baskets()

	products := make([]string, 0, a.ds.Len())
	for _, r := range a.ds.Rows() {
		products = append(products, r.Product)
	}
	revenue, unpriced := a.prices.Revenue(products)
	if unpriced > 0 {
		a.logger.Warn().Int("transactions", unpriced).Msg("transactions without a price excluded from revenue")
	}

	var avgBasket float64
	aov := decimal.Zero
	if n := len(baskets); n > 0 {
		avgBasket = float64(a.ds.Len()) / float64(n)
		aov = revenue.Div(decimal.NewFromInt(int64(n)))
	}

	first, last := a.ds.DateRange()
	return KPIs{
		TotalTransactions:    a.ds.Len(),
		UniqueCustomers:      len(a.ds.Customers()),
		UniqueProducts:       len(a.ds.Products()),
		Baskets:              len(baskets),
		AvgBasketSize:        round(avgBasket, 2),
		TotalRevenue:         revenue.Round(2),
		AvgOrderValue:        aov.Round(2),
		UnpricedTransactions: unpriced,
		DateRange: fmt.Sprintf("%s to %s",
			first.Format(transactions.DateLayout), last.Format(transactions.DateLayout)),
	}
}

// TopProduct is one row of the best-seller report.
type TopProduct struct {
	Product         string `json:"product"`
	TotalPurchases  int    `json:"total_purchases"`
	UniqueCustomers int    `json:"unique_customers"`
}

// TopProducts returns the n best-selling products. Non-positive n uses the
// configured default.
func (a *Analyzer) TopProducts(n int) []TopProduct {
	if n <= 0 {
		n = a.cfg.TopProducts
	}
	n = min(n, len(a.stats))
	out := make([]TopProduct, n)
	for i, s := range a.stats[:n] {
		out[i] = TopProduct{
			Product:         s.Product,
			TotalPurchases:  s.TotalPurchases,
			UniqueCustomers: s.UniqueCustomers,
		}
	}
	return out
}

// CustomerSummary reports customer-level aggregates.
type CustomerSummary struct {
	TotalCustomers          int     `json:"total_customers"`
	AvgPurchasesPerCustomer float64 `json:"avg_purchases_per_customer"`
	MostActiveCustomer      int     `json:"most_active_customer"`
	MostActivePurchases     int     `json:"most_active_purchases"`
}

// CustomerInsights summarizes customer activity. Ties for most active go to
// the lowest customer ID.
func (a *Analyzer) CustomerInsights() CustomerSummary {
	activity := a.ds.CustomerActivity()
	var out CustomerSummary
	out.TotalCustomers = len(activity)
	if len(activity) == 0 {
		return out
	}

	total := 0
	for _, c := range activity {
		total += c.TotalPurchases
		if c.TotalPurchases > out.MostActivePurchases {
			out.MostActiveCustomer = c.CustomerID
			out.MostActivePurchases = c.TotalPurchases
		}
	}
	out.AvgPurchasesPerCustomer = round(float64(total)/float64(len(activity)), 2)
	return out
}

// round rounds half away from zero to the given decimal places.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
