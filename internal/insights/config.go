// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package insights

import (
	"errors"
	"fmt"
)

// Config contains thresholds and the price table for insight reports.
type Config struct {
	// Prices maps product names to unit prices. Products without a price
	// contribute nothing to revenue.
	Prices map[string]float64 `json:"prices"`

	// TopProducts is the default size of the top-products report.
	// Default: 5.
	TopProducts int `json:"top_products"`

	// CoPurchaseMinPercent is the exclusive lower bound on co-purchase rate.
	// Default: 20.
	CoPurchaseMinPercent float64 `json:"co_purchase_min_percent"`

	// CoPurchaseLimit caps co-purchase insights.
	// Default: 10.
	CoPurchaseLimit int `json:"co_purchase_limit"`

	// SummaryCoPurchases is how many co-purchase insights the dashboard
	// summary carries.
	// Default: 5.
	SummaryCoPurchases int `json:"summary_co_purchases"`

	// AffinityMinCount is the exclusive lower bound on co-occurrence for an
	// affinity edge.
	// Default: 5.
	AffinityMinCount int `json:"affinity_min_count"`

	// AffinityLimit caps affinity edges.
	// Default: 20.
	AffinityLimit int `json:"affinity_limit"`

	// Segments contains customer segmentation thresholds.
	Segments SegmentThresholds `json:"segments"`
}

// SegmentThresholds define customer value segments.
type SegmentThresholds struct {
	// HighValueMinPurchases and HighValueMinPerDay must both be met for
	// High Value.
	// Default: 10 and 0.5.
	HighValueMinPurchases int     `json:"high_value_min_purchases"`
	HighValueMinPerDay    float64 `json:"high_value_min_per_day"`

	// MediumValueMinPurchases is the Medium Value floor.
	// Default: 5.
	MediumValueMinPurchases int `json:"medium_value_min_purchases"`
}

// DefaultPrices is the StyleHive catalog price list.
func DefaultPrices() map[string]float64 {
	return map[string]float64{
		"White T-shirt":  25,
		"Blue Jeans":     60,
		"Sneakers":       80,
		"Leather Jacket": 200,
		"Sunglasses":     50,
		"Backpack":       40,
		"Hoodie":         45,
		"Formal Shirt":   70,
		"Dress Shoes":    120,
		"Smartwatch":     300,
	}
}

// DefaultSegmentThresholds returns the standard segmentation thresholds.
func DefaultSegmentThresholds() SegmentThresholds {
	return SegmentThresholds{
		HighValueMinPurchases:   10,
		HighValueMinPerDay:      0.5,
		MediumValueMinPurchases: 5,
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Prices:               DefaultPrices(),
		TopProducts:          5,
		CoPurchaseMinPercent: 20,
		CoPurchaseLimit:      10,
		SummaryCoPurchases:   5,
		AffinityMinCount:     5,
		AffinityLimit:        20,
		Segments:             DefaultSegmentThresholds(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	for product, price := range c.Prices {
		if product == "" {
			return errors.New("prices: empty product name")
		}
		if price < 0 {
			return fmt.Errorf("prices.%s must be non-negative, got %f", product, price)
		}
	}
	if c.TopProducts < 1 {
		return fmt.Errorf("top_products must be positive, got %d", c.TopProducts)
	}
	if c.CoPurchaseMinPercent < 0 || c.CoPurchaseMinPercent > 100 {
		return fmt.Errorf("co_purchase_min_percent must be in [0, 100], got %f", c.CoPurchaseMinPercent)
	}
	if c.CoPurchaseLimit < 1 {
		return fmt.Errorf("co_purchase_limit must be positive, got %d", c.CoPurchaseLimit)
	}
	if c.SummaryCoPurchases < 0 {
		return fmt.Errorf("summary_co_purchases must be non-negative, got %d", c.SummaryCoPurchases)
	}
	if c.AffinityMinCount < 0 {
		return fmt.Errorf("affinity_min_count must be non-negative, got %d", c.AffinityMinCount)
	}
	if c.AffinityLimit < 1 {
		return fmt.Errorf("affinity_limit must be positive, got %d", c.AffinityLimit)
	}
	if c.Segments.MediumValueMinPurchases > c.Segments.HighValueMinPurchases {
		return errors.New("segments.medium_value_min_purchases must not exceed high_value_min_purchases")
	}
	return nil
}
