// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package insights

import (
	"sort"

	"github.com/tomtom215/stylehive/internal/transactions"
)

// Champion is the best-selling product of a season.
type Champion struct {
	Product   string `json:"product"`
	Purchases int    `json:"purchases"`
}

// SeasonTrend is one product's purchases per season.
type SeasonTrend struct {
	Spring int `json:"spring"`
	Summer int `json:"summer"`
	Fall   int `json:"fall"`
	Winter int `json:"winter"`
}

// Seasonal is the seasonal report.
type Seasonal struct {
	Champions map[transactions.Season]Champion `json:"champions"`
	Trends    map[string]SeasonTrend           `json:"trends"`
	// Share is each product's percentage of purchases per season.
	Share map[string]map[transactions.Season]float64 `json:"share"`
}

// SeasonalInsights finds each season's champion and every product's
// seasonal trend. Seasons without purchases have no champion; ties go to
// the product first in name order.
func (a *Analyzer) SeasonalInsights() Seasonal {
	counts := a.ds.SeasonalCounts()

	out := Seasonal{
		Champions: make(map[transactions.Season]Champion, 4),
		Trends:    make(map[string]SeasonTrend, len(a.totals)),
		Share:     a.ds.SeasonalShare(),
	}

	for _, season := range transactions.Seasons() {
		products := make([]string, 0, len(counts[season]))
		for p := range counts[season] {
			products = append(products, p)
		}
		if len(products) == 0 {
			continue
		}
		sort.Strings(products)

		best := Champion{Product: products[0], Purchases: counts[season][products[0]]}
		for _, p := range products[1:] {
			if n := counts[season][p]; n > best.Purchases {
				best = Champion{Product: p, Purchases: n}
			}
		}
		out.Champions[season] = best
	}

	for product := range a.totals {
		out.Trends[product] = SeasonTrend{
			Spring: counts[transactions.Spring][product],
			Summer: counts[transactions.Summer][product],
			Fall:   counts[transactions.Fall][product],
			Winter: counts[transactions.Winter][product],
		}
	}
	return out
}
