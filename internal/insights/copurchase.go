// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package insights

import (
	"fmt"
	"sort"
)

// CoPurchase is a significant co-purchase: Percentage of Product1's
// purchases that shared a basket with Product2.
type CoPurchase struct {
	Product1    string  `json:"product1"`
	Product2    string  `json:"product2"`
	CoPurchases int     `json:"co_purchases"`
	Percentage  float64 `json:"percentage"`
	Insight     string  `json:"insight"`
}

// CoPurchaseInsights returns ordered product pairs whose co-purchase rate
// exceeds the configured minimum, highest first, capped at the configured
// limit. Rates are relative to the first product's total purchases and
// rounded to one decimal; ties keep product name order.
func (a *Analyzer) CoPurchaseInsights() []CoPurchase {
	var out []CoPurchase
	for _, pair := range a.cooc.Pairs() {
		total := a.totals[pair.Product1]
		if total == 0 {
			continue
		}
		pct := float64(pair.Count) / float64(total) * 100
		if pct <= a.cfg.CoPurchaseMinPercent {
			continue
		}
		out = append(out, CoPurchase{
			Product1:    pair.Product1,
			Product2:    pair.Product2,
			CoPurchases: pair.Count,
			Percentage:  round(pct, 1),
			Insight: fmt.Sprintf("%.1f%% of customers who bought %s also bought %s",
				pct, pair.Product1, pair.Product2),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percentage > out[j].Percentage
	})
	if len(out) > a.cfg.CoPurchaseLimit {
		out = out[:a.cfg.CoPurchaseLimit]
	}
	if out == nil {
		out = []CoPurchase{}
	}
	return out
}

// AffinityEdge is a directed co-purchase link between two products.
type AffinityEdge struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Weight   int     `json:"weight"`
	Strength float64 `json:"strength"`
}

// AffinityNetwork is a product graph for visualization and export.
type AffinityNetwork struct {
	Nodes []string       `json:"nodes"`
	Edges []AffinityEdge `json:"edges"`
}

// AffinityNetwork returns the strongest co-purchase edges. An edge needs a
// co-occurrence count above the configured minimum; strength is the count
// divided by the source product's total purchases. Nodes list every product
// in order of first purchase.
func (a *Analyzer) AffinityNetwork() AffinityNetwork {
	edges := []AffinityEdge{}
	for _, pair := range a.cooc.Pairs() {
		if pair.Count <= a.cfg.AffinityMinCount {
			continue
		}
		total := a.totals[pair.Product1]
		if total == 0 {
			continue
		}
		edges = append(edges, AffinityEdge{
			Source:   pair.Product1,
			Target:   pair.Product2,
			Weight:   pair.Count,
			Strength: float64(pair.Count) / float64(total),
		})
	}

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Strength > edges[j].Strength
	})
	if len(edges) > a.cfg.AffinityLimit {
		edges = edges[:a.cfg.AffinityLimit]
	}

	return AffinityNetwork{
		Nodes: a.ds.ProductsInOrder(),
		Edges: edges,
	}
}
