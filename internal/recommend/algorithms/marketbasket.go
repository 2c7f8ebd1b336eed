// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package algorithms

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/stylehive/internal/recommend"
)

// MarketBasket mines frequent itemsets and association rules from baskets.
//
// The model starts unfit. Fit replaces all state; queries on an unfit model
// return no recommendations.
type MarketBasket struct {
	BaseAlgorithm

	// Configuration
	maxLen int

	// Fitted state
	minSupport    float64
	minConfidence float64
	baskets       int
	itemsets      []recommend.Itemset
	rules         []recommend.Rule
}

// MarketBasketConfig contains configuration for market-basket analysis.
type MarketBasketConfig struct {
	// MaxLen bounds itemset size. Zero means unbounded.
	MaxLen int
}

// NewMarketBasket creates an unfit market-basket analyzer.
func NewMarketBasket(cfg MarketBasketConfig) *MarketBasket {
	if cfg.MaxLen < 0 {
		cfg.MaxLen = 0
	}
	return &MarketBasket{
		BaseAlgorithm: NewBaseAlgorithm("market_basket"),
		maxLen:        cfg.MaxLen,
	}
}

// Fit mines baskets. Support is measured over every basket passed in, so
// callers filter single-product baskets beforehand. When no itemset reaches
// minSupport the rule set is empty.
func (m *MarketBasket) Fit(ctx context.Context, baskets [][]string, minSupport, minConfidence float64) error {
	if minSupport <= 0 || minSupport > 1 {
		return fmt.Errorf("min support must be in (0, 1], got %f", minSupport)
	}
	if minConfidence < 0 || minConfidence > 1 {
		return fmt.Errorf("min confidence must be in [0, 1], got %f", minConfidence)
	}

	enc := encodeBaskets(baskets)

	itemsets, err := apriori(ctx, enc, minSupport, m.maxLen)
	if err != nil {
		return fmt.Errorf("mine frequent itemsets: %w", err)
	}

	var rules []recommend.Rule
	if len(itemsets) > 0 {
		rules, err = associationRules(ctx, itemsets, minConfidence)
		if err != nil {
			return fmt.Errorf("generate association rules: %w", err)
		}
	}

	m.acquireFitLock()
	defer m.releaseFitLock()

	m.minSupport = minSupport
	m.minConfidence = minConfidence
	m.baskets = len(baskets)
	m.itemsets = itemsets
	m.rules = rules
	m.markFitted()

	return nil
}

// Itemsets returns the frequent itemsets ordered by size then items.
func (m *MarketBasket) Itemsets() []recommend.Itemset {
	m.acquirePredictLock()
	defer m.releasePredictLock()

	out := make([]recommend.Itemset, len(m.itemsets))
	copy(out, m.itemsets)
	return out
}

// Rules returns the association rules in ranking order.
func (m *MarketBasket) Rules() []recommend.Rule {
	m.acquirePredictLock()
	defer m.releasePredictLock()

	out := make([]recommend.Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Baskets returns how many baskets the last fit mined.
func (m *MarketBasket) Baskets() int {
	m.acquirePredictLock()
	defer m.releasePredictLock()
	return m.baskets
}

// RecommendForProduct recommends the targets of rules whose antecedent
// contains product, ranked by confidence then lift. Each target appears once
// and the product itself is never recommended.
func (m *MarketBasket) RecommendForProduct(product string, topN int) []recommend.Recommendation {
	if topN <= 0 {
		return []recommend.Recommendation{}
	}

	m.acquirePredictLock()
	defer m.releasePredictLock()

	recs := make([]recommend.Recommendation, 0, topN)
	seen := map[string]struct{}{product: {}}
	for i := range m.rules {
		rule := &m.rules[i]
		if !rule.Antecedent.Contains(product) {
			continue
		}
		target := rule.Target()
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}
		recs = append(recs, ruleRecommendation(rule, target, product))
		if len(recs) == topN {
			break
		}
	}
	return recs
}

// RecommendForBasket recommends rule targets for a whole basket.
//
// The first pass keeps rules whose antecedent contains every basket
// product. Only when that pass selects nothing, a fallback pass keeps rules
// whose antecedent shares any product with the basket. Basket products are
// never recommended and each target appears once.
func (m *MarketBasket) RecommendForBasket(basket []string, topN int) []recommend.Recommendation {
	if topN <= 0 {
		return []recommend.Recommendation{}
	}

	m.acquirePredictLock()
	defer m.releasePredictLock()

	basketSet := recommend.NewItemSet(basket...)

	selected := m.selectRules(func(r *recommend.Rule) bool {
		return basketSet.IsSubsetOf(r.Antecedent)
	})
	if len(selected) == 0 {
		selected = m.selectRules(func(r *recommend.Rule) bool {
			return r.Antecedent.Intersects(basketSet)
		})
	}

	label := strings.Join(basket, ", ")
	seen := make(map[string]struct{}, len(basket)+topN)
	for _, p := range basket {
		seen[p] = struct{}{}
	}

	recs := make([]recommend.Recommendation, 0, topN)
	for _, rule := range selected {
		target := rule.Target()
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}
		recs = append(recs, ruleRecommendation(rule, target, label))
		if len(recs) == topN {
			break
		}
	}
	return recs
}

// selectRules filters rules in ranking order. Caller holds the predict lock.
func (m *MarketBasket) selectRules(keep func(*recommend.Rule) bool) []*recommend.Rule {
	var out []*recommend.Rule
	for i := range m.rules {
		if keep(&m.rules[i]) {
			out = append(out, &m.rules[i])
		}
	}
	return out
}

func ruleRecommendation(rule *recommend.Rule, target, bought string) recommend.Recommendation {
	return recommend.Recommendation{
		Product: target,
		Score:   rule.Confidence,
		Scores: map[string]float64{
			recommend.ScoreConfidence: rule.Confidence,
			recommend.ScoreLift:       rule.Lift,
			recommend.ScoreSupport:    rule.Support,
		},
		Explanation: fmt.Sprintf("%.1f%% of customers who bought %s also bought %s",
			rule.Confidence*100, bought, target),
	}
}
