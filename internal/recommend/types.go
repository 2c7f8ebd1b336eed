// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package recommend

import (
	"cmp"
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/stylehive/internal/transactions"
)

// Itemset is a frequent set of products with its support, the fraction of
// mined baskets containing every product of the set.
type Itemset struct {
	Items   ItemSet `json:"items"`
	Support float64 `json:"support"`
}

// CompareItemsets orders itemsets by size, then by items.
func CompareItemsets(a, b Itemset) int {
	return a.Items.Compare(b.Items)
}

// Rule is an association rule Antecedent => Consequent derived from a
// frequent itemset. The two sides are disjoint and non-empty.
type Rule struct {
	Antecedent        ItemSet `json:"antecedent"`
	Consequent        ItemSet `json:"consequent"`
	Support           float64 `json:"support"`
	Confidence        float64 `json:"confidence"`
	Lift              float64 `json:"lift"`
	AntecedentSupport float64 `json:"antecedent_support"`
	ConsequentSupport float64 `json:"consequent_support"`
	Leverage          float64 `json:"leverage"`
}

// Target returns the product a rule recommends: the first consequent item
// in name order.
func (r Rule) Target() string {
	if len(r.Consequent) == 0 {
		return ""
	}
	return r.Consequent[0]
}

// CompareRules is the ranking order for rules: confidence desc, lift desc,
// support desc, then antecedent and consequent ascending. It is a total
// order over distinct rules.
func CompareRules(a, b Rule) int {
	if c := cmp.Compare(b.Confidence, a.Confidence); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Lift, a.Lift); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Support, a.Support); c != 0 {
		return c
	}
	if c := a.Antecedent.Compare(b.Antecedent); c != 0 {
		return c
	}
	return a.Consequent.Compare(b.Consequent)
}

// Score breakdown keys used in Recommendation.Scores.
const (
	ScoreConfidence    = "confidence"
	ScoreLift          = "lift"
	ScoreSupport       = "support"
	ScoreSimilarity    = "similarity"
	ScoreAffinity      = "affinity"
	ScoreMarketBasket  = "market_basket"
	ScoreCollaborative = "collaborative"
)

// Recommendation is one ranked product suggestion with a human-readable
// explanation. Recommendations are transient and query scoped.
type Recommendation struct {
	Product     string             `json:"product"`
	Score       float64            `json:"score"`
	Scores      map[string]float64 `json:"scores,omitempty"`
	Explanation string             `json:"explanation"`
}

// LatentFactors is the learned low-rank representation of a
// customer-product matrix. Row i of UserFactors belongs to Customers[i] and
// row j of ItemFactors to Products[j].
type LatentFactors struct {
	Customers      []int       `json:"customers"`
	Products       []string    `json:"products"`
	UserFactors    [][]float64 `json:"user_factors"`
	ItemFactors    [][]float64 `json:"item_factors"`
	SingularValues []float64   `json:"singular_values"`
	Rank           int         `json:"rank"`
}

// Hyperparameters fully determine a fit for a given dataset.
type Hyperparameters struct {
	// MinSupport is the Apriori support threshold in (0, 1].
	MinSupport float64 `json:"min_support" validate:"gt=0,lte=1"`

	// MinConfidence is the rule confidence threshold in [0, 1].
	MinConfidence float64 `json:"min_confidence" validate:"gte=0,lte=1"`

	// MaxLen bounds itemset size; zero means unbounded.
	MaxLen int `json:"max_len" validate:"gte=0"`

	// MaxBaskets caps mined baskets; zero means no cap.
	MaxBaskets int `json:"max_baskets" validate:"gte=0"`

	// Rank is the number of latent factors.
	Rank int `json:"rank" validate:"gte=1,lte=1000"`

	// Oversamples adds range finder columns beyond Rank.
	Oversamples int `json:"oversamples" validate:"gte=0"`

	// PowerIterations sharpens the range finder.
	PowerIterations int `json:"power_iterations" validate:"gte=0,lte=50"`

	// MarketBasketWeight and CollaborativeWeight blend hybrid scores.
	MarketBasketWeight  float64 `json:"market_basket_weight" validate:"gte=0"`
	CollaborativeWeight float64 `json:"collaborative_weight" validate:"gte=0"`

	// Seed drives the randomized SVD.
	Seed int64 `json:"seed"`
}

// Key returns a canonical encoding used in fit cache keys.
//
//nolint:gocritic // value receiver keeps Hyperparameters usable as a map value
func (h Hyperparameters) Key() string {
	return fmt.Sprintf("s=%g;c=%g;l=%d;b=%d;r=%d;o=%d;p=%d;wm=%g;wc=%g;seed=%d",
		h.MinSupport, h.MinConfidence, h.MaxLen, h.MaxBaskets,
		h.Rank, h.Oversamples, h.PowerIterations,
		h.MarketBasketWeight, h.CollaborativeWeight, h.Seed)
}

// Model is a fitted, read-only recommender. All query methods are safe for
// concurrent use.
type Model interface {
	// RecommendForProduct returns rule-based recommendations for one product.
	RecommendForProduct(product string, topN int) []Recommendation

	// RecommendForBasket returns rule-based recommendations for a basket.
	RecommendForBasket(basket []string, topN int) []Recommendation

	// SimilarProducts returns latent-factor neighbors of a product.
	SimilarProducts(product string, topN int) ([]Recommendation, error)

	// RecommendForUser returns latent-factor recommendations for a customer.
	RecommendForUser(customerID int, topN int) ([]Recommendation, error)

	// Recommend returns the weighted hybrid of both models for a product.
	Recommend(product string, topN int) []Recommendation

	// Itemsets returns the frequent itemsets.
	Itemsets() []Itemset

	// Rules returns the association rules in ranking order.
	Rules() []Rule

	// Factors returns a copy of the latent factors.
	Factors() LatentFactors

	// Info describes the fit.
	Info() ModelInfo
}

// FitFunc fits a Model on a dataset. The engine calls it on cache misses.
type FitFunc func(ctx context.Context, ds *transactions.Dataset, params Hyperparameters) (Model, error)

// ModelInfo describes a fitted model.
type ModelInfo struct {
	Fingerprint   string          `json:"fingerprint"`
	Params        Hyperparameters `json:"params"`
	FittedAt      time.Time       `json:"fitted_at"`
	FitDurationMS int64           `json:"fit_duration_ms"`
	Baskets       int             `json:"baskets"`
	Itemsets      int             `json:"itemsets"`
	Rules         int             `json:"rules"`
	Customers     int             `json:"customers"`
	Products      int             `json:"products"`
	Rank          int             `json:"rank"`
}
