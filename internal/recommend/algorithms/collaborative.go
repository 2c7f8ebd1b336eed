// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package algorithms

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/stylehive/internal/recommend"
	"github.com/tomtom215/stylehive/internal/transactions"
)

// Collaborative recommends from latent factors of the customer-product
// purchase matrix.
//
// Fit computes a truncated SVD A ≈ UₖΣₖVₖᵀ. Customer factors are UₖΣₖ and
// product factors are Vₖ, so the dot product of a customer row with a
// product row reconstructs the customer's affinity for that product.
type Collaborative struct {
	BaseAlgorithm

	// Configuration
	oversamples     int
	powerIterations int
	seed            int64

	// Fitted state
	requestedRank int
	factors       recommend.LatentFactors
	customerIndex map[int]int
	productIndex  map[string]int
	purchased     [][]bool
}

// CollaborativeConfig contains configuration for latent factor fitting.
type CollaborativeConfig struct {
	// Oversamples adds range finder columns beyond the rank.
	Oversamples int

	// PowerIterations sharpens the range finder.
	PowerIterations int

	// Seed drives the Gaussian test matrix.
	Seed int64
}

// NewCollaborative creates an unfit collaborative recommender.
func NewCollaborative(cfg CollaborativeConfig) *Collaborative {
	if cfg.Oversamples < 0 {
		cfg.Oversamples = 10
	}
	if cfg.PowerIterations < 0 {
		cfg.PowerIterations = 5
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}

	return &Collaborative{
		BaseAlgorithm:   NewBaseAlgorithm("collaborative"),
		oversamples:     cfg.Oversamples,
		powerIterations: cfg.PowerIterations,
		seed:            cfg.Seed,
	}
}

// Fit learns rank latent factors from m. Rank is clamped to
// min(customers, products); RankClamped reports when that happened.
func (c *Collaborative) Fit(ctx context.Context, m *transactions.Matrix, rank int) error {
	if rank < 1 {
		return fmt.Errorf("rank must be positive, got %d", rank)
	}
	customers, products := m.Dims()
	if customers == 0 || products == 0 {
		return fmt.Errorf("empty %dx%d customer-product matrix", customers, products)
	}

	data := make([]float64, 0, customers*products)
	purchased := make([][]bool, customers)
	for i, row := range m.Counts {
		data = append(data, row...)
		purchased[i] = make([]bool, products)
		for j, v := range row {
			purchased[i][j] = v > 0
		}
	}
	a := mat.NewDense(customers, products, data)

	svd := TruncatedSVD{
		Rank:            rank,
		Oversamples:     c.oversamples,
		PowerIterations: c.powerIterations,
		Seed:            c.seed,
	}
	res, err := svd.Factorize(ctx, a)
	if err != nil {
		return fmt.Errorf("truncated svd: %w", err)
	}

	k := res.Rank()
	userFactors := make([][]float64, customers)
	for i := range userFactors {
		userFactors[i] = make([]float64, k)
		for f := 0; f < k; f++ {
			userFactors[i][f] = res.U.At(i, f) * res.S[f]
		}
	}
	itemFactors := make([][]float64, products)
	for j := range itemFactors {
		itemFactors[j] = make([]float64, k)
		for f := 0; f < k; f++ {
			itemFactors[j][f] = res.V.At(j, f)
		}
	}

	customerIndex := make(map[int]int, customers)
	for i, id := range m.Customers {
		customerIndex[id] = i
	}
	productIndex := make(map[string]int, products)
	for j, p := range m.Products {
		productIndex[p] = j
	}

	c.acquireFitLock()
	defer c.releaseFitLock()

	c.requestedRank = rank
	c.factors = recommend.LatentFactors{
		Customers:      append([]int(nil), m.Customers...),
		Products:       append([]string(nil), m.Products...),
		UserFactors:    userFactors,
		ItemFactors:    itemFactors,
		SingularValues: res.S,
		Rank:           k,
	}
	c.customerIndex = customerIndex
	c.productIndex = productIndex
	c.purchased = purchased
	c.markFitted()

	return nil
}

// RankClamped reports whether the last fit used a lower rank than requested.
func (c *Collaborative) RankClamped() (requested, effective int, clamped bool) {
	c.acquirePredictLock()
	defer c.releasePredictLock()
	return c.requestedRank, c.factors.Rank, c.factors.Rank < c.requestedRank
}

// Factors returns a deep copy of the latent factors.
func (c *Collaborative) Factors() recommend.LatentFactors {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	f := c.factors
	out := recommend.LatentFactors{
		Customers:      append([]int(nil), f.Customers...),
		Products:       append([]string(nil), f.Products...),
		SingularValues: append([]float64(nil), f.SingularValues...),
		Rank:           f.Rank,
		UserFactors:    make([][]float64, len(f.UserFactors)),
		ItemFactors:    make([][]float64, len(f.ItemFactors)),
	}
	for i, row := range f.UserFactors {
		out.UserFactors[i] = append([]float64(nil), row...)
	}
	for j, row := range f.ItemFactors {
		out.ItemFactors[j] = append([]float64(nil), row...)
	}
	return out
}

// SimilarProducts ranks other products by cosine similarity of their
// latent vectors to product's.
func (c *Collaborative) SimilarProducts(product string, topN int) ([]recommend.Recommendation, error) {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	if !c.fitted {
		return nil, recommend.ErrNotFitted
	}
	j, ok := c.productIndex[product]
	if !ok {
		return nil, fmt.Errorf("%w: %q", recommend.ErrUnknownProduct, product)
	}
	if topN <= 0 {
		return []recommend.Recommendation{}, nil
	}

	target := c.factors.ItemFactors[j]
	recs := make([]recommend.Recommendation, 0, len(c.factors.Products)-1)
	for o, other := range c.factors.Products {
		if o == j {
			continue
		}
		sim := cosineSimilarity(target, c.factors.ItemFactors[o])
		recs = append(recs, recommend.Recommendation{
			Product:     other,
			Score:       sim,
			Scores:      map[string]float64{recommend.ScoreSimilarity: sim},
			Explanation: fmt.Sprintf("Similar to %s based on customer preferences", product),
		})
	}

	sortRecommendations(recs)
	return truncate(recs, topN), nil
}

// RecommendForUser ranks products the customer has not bought by the dot
// product of customer and product factors.
func (c *Collaborative) RecommendForUser(customerID int, topN int) ([]recommend.Recommendation, error) {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	if !c.fitted {
		return nil, recommend.ErrNotFitted
	}
	i, ok := c.customerIndex[customerID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", recommend.ErrUnknownCustomer, customerID)
	}
	if topN <= 0 {
		return []recommend.Recommendation{}, nil
	}

	user := c.factors.UserFactors[i]
	var recs []recommend.Recommendation
	for j, product := range c.factors.Products {
		if c.purchased[i][j] {
			continue
		}
		score := dot(user, c.factors.ItemFactors[j])
		recs = append(recs, recommend.Recommendation{
			Product:     product,
			Score:       score,
			Scores:      map[string]float64{recommend.ScoreAffinity: score},
			Explanation: "Based on similar customers' preferences",
		})
	}

	sortRecommendations(recs)
	if recs == nil {
		recs = []recommend.Recommendation{}
	}
	return truncate(recs, topN), nil
}
