// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/stylehive/internal/logging"
	"github.com/tomtom215/stylehive/internal/recommend"
	"github.com/tomtom215/stylehive/internal/transactions"
)

// Default hybrid weights.
const (
	DefaultMarketBasketWeight  = 0.6
	DefaultCollaborativeWeight = 0.4
)

// Hybrid blends market-basket confidence with collaborative similarity.
// It implements recommend.Model by delegating single-model queries to its
// sub-models.
type Hybrid struct {
	BaseAlgorithm

	params recommend.Hyperparameters
	mba    *MarketBasket
	cf     *Collaborative

	// Fitted state
	fingerprint uint64
	fitDuration time.Duration
}

var _ recommend.Model = (*Hybrid)(nil)

// NewHybrid creates an unfit hybrid recommender for params.
//
//nolint:gocritic // Hyperparameters is small and copied on purpose
func NewHybrid(params recommend.Hyperparameters) *Hybrid {
	return &Hybrid{
		BaseAlgorithm: NewBaseAlgorithm("hybrid"),
		params:        params,
		mba:           NewMarketBasket(MarketBasketConfig{MaxLen: params.MaxLen}),
		cf: NewCollaborative(CollaborativeConfig{
			Oversamples:     params.Oversamples,
			PowerIterations: params.PowerIterations,
			Seed:            params.Seed,
		}),
	}
}

// Fit fits both sub-models concurrently on the same inputs.
func (h *Hybrid) Fit(ctx context.Context, baskets [][]string, m *transactions.Matrix) error {
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return h.mba.Fit(gctx, baskets, h.params.MinSupport, h.params.MinConfidence)
	})
	g.Go(func() error {
		return h.cf.Fit(gctx, m, h.params.Rank)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	h.acquireFitLock()
	defer h.releaseFitLock()
	h.fitDuration = time.Since(start)
	h.markFitted()
	return nil
}

// MarketBasket returns the market-basket sub-model.
func (h *Hybrid) MarketBasket() *MarketBasket { return h.mba }

// Collaborative returns the collaborative sub-model.
func (h *Hybrid) Collaborative() *Collaborative { return h.cf }

// Recommend blends 2×topN candidates from each sub-model. A product's score
// is MarketBasketWeight×confidence plus CollaborativeWeight×similarity, with
// a missing term counting as zero. A product the collaborative model has
// never seen contributes no collaborative candidates.
func (h *Hybrid) Recommend(product string, topN int) []recommend.Recommendation {
	if topN <= 0 {
		return []recommend.Recommendation{}
	}

	mbaRecs := h.mba.RecommendForProduct(product, topN*2)
	cfRecs, err := h.cf.SimilarProducts(product, topN*2)
	if err != nil {
		cfRecs = nil
	}

	merged := make(map[string]*recommend.Recommendation, len(mbaRecs)+len(cfRecs))
	order := make([]string, 0, len(mbaRecs)+len(cfRecs))

	for _, rec := range mbaRecs {
		if _, ok := merged[rec.Product]; ok {
			continue
		}
		confidence := rec.Scores[recommend.ScoreConfidence]
		merged[rec.Product] = &recommend.Recommendation{
			Product:     rec.Product,
			Score:       confidence * h.params.MarketBasketWeight,
			Scores:      map[string]float64{recommend.ScoreMarketBasket: confidence},
			Explanation: rec.Explanation,
		}
		order = append(order, rec.Product)
	}

	for _, rec := range cfRecs {
		similarity := rec.Scores[recommend.ScoreSimilarity]
		if existing, ok := merged[rec.Product]; ok {
			existing.Score += similarity * h.params.CollaborativeWeight
			existing.Scores[recommend.ScoreCollaborative] = similarity
			continue
		}
		merged[rec.Product] = &recommend.Recommendation{
			Product:     rec.Product,
			Score:       similarity * h.params.CollaborativeWeight,
			Scores:      map[string]float64{recommend.ScoreCollaborative: similarity},
			Explanation: rec.Explanation,
		}
		order = append(order, rec.Product)
	}

	out := make([]recommend.Recommendation, 0, len(order))
	for _, p := range order {
		out = append(out, *merged[p])
	}
	sortRecommendations(out)
	return truncate(out, topN)
}

// RecommendForProduct implements recommend.Model.
func (h *Hybrid) RecommendForProduct(product string, topN int) []recommend.Recommendation {
	return h.mba.RecommendForProduct(product, topN)
}

// RecommendForBasket implements recommend.Model.
func (h *Hybrid) RecommendForBasket(basket []string, topN int) []recommend.Recommendation {
	return h.mba.RecommendForBasket(basket, topN)
}

// SimilarProducts implements recommend.Model.
func (h *Hybrid) SimilarProducts(product string, topN int) ([]recommend.Recommendation, error) {
	return h.cf.SimilarProducts(product, topN)
}

// RecommendForUser implements recommend.Model.
func (h *Hybrid) RecommendForUser(customerID int, topN int) ([]recommend.Recommendation, error) {
	return h.cf.RecommendForUser(customerID, topN)
}

// Itemsets implements recommend.Model.
func (h *Hybrid) Itemsets() []recommend.Itemset { return h.mba.Itemsets() }

// Rules implements recommend.Model.
func (h *Hybrid) Rules() []recommend.Rule { return h.mba.Rules() }

// Factors implements recommend.Model.
func (h *Hybrid) Factors() recommend.LatentFactors { return h.cf.Factors() }

// Info implements recommend.Model.
func (h *Hybrid) Info() recommend.ModelInfo {
	h.acquirePredictLock()
	fingerprint, fittedAt, duration := h.fingerprint, h.lastFittedAt, h.fitDuration
	h.releasePredictLock()

	factors := h.cf.Factors()
	return recommend.ModelInfo{
		Fingerprint:   recommend.FingerprintString(fingerprint),
		Params:        h.params,
		FittedAt:      fittedAt,
		FitDurationMS: duration.Milliseconds(),
		Baskets:       h.mba.Baskets(),
		Itemsets:      len(h.mba.Itemsets()),
		Rules:         len(h.mba.Rules()),
		Customers:     len(factors.Customers),
		Products:      len(factors.Products),
		Rank:          factors.Rank,
	}
}

// FitHybrid is a recommend.FitFunc. It mines the dataset's multi-product
// baskets (capped at params.MaxBaskets) and factorizes its customer-product
// matrix.
//
//nolint:gocritic // Hyperparameters is small and copied on purpose
func FitHybrid(ctx context.Context, ds *transactions.Dataset, params recommend.Hyperparameters) (recommend.Model, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("fit hybrid: %w", transactions.ErrDataUnavailable)
	}

	h := NewHybrid(params)
	h.fingerprint = ds.Fingerprint()

	if err := h.Fit(ctx, ds.MiningBaskets(params.MaxBaskets), ds.CustomerProductMatrix()); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("fit hybrid interrupted: %w", err)
		}
		return nil, fmt.Errorf("fit hybrid: %w", err)
	}

	if requested, effective, clamped := h.cf.RankClamped(); clamped {
		logging.Warn().
			Int("requested_rank", requested).
			Int("effective_rank", effective).
			Msg("latent rank clamped to matrix dimensions")
	}
	return h, nil
}
