// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

// Package algorithms implements the recommenders behind recommend.Model.
//
// # Algorithms
//
//   - MarketBasket: Apriori frequent itemsets over basket presence bitsets,
//     association rules, product and basket queries
//   - Collaborative: randomized truncated SVD of the customer-product matrix,
//     cosine product similarity and dot-product customer affinity
//   - Hybrid: weighted blend of rule confidence and latent similarity
//
// FitHybrid adapts the three into a recommend.FitFunc for the engine.
//
// # Thread Safety
//
// Fit acquires an exclusive lock while queries use a shared lock, so a model
// may be refitted while readers hold results from the previous fit.
package algorithms

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/stylehive/internal/recommend"
)

// BaseAlgorithm provides common functionality for all algorithms.
type BaseAlgorithm struct {
	name         string
	fitted       bool
	version      int
	lastFittedAt time.Time
	mu           sync.RWMutex
}

// NewBaseAlgorithm creates a new base algorithm with the given name.
func NewBaseAlgorithm(name string) BaseAlgorithm {
	return BaseAlgorithm{
		name: name,
	}
}

// Name returns the algorithm identifier.
func (b *BaseAlgorithm) Name() string {
	return b.name
}

// IsFitted returns whether the model has been fitted.
func (b *BaseAlgorithm) IsFitted() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fitted
}

// Version returns how many times the model has been fitted.
func (b *BaseAlgorithm) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// markFitted updates the fitted state.
// Must be called while holding the fit lock (acquireFitLock).
func (b *BaseAlgorithm) markFitted() {
	b.fitted = true
	b.version++
	b.lastFittedAt = time.Now()
}

func (b *BaseAlgorithm) acquireFitLock()     { b.mu.Lock() }
func (b *BaseAlgorithm) releaseFitLock()     { b.mu.Unlock() }
func (b *BaseAlgorithm) acquirePredictLock() { b.mu.RLock() }
func (b *BaseAlgorithm) releasePredictLock() { b.mu.RUnlock() }

// cosineSimilarity computes cosine similarity between two vectors.
// Zero vectors have similarity 0 with everything.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// sortRecommendations orders by score descending, then product name.
func sortRecommendations(recs []recommend.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Product < recs[j].Product
	})
}

// truncate returns at most n recommendations.
func truncate(recs []recommend.Recommendation, n int) []recommend.Recommendation {
	if n < 0 {
		n = 0
	}
	if len(recs) > n {
		return recs[:n]
	}
	return recs
}
