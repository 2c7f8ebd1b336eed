// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

// Package recommend defines the recommendation model contract and the fit
// cache that owns fitted models.
//
// # Models
//
// A Model is fitted once from a transactions.Dataset and is read-only
// afterwards. It combines three recommenders (see the algorithms package):
//
//   - Market-basket analysis: Apriori frequent itemsets and association
//     rules, queried per product or per basket
//   - Collaborative filtering: truncated SVD of the customer-product matrix,
//     queried for similar products or per customer
//   - Hybrid: a weighted blend of rule confidence and latent similarity
//
// # Fit cache
//
// Fitting is the expensive step. Engine memoizes fitted models keyed by the
// dataset fingerprint and the full set of hyperparameters:
//
//	engine, err := recommend.NewEngine(cfg, algorithms.FitHybrid, logger)
//	model, err := engine.Fit(ctx, ds, engine.DefaultParams())
//	recs := model.RecommendForProduct("White T-shirt", 5)
//
// Invalidation is explicit through Invalidate and InvalidateDataset.
//
// # Errors
//
// ErrUnknownProduct and ErrUnknownCustomer are recoverable query errors.
// An empty recommendation list is a normal result, not an error.
//
// # Thread Safety
//
// Engine is safe for concurrent use and serializes fits. Models are immutable
// after fit, so queries need no locking.
package recommend
