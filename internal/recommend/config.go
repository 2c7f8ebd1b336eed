// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// MarketBasket contains Apriori and rule thresholds.
	MarketBasket MarketBasketConfig `json:"market_basket"`

	// Collaborative contains truncated SVD parameters.
	Collaborative CollaborativeConfig `json:"collaborative"`

	// Hybrid contains the blend weights.
	Hybrid HybridWeights `json:"hybrid"`

	// Limits contains query limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains fit cache parameters.
	Cache CacheConfig `json:"cache"`

	// Seed is the random seed for the SVD range finder.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed"`
}

// MarketBasketConfig contains parameters for frequent itemset mining.
type MarketBasketConfig struct {
	// MinSupport is the minimum fraction of baskets an itemset must appear in.
	// Default: 0.01.
	MinSupport float64 `json:"min_support"`

	// MinConfidence is the minimum rule confidence.
	// Default: 0.1.
	MinConfidence float64 `json:"min_confidence"`

	// MaxLen bounds itemset size. Zero means unbounded.
	// Default: 0.
	MaxLen int `json:"max_len"`

	// MaxBaskets caps the number of multi-item baskets mined.
	// Default: 1000.
	MaxBaskets int `json:"max_baskets"`
}

// CollaborativeConfig contains parameters for latent factor fitting.
type CollaborativeConfig struct {
	// Rank is the number of latent factors.
	// Default: 10.
	Rank int `json:"rank"`

	// Oversamples is the number of extra range finder columns.
	// Default: 10.
	Oversamples int `json:"oversamples"`

	// PowerIterations is the number of subspace iterations.
	// Default: 5.
	PowerIterations int `json:"power_iterations"`
}

// HybridWeights defines the contribution of each model to hybrid scores.
// Weights are applied as given, not normalized.
type HybridWeights struct {
	// MarketBasket multiplies rule confidence.
	// Default: 0.6.
	MarketBasket float64 `json:"market_basket"`

	// Collaborative multiplies cosine similarity.
	// Default: 0.4.
	Collaborative float64 `json:"collaborative"`
}

// LimitsConfig contains operational limits for queries.
type LimitsConfig struct {
	// DefaultTopN is used when a query does not ask for a size.
	// Default: 5.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps query sizes.
	// Default: 50.
	MaxTopN int `json:"max_top_n"`

	// FitTimeout bounds a single fit.
	// Default: 2m.
	FitTimeout time.Duration `json:"fit_timeout"`
}

// CacheConfig contains fit cache parameters.
type CacheConfig struct {
	// Enabled toggles the fit cache.
	// Default: true.
	Enabled bool `json:"enabled"`

	// MaxEntries is the number of fitted models kept.
	// Default: 8.
	MaxEntries int `json:"max_entries"`

	// TTL expires cached models. Zero keeps them until invalidated.
	// Default: 0.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MarketBasket: MarketBasketConfig{
			MinSupport:    0.01,
			MinConfidence: 0.1,
			MaxLen:        0,
			MaxBaskets:    1000,
		},
		Collaborative: CollaborativeConfig{
			Rank:            10,
			Oversamples:     10,
			PowerIterations: 5,
		},
		Hybrid: HybridWeights{
			MarketBasket:  0.6,
			Collaborative: 0.4,
		},
		Limits: LimitsConfig{
			DefaultTopN: 5,
			MaxTopN:     50,
			FitTimeout:  2 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 8,
			TTL:        0,
		},
		Seed: 42,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.MarketBasket.MinSupport <= 0 || c.MarketBasket.MinSupport > 1 {
		return fmt.Errorf("market_basket.min_support must be in (0, 1], got %f", c.MarketBasket.MinSupport)
	}
	if c.MarketBasket.MinConfidence < 0 || c.MarketBasket.MinConfidence > 1 {
		return fmt.Errorf("market_basket.min_confidence must be in [0, 1], got %f", c.MarketBasket.MinConfidence)
	}
	if c.MarketBasket.MaxLen < 0 {
		return fmt.Errorf("market_basket.max_len must be non-negative, got %d", c.MarketBasket.MaxLen)
	}
	if c.MarketBasket.MaxBaskets < 0 {
		return fmt.Errorf("market_basket.max_baskets must be non-negative, got %d", c.MarketBasket.MaxBaskets)
	}

	if c.Collaborative.Rank < 1 {
		return fmt.Errorf("collaborative.rank must be positive, got %d", c.Collaborative.Rank)
	}
	if c.Collaborative.Oversamples < 0 {
		return fmt.Errorf("collaborative.oversamples must be non-negative, got %d", c.Collaborative.Oversamples)
	}
	if c.Collaborative.PowerIterations < 0 {
		return fmt.Errorf("collaborative.power_iterations must be non-negative, got %d", c.Collaborative.PowerIterations)
	}

	if c.Hybrid.MarketBasket < 0 {
		return fmt.Errorf("hybrid.market_basket must be non-negative, got %f", c.Hybrid.MarketBasket)
	}
	if c.Hybrid.Collaborative < 0 {
		return fmt.Errorf("hybrid.collaborative must be non-negative, got %f", c.Hybrid.Collaborative)
	}

	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("limits.default_top_n must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("limits.max_top_n must be >= limits.default_top_n, got %d < %d", c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}
	if c.Limits.FitTimeout <= 0 {
		return fmt.Errorf("limits.fit_timeout must be positive, got %v", c.Limits.FitTimeout)
	}

	if c.Cache.Enabled && c.Cache.MaxEntries < 1 {
		return fmt.Errorf("cache.max_entries must be positive when cache is enabled, got %d", c.Cache.MaxEntries)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// all nested structs are value types
	cp := *c
	return &cp
}

// Hyperparameters returns the fit parameters described by the configuration.
func (c *Config) Hyperparameters() Hyperparameters {
	seed := c.Seed
	if seed == 0 {
		seed = 42
	}
	return Hyperparameters{
		MinSupport:          c.MarketBasket.MinSupport,
		MinConfidence:       c.MarketBasket.MinConfidence,
		MaxLen:              c.MarketBasket.MaxLen,
		MaxBaskets:          c.MarketBasket.MaxBaskets,
		Rank:                c.Collaborative.Rank,
		Oversamples:         c.Collaborative.Oversamples,
		PowerIterations:     c.Collaborative.PowerIterations,
		MarketBasketWeight:  c.Hybrid.MarketBasket,
		CollaborativeWeight: c.Hybrid.Collaborative,
		Seed:                seed,
	}
}

// ClampTopN applies the default and maximum query sizes.
func (c *Config) ClampTopN(n int) int {
	if n <= 0 {
		return c.Limits.DefaultTopN
	}
	if n > c.Limits.MaxTopN {
		return c.Limits.MaxTopN
	}
	return n
}

// MarshalJSON renders durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	type limits struct {
		DefaultTopN int    `json:"default_top_n"`
		MaxTopN     int    `json:"max_top_n"`
		FitTimeout  string `json:"fit_timeout"`
	}
	type cacheCfg struct {
		Enabled    bool   `json:"enabled"`
		MaxEntries int    `json:"max_entries"`
		TTL        string `json:"ttl"`
	}
	return json.Marshal(&struct {
		*Alias
		Limits limits   `json:"limits"`
		Cache  cacheCfg `json:"cache"`
	}{
		Alias: (*Alias)(c),
		Limits: limits{
			DefaultTopN: c.Limits.DefaultTopN,
			MaxTopN:     c.Limits.MaxTopN,
			FitTimeout:  c.Limits.FitTimeout.String(),
		},
		Cache: cacheCfg{
			Enabled:    c.Cache.Enabled,
			MaxEntries: c.Cache.MaxEntries,
			TTL:        c.Cache.TTL.String(),
		},
	})
}
