// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/stylehive/internal/cache"
	"github.com/tomtom215/stylehive/internal/metrics"
	"github.com/tomtom215/stylehive/internal/transactions"
)

// Engine owns the fit cache. It maps (dataset fingerprint, hyperparameters)
// to fitted models and fits on a miss. Invalidation is explicit: the engine
// never drops a model because the underlying data changed, since a changed
// dataset has a different fingerprint.
//
// Engine is safe for concurrent use. Fits are serialized.
type Engine struct {
	config *Config
	logger zerolog.Logger
	fit    FitFunc

	// fitMu serializes fits so concurrent misses on one key fit once
	fitMu sync.Mutex

	models *cache.LRU[Model]

	statusMu sync.RWMutex
	status   FitStatus
}

// FitStatus reports the state of the most recent fit.
type FitStatus struct {
	Fitting        bool      `json:"fitting"`
	LastFitAt      time.Time `json:"last_fit_at,omitempty"`
	LastDurationMS int64     `json:"last_duration_ms"`
	LastKey        string    `json:"last_key,omitempty"`
	LastError      string    `json:"last_error,omitempty"`
	Fits           int64     `json:"fits"`
	CacheHits      int64     `json:"cache_hits"`
}

// NewEngine creates an engine that fits models with fit.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, fit FitFunc, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if fit == nil {
		return nil, errors.New("fit function is required")
	}

	capacity := cfg.Cache.MaxEntries
	if !cfg.Cache.Enabled {
		capacity = 1
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
		fit:    fit,
		models: cache.NewLRU[Model](capacity, cfg.Cache.TTL),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// DefaultParams returns the hyperparameters from configuration.
func (e *Engine) DefaultParams() Hyperparameters {
	return e.config.Hyperparameters()
}

// CacheKey returns the fit cache key for a dataset fingerprint and
// hyperparameters.
//
//nolint:gocritic // Hyperparameters is small and copied on purpose
func CacheKey(fingerprint uint64, params Hyperparameters) string {
	return FingerprintString(fingerprint) + "|" + params.Key()
}

// FingerprintString formats a dataset fingerprint.
func FingerprintString(fingerprint uint64) string {
	return fmt.Sprintf("%016x", fingerprint)
}

// Validate checks hyperparameters for values no fit can use.
//
//nolint:gocritic // value receiver keeps Hyperparameters usable as a map value
func (h Hyperparameters) Validate() error {
	switch {
	case h.MinSupport <= 0 || h.MinSupport > 1:
		return fmt.Errorf("min_support must be in (0, 1], got %f", h.MinSupport)
	case h.MinConfidence < 0 || h.MinConfidence > 1:
		return fmt.Errorf("min_confidence must be in [0, 1], got %f", h.MinConfidence)
	case h.MaxLen < 0:
		return fmt.Errorf("max_len must be non-negative, got %d", h.MaxLen)
	case h.MaxBaskets < 0:
		return fmt.Errorf("max_baskets must be non-negative, got %d", h.MaxBaskets)
	case h.Rank < 1:
		return fmt.Errorf("rank must be positive, got %d", h.Rank)
	case h.Oversamples < 0:
		return fmt.Errorf("oversamples must be non-negative, got %d", h.Oversamples)
	case h.PowerIterations < 0:
		return fmt.Errorf("power_iterations must be non-negative, got %d", h.PowerIterations)
	case h.MarketBasketWeight < 0 || h.CollaborativeWeight < 0:
		return fmt.Errorf("hybrid weights must be non-negative, got %f/%f", h.MarketBasketWeight, h.CollaborativeWeight)
	}
	return nil
}

// Fit returns the model for (ds, params), fitting it on a cache miss.
// A second Fit with the same dataset and parameters returns the same model.
//
//nolint:gocritic // Hyperparameters is small and copied on purpose
func (e *Engine) Fit(ctx context.Context, ds *transactions.Dataset, params Hyperparameters) (Model, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("fit: %w", transactions.ErrDataUnavailable)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hyperparameters: %w", err)
	}

	key := CacheKey(ds.Fingerprint(), params)

	if m, ok := e.lookup(key); ok {
		return m, nil
	}

	e.fitMu.Lock()
	defer e.fitMu.Unlock()

	// another caller may have fitted this key while we waited
	if m, ok := e.lookup(key); ok {
		return m, nil
	}

	return e.fitLocked(ctx, ds, params, key)
}

// Refit fits (ds, params) unconditionally and replaces any cached entry.
//
//nolint:gocritic // Hyperparameters is small and copied on purpose
func (e *Engine) Refit(ctx context.Context, ds *transactions.Dataset, params Hyperparameters) (Model, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("refit: %w", transactions.ErrDataUnavailable)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hyperparameters: %w", err)
	}

	e.fitMu.Lock()
	defer e.fitMu.Unlock()

	return e.fitLocked(ctx, ds, params, CacheKey(ds.Fingerprint(), params))
}

func (e *Engine) lookup(key string) (Model, bool) {
	if !e.config.Cache.Enabled {
		return nil, false
	}
	m, ok := e.models.Get(key)
	metrics.RecordFitCache(ok, e.models.Len())
	if ok {
		e.statusMu.Lock()
		e.status.CacheHits++
		e.statusMu.Unlock()
		e.logger.Debug().Str("key", key).Msg("fit cache hit")
	}
	return m, ok
}

//nolint:gocritic // Hyperparameters is small and copied on purpose
func (e *Engine) fitLocked(ctx context.Context, ds *transactions.Dataset, params Hyperparameters, key string) (Model, error) {
	fitCtx, cancel := context.WithTimeout(ctx, e.config.Limits.FitTimeout)
	defer cancel()

	e.setFitting(true)
	start := time.Now()
	e.logger.Info().
		Str("key", key).
		Int("rows", ds.Len()).
		Msg("fitting recommendation model")

	m, err := e.fit(fitCtx, ds, params)
	duration := time.Since(start)
	metrics.RecordModelFit("hybrid", duration, err)
	e.finishFit(key, duration, err)

	if err != nil {
		e.logger.Error().Err(err).Str("key", key).Msg("model fit failed")
		return nil, fmt.Errorf("fit model: %w", err)
	}

	info := m.Info()
	metrics.UpdateModelGauges(info.Itemsets, info.Rules, info.Rank)
	e.logger.Info().
		Str("key", key).
		Int("itemsets", info.Itemsets).
		Int("rules", info.Rules).
		Int("rank", info.Rank).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("model fit complete")

	if e.config.Cache.Enabled {
		e.models.Add(key, m)
	}
	return m, nil
}

func (e *Engine) setFitting(fitting bool) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	e.status.Fitting = fitting
}

func (e *Engine) finishFit(key string, duration time.Duration, err error) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()

	e.status.Fitting = false
	e.status.LastFitAt = time.Now()
	e.status.LastDurationMS = duration.Milliseconds()
	e.status.LastKey = key
	e.status.LastError = ""
	if err != nil {
		e.status.LastError = err.Error()
		return
	}
	e.status.Fits++
}

// Status returns the current fit status.
func (e *Engine) Status() FitStatus {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.status
}

// Cached reports whether a model for (fingerprint, params) is cached.
//
//nolint:gocritic // Hyperparameters is small and copied on purpose
func (e *Engine) Cached(fingerprint uint64, params Hyperparameters) bool {
	return e.models.Contains(CacheKey(fingerprint, params))
}

// Invalidate drops every cached model.
func (e *Engine) Invalidate() {
	n := e.models.Len()
	e.models.Clear()
	e.logger.Info().Int("entries", n).Msg("fit cache invalidated")
}

// InvalidateDataset drops cached models fitted on the given dataset and
// returns how many were removed.
func (e *Engine) InvalidateDataset(fingerprint uint64) int {
	prefix := FingerprintString(fingerprint) + "|"
	removed := e.models.RemoveFunc(func(key string) bool {
		return strings.HasPrefix(key, prefix)
	})
	e.logger.Info().
		Str("fingerprint", FingerprintString(fingerprint)).
		Int("entries", removed).
		Msg("fit cache entries invalidated")
	return removed
}

// CacheStats returns fit cache counters.
func (e *Engine) CacheStats() cache.Stats {
	return e.models.Stats()
}
