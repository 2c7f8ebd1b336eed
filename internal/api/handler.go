// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package api

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/stylehive/internal/insights"
	"github.com/tomtom215/stylehive/internal/metrics"
	"github.com/tomtom215/stylehive/internal/recommend"
	"github.com/tomtom215/stylehive/internal/transactions"
)

// servingState is one consistent snapshot of what the API serves. It is
// never mutated after it is published.
type servingState struct {
	dataset  *transactions.Dataset
	model    recommend.Model
	analyzer *insights.Analyzer
	summary  insights.Summary
	loadedAt time.Time
}

func (s *servingState) fingerprint() string {
	return recommend.FingerprintString(s.dataset.Fingerprint())
}

// HandlerConfig wires a Handler.
type HandlerConfig struct {
	// Engine fits and caches models. Required.
	Engine *recommend.Engine

	// Insights configures the analyzer. Nil uses insights.DefaultConfig.
	Insights *insights.Config

	// Source is read by Reload. May be nil when datasets are installed
	// directly.
	Source transactions.Source

	// Version is reported by /health.
	Version string

	// GraphExport reports whether the Neo4j export is enabled.
	GraphExport bool

	Logger zerolog.Logger
}

// Handler serves the HTTP API over a swappable serving state.
type Handler struct {
	engine      *recommend.Engine
	engineCfg   *recommend.Config
	insightsCfg *insights.Config
	source      transactions.Source
	version     string
	graphExport bool
	logger      zerolog.Logger
	startTime   time.Time

	mu     sync.RWMutex
	state  *servingState
	params recommend.Hyperparameters

	// busy admits one reload or refit at a time
	busy atomic.Bool
}

// NewHandler creates a handler with no serving state. Call Reload or
// Install before serving queries; until then they answer 503.
//
//nolint:gocritic // HandlerConfig carries a zerolog.Logger by value
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.Engine == nil {
		return nil, errors.New("api: engine is required")
	}
	if cfg.Insights == nil {
		cfg.Insights = insights.DefaultConfig()
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	return &Handler{
		engine:      cfg.Engine,
		engineCfg:   cfg.Engine.Config(),
		insightsCfg: cfg.Insights,
		source:      cfg.Source,
		version:     cfg.Version,
		graphExport: cfg.GraphExport,
		logger:      cfg.Logger.With().Str("component", "api").Logger(),
		startTime:   time.Now(),
		params:      cfg.Engine.DefaultParams(),
	}, nil
}

// snapshot returns the current serving state, or ErrNotReady.
func (h *Handler) snapshot() (*servingState, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.state == nil {
		return nil, ErrNotReady
	}
	return h.state, nil
}

// Ready reports whether a model is serving.
func (h *Handler) Ready() bool {
	_, err := h.snapshot()
	return err == nil
}

// Analyzer returns the insight analyzer of the serving dataset.
func (h *Handler) Analyzer() (*insights.Analyzer, error) {
	st, err := h.snapshot()
	if err != nil {
		return nil, err
	}
	return st.analyzer, nil
}

// Params returns the hyperparameters new fits use.
func (h *Handler) Params() recommend.Hyperparameters {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.params
}

// Reload reads the configured source and installs the result. A dataset
// whose fingerprint matches the serving one is not refit.
func (h *Handler) Reload(ctx context.Context) error {
	if h.source == nil {
		return errors.New("api: no transaction source configured")
	}
	if !h.busy.CompareAndSwap(false, true) {
		return ErrFitInProgress
	}
	defer h.busy.Store(false)

	start := time.Now()
	ds, err := transactions.Load(ctx, h.source)
	rows := 0
	if ds != nil {
		rows = ds.Len()
	}
	metrics.RecordDatasetLoad(h.source.Name(), rows, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}

	if st, err := h.snapshot(); err == nil && st.dataset.Fingerprint() == ds.Fingerprint() {
		h.logger.Debug().
			Str("source", h.source.Name()).
			Str("fingerprint", st.fingerprint()).
			Msg("dataset unchanged, keeping serving model")
		return nil
	}

	return h.install(ctx, ds)
}

// Install fits a model and builds the insight reports for ds, then swaps
// them in. The previous state keeps serving until both are ready.
func (h *Handler) Install(ctx context.Context, ds *transactions.Dataset) error {
	if !h.busy.CompareAndSwap(false, true) {
		return ErrFitInProgress
	}
	defer h.busy.Store(false)
	return h.install(ctx, ds)
}

func (h *Handler) install(ctx context.Context, ds *transactions.Dataset) error {
	if ds == nil || ds.Len() == 0 {
		return fmt.Errorf("install: %w", transactions.ErrDataUnavailable)
	}
	params := h.Params()
	start := time.Now()

	var (
		model    recommend.Model
		analyzer *insights.Analyzer
		summary  insights.Summary
	)

	// The model fit and the insight reports read the dataset independently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := h.engine.Fit(gctx, ds, params)
		if err != nil {
			return err
		}
		model = m
		return nil
	})
	g.Go(func() error {
		a, err := insights.NewAnalyzer(ds, h.insightsCfg, h.logger)
		if err != nil {
			return fmt.Errorf("build insights: %w", err)
		}
		analyzer = a
		summary = a.DashboardSummary()
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("install dataset: %w", err)
	}

	next := &servingState{
		dataset:  ds,
		model:    model,
		analyzer: analyzer,
		summary:  summary,
		loadedAt: time.Now().UTC(),
	}

	h.mu.Lock()
	prev := h.state
	h.state = next
	h.mu.Unlock()

	if prev != nil && prev.dataset.Fingerprint() != ds.Fingerprint() {
		h.engine.InvalidateDataset(prev.dataset.Fingerprint())
	}

	info := model.Info()
	h.logger.Info().
		Str("source", ds.Source()).
		Str("fingerprint", next.fingerprint()).
		Int("rows", ds.Len()).
		Int("rules", info.Rules).
		Int("rank", info.Rank).
		Dur("duration", time.Since(start)).
		Msg("serving new dataset")
	return nil
}

// Refit fits the serving dataset with params and serves the result.
// Unless force is set, a cached model for the same parameters is reused.
// It reports whether the model came from the fit cache.
//
//nolint:gocritic // Hyperparameters is small and copied on purpose
func (h *Handler) Refit(ctx context.Context, params recommend.Hyperparameters, force bool) (recommend.Model, bool, error) {
	if !h.busy.CompareAndSwap(false, true) {
		return nil, false, ErrFitInProgress
	}
	defer h.busy.Store(false)

	st, err := h.snapshot()
	if err != nil {
		return nil, false, err
	}

	cached := !force && h.engine.Cached(st.dataset.Fingerprint(), params)

	var model recommend.Model
	if force {
		model, err = h.engine.Refit(ctx, st.dataset, params)
	} else {
		model, err = h.engine.Fit(ctx, st.dataset, params)
	}
	if err != nil {
		return nil, false, err
	}

	// busy excludes installs, so st is still the serving state.
	next := *st
	next.model = model

	h.mu.Lock()
	h.state = &next
	h.params = params
	h.mu.Unlock()

	h.logger.Info().
		Str("key", recommend.CacheKey(st.dataset.Fingerprint(), params)).
		Bool("cached", cached).
		Bool("force", force).
		Msg("serving refitted model")
	return model, cached, nil
}
