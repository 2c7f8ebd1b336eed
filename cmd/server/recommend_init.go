// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/stylehive/internal/api"
	"github.com/tomtom215/stylehive/internal/config"
	"github.com/tomtom215/stylehive/internal/recommend"
	"github.com/tomtom215/stylehive/internal/recommend/algorithms"
	"github.com/tomtom215/stylehive/internal/transactions"
)

// initHandler builds the fit engine and API handler, then loads the
// dataset. The model fit and the insight summary are warmed concurrently
// by the first reload, so the server starts ready.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initHandler(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*api.Handler, error) {
	engineCfg := cfg.Recommend()
	logger.Info().
		Float64("min_support", engineCfg.MarketBasket.MinSupport).
		Float64("min_confidence", engineCfg.MarketBasket.MinConfidence).
		Int("rank", engineCfg.Collaborative.Rank).
		Bool("fit_cache", engineCfg.Cache.Enabled).
		Msg("initializing recommendation engine")

	engine, err := recommend.NewEngine(engineCfg, algorithms.FitHybrid, logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	// Periodic reloads against an unreachable source back off through the breaker.
	source := transactions.NewBreakerSource(cfg.TransactionSource(), transactions.BreakerConfig{})
	handler, err := api.NewHandler(api.HandlerConfig{
		Engine:      engine,
		Insights:    cfg.InsightsReport(),
		Source:      source,
		Version:     version,
		GraphExport: cfg.Graph.Enabled,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create api handler: %w", err)
	}

	start := time.Now()
	if err := handler.Reload(ctx); err != nil {
		return nil, fmt.Errorf("initial load from %s: %w", source.Name(), err)
	}
	logger.Info().
		Str("source", source.Name()).
		Dur("duration", time.Since(start)).
		Msg("dataset loaded and model warmed")

	return handler, nil
}

// routerConfig maps server settings onto the API router.
func routerConfig(cfg *config.Config) api.RouterConfig {
	rc := api.DefaultRouterConfig()
	rc.CORSOrigins = cfg.Server.CORSOrigins
	rc.RateLimitRequests = cfg.Server.RateLimitRequests
	rc.RateLimitWindow = cfg.Server.RateLimitWindow
	rc.RateLimitDisabled = cfg.Server.RateLimitDisabled
	return rc
}
