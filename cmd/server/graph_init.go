// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/stylehive/internal/api"
	"github.com/tomtom215/stylehive/internal/config"
	"github.com/tomtom215/stylehive/internal/graph"
)

// exportAffinityGraph writes the serving affinity network to Neo4j when
// graph export is enabled. Failures are logged and never stop the server.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func exportAffinityGraph(ctx context.Context, cfg *config.Config, handler *api.Handler, logger zerolog.Logger) {
	if !cfg.Graph.Enabled {
		logger.Debug().Msg("Neo4j export disabled (NEO4J_ENABLED=false)")
		return
	}

	analyzer, err := handler.Analyzer()
	if err != nil {
		logger.Warn().Err(err).Msg("skipping affinity graph export")
		return
	}

	exporter, err := graph.New(ctx, cfg.Neo4j(), logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Neo4j unavailable, affinity graph not exported")
		return
	}
	defer func() {
		if err := exporter.Close(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("error closing Neo4j driver")
		}
	}()

	exportCtx, cancel := context.WithTimeout(ctx, cfg.Graph.Timeout)
	defer cancel()

	res, err := exporter.Export(exportCtx, analyzer.AffinityNetwork())
	if err != nil {
		return
	}
	logger.Info().
		Int("nodes", res.Nodes).
		Int("edges", res.Edges).
		Dur("duration", res.Duration).
		Msg("affinity graph exported to Neo4j")
}
