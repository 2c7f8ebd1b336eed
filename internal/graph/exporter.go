// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

// Package graph exports the product affinity network to Neo4j.
//
// Products become (:Product {name}) nodes and affinity edges become
// [:CO_PURCHASED {weight, strength}] relationships. Writes use MERGE, so
// repeated exports converge on the latest network instead of duplicating it.
package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"

	"github.com/tomtom215/stylehive/internal/insights"
	"github.com/tomtom215/stylehive/internal/metrics"
)

// Config holds the Neo4j connection configuration.
type Config struct {
	URI         string
	Username    string
	Password    string
	Database    string
	Timeout     time.Duration
	MaxPoolSize int
}

// QueryRunner executes one write query.
type QueryRunner func(ctx context.Context, cypher string, params map[string]any) error

const (
	constraintQuery = `CREATE CONSTRAINT product_name_unique IF NOT EXISTS FOR (p:Product) REQUIRE p.name IS UNIQUE`

	nodesQuery = `
UNWIND $nodes AS name
MERGE (p:Product {name: name})
SET p.synced_at = $synced_at
`

	edgesQuery = `
UNWIND $edges AS e
MATCH (a:Product {name: e.source})
MATCH (b:Product {name: e.target})
MERGE (a)-[r:CO_PURCHASED]->(b)
SET r.weight = e.weight,
    r.strength = e.strength,
    r.synced_at = $synced_at
`
)

// Exporter writes affinity networks to a graph database.
type Exporter struct {
	run    QueryRunner
	close  func(context.Context) error
	logger zerolog.Logger
	now    func() time.Time
}

// New connects to Neo4j and verifies connectivity.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (*Exporter, error) {
	if cfg.URI == "" {
		return nil, errors.New("graph: neo4j uri is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxPoolSize <= 0 {
		cfg.MaxPoolSize = 50
	}

	auth := neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth, func(c *neo4j.Config) {
		c.MaxConnectionPoolSize = cfg.MaxPoolSize
		c.SocketConnectTimeout = cfg.Timeout
	})
	if err != nil {
		return nil, fmt.Errorf("graph: init driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(verifyCtx)
		return nil, fmt.Errorf("graph: verify connectivity: %w", err)
	}

	opts := []neo4j.ExecuteQueryConfigurationOption{neo4j.ExecuteQueryWithWritersRouting()}
	if cfg.Database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(cfg.Database))
	}
	run := func(ctx context.Context, cypher string, params map[string]any) error {
		_, err := neo4j.ExecuteQuery(ctx, driver, cypher, params, neo4j.EagerResultTransformer, opts...)
		return err
	}

	e := NewWithRunner(run, logger)
	e.close = driver.Close
	e.logger.Info().Str("uri", cfg.URI).Str("database", cfg.Database).Msg("connected to neo4j")
	return e, nil
}

// NewWithRunner creates an exporter over an arbitrary query runner.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWithRunner(run QueryRunner, logger zerolog.Logger) *Exporter {
	return &Exporter{
		run:    run,
		logger: logger.With().Str("component", "graph").Logger(),
		now:    time.Now,
	}
}

// ExportResult reports what an export wrote.
type ExportResult struct {
	Nodes    int           `json:"nodes"`
	Edges    int           `json:"edges"`
	Duration time.Duration `json:"duration"`
}

// Export upserts every node and edge of network. The uniqueness constraint
// is created first on a best-effort basis.
func (e *Exporter) Export(ctx context.Context, network insights.AffinityNetwork) (ExportResult, error) {
	start := time.Now()
	res, err := e.export(ctx, network)
	res.Duration = time.Since(start)
	metrics.RecordGraphExport(res.Edges, res.Duration, err)

	if err != nil {
		e.logger.Error().Err(err).Msg("affinity network export failed")
		return res, err
	}
	e.logger.Info().
		Int("nodes", res.Nodes).
		Int("edges", res.Edges).
		Dur("duration", res.Duration).
		Msg("affinity network exported")
	return res, nil
}

//nolint:gocritic // network is passed by value once per export
func (e *Exporter) export(ctx context.Context, network insights.AffinityNetwork) (ExportResult, error) {
	var res ExportResult

	if err := e.run(ctx, constraintQuery, nil); err != nil {
		e.logger.Warn().Err(err).Msg("neo4j schema init failed (continuing)")
	}

	syncedAt := e.now().UTC().Format(time.RFC3339Nano)

	if len(network.Nodes) > 0 {
		nodes := make([]any, len(network.Nodes))
		for i, n := range network.Nodes {
			nodes[i] = n
		}
		if err := e.run(ctx, nodesQuery, map[string]any{"nodes": nodes, "synced_at": syncedAt}); err != nil {
			return res, fmt.Errorf("merge product nodes: %w", err)
		}
		res.Nodes = len(nodes)
	}

	if len(network.Edges) > 0 {
		edges := make([]any, len(network.Edges))
		for i, edge := range network.Edges {
			edges[i] = map[string]any{
				"source":   edge.Source,
				"target":   edge.Target,
				"weight":   int64(edge.Weight),
				"strength": edge.Strength,
			}
		}
		if err := e.run(ctx, edgesQuery, map[string]any{"edges": edges, "synced_at": syncedAt}); err != nil {
			return res, fmt.Errorf("merge co-purchase edges: %w", err)
		}
		res.Edges = len(edges)
	}

	return res, nil
}

// Close releases the driver, if any.
func (e *Exporter) Close(ctx context.Context) error {
	if e.close == nil {
		return nil
	}
	err := e.close(ctx)
	e.close = nil
	return err
}
