// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

// Package testinfra provides container helpers for integration tests.
//
// It uses testcontainers-go to start throwaway services. Everything here
// is behind the integration build tag:
//
//	go test -tags integration ./internal/graph/...
//
// # Neo4j Container
//
// Neo4jContainer runs a single Neo4j instance for the affinity graph
// exporter:
//
//	func TestExport(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    neo, err := testinfra.NewNeo4jContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, neo.Container)
//
//	    exporter, err := graph.New(ctx, graph.Config{
//	        URI:      neo.BoltURI,
//	        Username: neo.Username,
//	        Password: neo.Password,
//	    }, zerolog.Nop())
//	    // ...
//	}
//
// Tests are skipped when Docker is not available. The first run pulls the
// image; later runs use the local cache.
package testinfra
