// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

/*
Package main is the entry point for the StyleHive server.

StyleHive turns a fashion retailer's transaction history into product
recommendations and business insights. It fits a hybrid model (market
basket rules blended with truncated SVD latent factors) and serves it
over a JSON REST API.

# Application Architecture

Services run under Suture v4 supervision:

	RootSupervisor ("stylehive")
	├── DataSupervisor ("data-layer")
	│   └── Reload service (optional, DATA_RELOAD_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (/api/v1, /health, /metrics)

Startup order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog, JSON or console output
 3. Engine: fit engine with an LRU fit cache keyed by dataset fingerprint
 4. Dataset: CSV or DuckDB source behind a circuit breaker
 5. Warm-up: model fit and dashboard summary computed concurrently
 6. Graph export: affinity network written to Neo4j (optional, non-fatal)
 7. Supervisor tree: HTTP server and reload service

A failed initial load is fatal. After startup, failed reloads are logged
and the previous model keeps serving.

# Configuration

Common environment variables:

	DATA_SOURCE             csv or duckdb (default csv)
	DATA_PATH               transaction CSV (default data/transactions.csv)
	DATA_RELOAD_INTERVAL    periodic reload, e.g. 1h (default off)
	DUCKDB_PATH             DuckDB database file for DATA_SOURCE=duckdb
	MBA_MIN_SUPPORT         minimum itemset support (default 0.01)
	CF_RANK                 latent factors (default 10)
	HTTP_PORT               listen port (default 8080)
	CORS_ORIGINS            comma-separated allowed origins
	NEO4J_ENABLED           export the affinity network to Neo4j
	LOG_LEVEL               trace, debug, info, warn or error

CONFIG_PATH points at an explicit YAML file. Environment variables
override the file.

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server drains within
HTTP_SHUTDOWN_TIMEOUT; services that fail to stop are reported and the
process exits non-zero.

# Build

	go build -ldflags "-X main.version=1.2.0" ./cmd/server
*/
package main
