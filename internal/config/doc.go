// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

/*
Package config provides centralized configuration management for StyleHive.

Configuration is loaded with koanf in three layers, each overriding the
previous one:

 1. Struct defaults (defaultConfig)
 2. A YAML file: CONFIG_PATH, then config.yaml, config.yml,
    /etc/stylehive/config.yaml and /etc/stylehive/config.yml
 3. Mapped environment variables

# Sections

  - data: transaction source (csv or duckdb), CSV path, reload interval
  - database: DuckDB database file and table
  - market_basket: Apriori support and confidence thresholds
  - collaborative: SVD rank, oversampling, power iterations, seed
  - hybrid: blend weights
  - insights: price table and report thresholds
  - cache: fit cache size and TTL
  - server: HTTP listener, CORS, rate limits, query sizes, fit timeout
  - graph: optional Neo4j export of the affinity network
  - logging: level, format, caller, timestamp

# Environment Variables

Only listed variables are read. Common ones:

  - DATA_PATH: transaction CSV (default: data/transactions.csv)
  - DATA_SOURCE: csv or duckdb (default: csv)
  - MBA_MIN_SUPPORT, MBA_MIN_CONFIDENCE: rule thresholds (default: 0.01, 0.1)
  - CF_RANK: latent factors (default: 10)
  - HTTP_PORT: listen port (default: 8080)
  - CORS_ORIGINS: comma-separated origins (default: *)
  - NEO4J_ENABLED, NEO4J_URI, NEO4J_USERNAME, NEO4J_PASSWORD
  - LOG_LEVEL, LOG_FORMAT

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal(err)
	}
	engine, err := recommend.NewEngine(cfg.Recommend(), algorithms.FitHybrid, logger)

Validate reports the first invalid field by its config path, for example
"market_basket.min_support must be in (0, 1], got 0.000000".
*/
package config
