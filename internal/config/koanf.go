// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/stylehive/internal/insights"
	"github.com/tomtom215/stylehive/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/stylehive/config.yaml",
	"/etc/stylehive/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with every default applied. Engine and
// insight defaults come from their packages.
func defaultConfig() *Config {
	rc := recommend.DefaultConfig()
	ic := insights.DefaultConfig()

	return &Config{
		Data: DataConfig{
			Source:         SourceCSV,
			Path:           "data/transactions.csv",
			ReloadInterval: 0,
		},
		Database: DatabaseConfig{
			Path:  "",
			Table: "transactions",
		},
		MarketBasket: MarketBasketConfig{
			MinSupport:    rc.MarketBasket.MinSupport,
			MinConfidence: rc.MarketBasket.MinConfidence,
			MaxLen:        rc.MarketBasket.MaxLen,
			MaxBaskets:    rc.MarketBasket.MaxBaskets,
		},
		Collaborative: CollaborativeConfig{
			Rank:            rc.Collaborative.Rank,
			Oversamples:     rc.Collaborative.Oversamples,
			PowerIterations: rc.Collaborative.PowerIterations,
			Seed:            rc.Seed,
		},
		Hybrid: HybridConfig{
			MarketBasketWeight:  rc.Hybrid.MarketBasket,
			CollaborativeWeight: rc.Hybrid.Collaborative,
		},
		Insights: InsightsConfig{
			Prices:                  ic.Prices,
			TopProducts:             ic.TopProducts,
			CoPurchaseMinPercent:    ic.CoPurchaseMinPercent,
			CoPurchaseLimit:         ic.CoPurchaseLimit,
			SummaryCoPurchases:      ic.SummaryCoPurchases,
			AffinityMinCount:        ic.AffinityMinCount,
			AffinityLimit:           ic.AffinityLimit,
			HighValueMinPurchases:   ic.Segments.HighValueMinPurchases,
			HighValueMinPerDay:      ic.Segments.HighValueMinPerDay,
			MediumValueMinPurchases: ic.Segments.MediumValueMinPurchases,
		},
		Cache: CacheConfig{
			Enabled:    rc.Cache.Enabled,
			MaxEntries: rc.Cache.MaxEntries,
			TTL:        rc.Cache.TTL,
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      2 * time.Minute, // POST /model/fit runs a full fit
			ShutdownTimeout:   15 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			DefaultTopN:       rc.Limits.DefaultTopN,
			MaxTopN:           rc.Limits.MaxTopN,
			FitTimeout:        rc.Limits.FitTimeout,
		},
		Graph: GraphConfig{
			Enabled:     false,
			URI:         "neo4j://localhost:7687",
			Username:    "neo4j",
			Password:    "",
			Database:    "neo4j",
			Timeout:     30 * time.Second,
			MaxPoolSize: 10,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "json",
			Caller:    false,
			Timestamp: true,
		},
	}
}

// LoadWithKoanf loads configuration in layers: defaults, then the first
// config file found, then mapped environment variables.
func LoadWithKoanf() (*Config, error) {
	return load(findConfigFile())
}

// LoadFile loads configuration with an explicit config file path.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return load(path)
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Step 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Step 2: Load config file if it exists
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Step 3: Load environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	// Data mappings
	"data_source":          "data.source",
	"data_path":            "data.path",
	"data_reload_interval": "data.reload_interval",

	// Database mappings
	"duckdb_path":  "database.path",
	"duckdb_table": "database.table",

	// Market basket mappings
	"mba_min_support":    "market_basket.min_support",
	"mba_min_confidence": "market_basket.min_confidence",
	"mba_max_len":        "market_basket.max_len",
	"mba_max_baskets":    "market_basket.max_baskets",

	// Collaborative filtering mappings
	"cf_rank":             "collaborative.rank",
	"cf_oversamples":      "collaborative.oversamples",
	"cf_power_iterations": "collaborative.power_iterations",
	"cf_seed":             "collaborative.seed",

	// Hybrid mappings
	"hybrid_mba_weight": "hybrid.market_basket_weight",
	"hybrid_cf_weight":  "hybrid.collaborative_weight",

	// Insights mappings
	"insights_top_products":            "insights.top_products",
	"insights_co_purchase_min_percent": "insights.co_purchase_min_percent",
	"insights_co_purchase_limit":       "insights.co_purchase_limit",
	"insights_affinity_min_count":      "insights.affinity_min_count",
	"insights_affinity_limit":          "insights.affinity_limit",

	// Cache mappings
	"cache_enabled":     "cache.enabled",
	"cache_max_entries": "cache.max_entries",
	"cache_ttl":         "cache.ttl",

	// Server mappings
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":          "server.cors_origins",
	"rate_limit_requests":   "server.rate_limit_requests",
	"rate_limit_window":     "server.rate_limit_window",
	"disable_rate_limit":    "server.rate_limit_disabled",
	"api_default_top_n":     "server.default_top_n",
	"api_max_top_n":         "server.max_top_n",
	"fit_timeout":           "server.fit_timeout",

	// Neo4j mappings
	"neo4j_enabled":       "graph.enabled",
	"neo4j_uri":           "graph.uri",
	"neo4j_username":      "graph.username",
	"neo4j_password":      "graph.password",
	"neo4j_database":      "graph.database",
	"neo4j_timeout":       "graph.timeout",
	"neo4j_max_pool_size": "graph.max_pool_size",

	// Logging mappings
	"log_level":     "logging.level",
	"log_format":    "logging.format",
	"log_caller":    "logging.caller",
	"log_timestamp": "logging.timestamp",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - DATA_PATH -> data.path
//   - MBA_MIN_SUPPORT -> market_basket.min_support
//   - CF_RANK -> collaborative.rank
//   - HTTP_PORT -> server.port
//   - NEO4J_URI -> graph.uri
func envTransformFunc(key string) string {
	// Unmapped variables return "" so the environment cannot pollute config.
	return envMappings[strings.ToLower(key)]
}
