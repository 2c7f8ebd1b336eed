// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package config

import (
	"net"
	"os"
	"strconv"
	"time"

	"github.com/tomtom215/stylehive/internal/graph"
	"github.com/tomtom215/stylehive/internal/insights"
	"github.com/tomtom215/stylehive/internal/logging"
	"github.com/tomtom215/stylehive/internal/recommend"
	"github.com/tomtom215/stylehive/internal/transactions"
)

// Data source kinds.
const (
	SourceCSV    = "csv"
	SourceDuckDB = "duckdb"
)

// Config holds all application configuration.
type Config struct {
	Data          DataConfig          `koanf:"data"`
	Database      DatabaseConfig      `koanf:"database"`
	MarketBasket  MarketBasketConfig  `koanf:"market_basket"`
	Collaborative CollaborativeConfig `koanf:"collaborative"`
	Hybrid        HybridConfig        `koanf:"hybrid"`
	Insights      InsightsConfig      `koanf:"insights"`
	Cache         CacheConfig         `koanf:"cache"`
	Server        ServerConfig        `koanf:"server"`
	Graph         GraphConfig         `koanf:"graph"`
	Logging       LoggingConfig       `koanf:"logging"`
}

// DataConfig selects where transactions are read from.
type DataConfig struct {
	// Source is csv or duckdb.
	Source string `koanf:"source"`

	// Path is the transaction CSV file. With Source=duckdb and no
	// database path, DuckDB scans this file.
	Path string `koanf:"path"`

	// ReloadInterval re-reads the data and refits on a schedule.
	// Zero disables periodic reloads.
	ReloadInterval time.Duration `koanf:"reload_interval"`
}

// DatabaseConfig holds DuckDB settings for Source=duckdb.
type DatabaseConfig struct {
	// Path is a DuckDB database file opened read-only. Empty means the
	// CSV at data.path is scanned in memory.
	Path string `koanf:"path"`

	// Table holds the transactions inside the database file.
	Table string `koanf:"table"`
}

// MarketBasketConfig holds Apriori thresholds.
type MarketBasketConfig struct {
	MinSupport    float64 `koanf:"min_support"`
	MinConfidence float64 `koanf:"min_confidence"`
	MaxLen        int     `koanf:"max_len"`
	MaxBaskets    int     `koanf:"max_baskets"`
}

// CollaborativeConfig holds truncated SVD parameters.
type CollaborativeConfig struct {
	Rank            int   `koanf:"rank"`
	Oversamples     int   `koanf:"oversamples"`
	PowerIterations int   `koanf:"power_iterations"`
	Seed            int64 `koanf:"seed"`
}

// HybridConfig holds the hybrid blend weights.
type HybridConfig struct {
	MarketBasketWeight  float64 `koanf:"market_basket_weight"`
	CollaborativeWeight float64 `koanf:"collaborative_weight"`
}

// InsightsConfig holds the price table and report thresholds.
type InsightsConfig struct {
	// Prices replaces the built-in catalog price list when set in a
	// config file.
	Prices map[string]float64 `koanf:"prices"`

	TopProducts          int     `koanf:"top_products"`
	CoPurchaseMinPercent float64 `koanf:"co_purchase_min_percent"`
	CoPurchaseLimit      int     `koanf:"co_purchase_limit"`
	SummaryCoPurchases   int     `koanf:"summary_co_purchases"`
	AffinityMinCount     int     `koanf:"affinity_min_count"`
	AffinityLimit        int     `koanf:"affinity_limit"`

	HighValueMinPurchases   int     `koanf:"high_value_min_purchases"`
	HighValueMinPerDay      float64 `koanf:"high_value_min_per_day"`
	MediumValueMinPurchases int     `koanf:"medium_value_min_purchases"`
}

// CacheConfig holds fit cache settings.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	MaxEntries int           `koanf:"max_entries"`
	TTL        time.Duration `koanf:"ttl"`
}

// ServerConfig holds HTTP server and API settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// DefaultTopN applies when a request gives no n.
	DefaultTopN int `koanf:"default_top_n"`
	// MaxTopN caps n.
	MaxTopN int `koanf:"max_top_n"`
	// FitTimeout bounds one model fit.
	FitTimeout time.Duration `koanf:"fit_timeout"`
}

// GraphConfig holds the Neo4j export settings.
type GraphConfig struct {
	Enabled     bool          `koanf:"enabled"`
	URI         string        `koanf:"uri"`
	Username    string        `koanf:"username"`
	Password    string        `koanf:"password"`
	Database    string        `koanf:"database"`
	Timeout     time.Duration `koanf:"timeout"`
	MaxPoolSize int           `koanf:"max_pool_size"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level     string `koanf:"level"`
	Format    string `koanf:"format"`
	Caller    bool   `koanf:"caller"`
	Timestamp bool   `koanf:"timestamp"`
}

// Recommend returns the recommendation engine configuration.
func (c *Config) Recommend() *recommend.Config {
	return &recommend.Config{
		MarketBasket: recommend.MarketBasketConfig{
			MinSupport:    c.MarketBasket.MinSupport,
			MinConfidence: c.MarketBasket.MinConfidence,
			MaxLen:        c.MarketBasket.MaxLen,
			MaxBaskets:    c.MarketBasket.MaxBaskets,
		},
		Collaborative: recommend.CollaborativeConfig{
			Rank:            c.Collaborative.Rank,
			Oversamples:     c.Collaborative.Oversamples,
			PowerIterations: c.Collaborative.PowerIterations,
		},
		Hybrid: recommend.HybridWeights{
			MarketBasket:  c.Hybrid.MarketBasketWeight,
			Collaborative: c.Hybrid.CollaborativeWeight,
		},
		Limits: recommend.LimitsConfig{
			DefaultTopN: c.Server.DefaultTopN,
			MaxTopN:     c.Server.MaxTopN,
			FitTimeout:  c.Server.FitTimeout,
		},
		Cache: recommend.CacheConfig{
			Enabled:    c.Cache.Enabled,
			MaxEntries: c.Cache.MaxEntries,
			TTL:        c.Cache.TTL,
		},
		Seed: c.Collaborative.Seed,
	}
}

// InsightsReport returns the insight analyzer configuration.
func (c *Config) InsightsReport() *insights.Config {
	prices := make(map[string]float64, len(c.Insights.Prices))
	for product, price := range c.Insights.Prices {
		prices[product] = price
	}
	return &insights.Config{
		Prices:               prices,
		TopProducts:          c.Insights.TopProducts,
		CoPurchaseMinPercent: c.Insights.CoPurchaseMinPercent,
		CoPurchaseLimit:      c.Insights.CoPurchaseLimit,
		SummaryCoPurchases:   c.Insights.SummaryCoPurchases,
		AffinityMinCount:     c.Insights.AffinityMinCount,
		AffinityLimit:        c.Insights.AffinityLimit,
		Segments: insights.SegmentThresholds{
			HighValueMinPurchases:   c.Insights.HighValueMinPurchases,
			HighValueMinPerDay:      c.Insights.HighValueMinPerDay,
			MediumValueMinPurchases: c.Insights.MediumValueMinPurchases,
		},
	}
}

// Log returns the logging configuration, writing to stderr.
func (c *Config) Log() logging.Config {
	return logging.Config{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		Caller:    c.Logging.Caller,
		Timestamp: c.Logging.Timestamp,
		Output:    os.Stderr,
	}
}

// Neo4j returns the graph exporter configuration.
func (c *Config) Neo4j() graph.Config {
	return graph.Config{
		URI:         c.Graph.URI,
		Username:    c.Graph.Username,
		Password:    c.Graph.Password,
		Database:    c.Graph.Database,
		Timeout:     c.Graph.Timeout,
		MaxPoolSize: c.Graph.MaxPoolSize,
	}
}

// TransactionSource returns the configured transaction source.
func (c *Config) TransactionSource() transactions.Source {
	if c.Data.Source == SourceDuckDB {
		if c.Database.Path != "" {
			return &transactions.DuckDBSource{Database: c.Database.Path, Table: c.Database.Table}
		}
		return &transactions.DuckDBSource{CSVPath: c.Data.Path}
	}
	return &transactions.CSVSource{Path: c.Data.Path}
}

// Address returns the HTTP listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
