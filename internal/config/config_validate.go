// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/stylehive/internal/logging"
)

// Validate checks that the configuration is complete and consistent.
// Errors name the offending field by its config path.
func (c *Config) Validate() error {
	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	// Engine sections share their field paths with recommend.Config.
	if err := c.Recommend().Validate(); err != nil {
		return err
	}

	if err := c.validateInsights(); err != nil {
		return err
	}

	if err := c.validateGraph(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateData validates the transaction source
func (c *Config) validateData() error {
	switch c.Data.Source {
	case SourceCSV:
		if c.Data.Path == "" {
			return errors.New("data.path is required when data.source is csv")
		}
	case SourceDuckDB:
		if c.Data.Path == "" && c.Database.Path == "" {
			return errors.New("data.path or database.path is required when data.source is duckdb")
		}
	default:
		return fmt.Errorf("data.source must be one of: csv, duckdb, got %q", c.Data.Source)
	}

	if c.Data.ReloadInterval < 0 {
		return fmt.Errorf("data.reload_interval must be non-negative, got %v", c.Data.ReloadInterval)
	}
	if c.Data.ReloadInterval > 0 && c.Data.ReloadInterval < minReloadInterval {
		return fmt.Errorf("data.reload_interval must be 0 or at least %v, got %v", minReloadInterval, c.Data.ReloadInterval)
	}
	return nil
}

const minReloadInterval = 10 * time.Second

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive, got %v", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive, got %v", c.Server.WriteTimeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %v", c.Server.ShutdownTimeout)
	}
	if c.Server.DefaultTopN < 1 {
		return fmt.Errorf("server.default_top_n must be positive, got %d", c.Server.DefaultTopN)
	}
	if c.Server.MaxTopN < c.Server.DefaultTopN {
		return fmt.Errorf("server.max_top_n must be >= server.default_top_n, got %d < %d", c.Server.MaxTopN, c.Server.DefaultTopN)
	}
	if c.Server.FitTimeout <= 0 {
		return fmt.Errorf("server.fit_timeout must be positive, got %v", c.Server.FitTimeout)
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Server.RateLimitDisabled {
		return nil
	}
	if c.Server.RateLimitRequests < minRateLimitRequests || c.Server.RateLimitRequests > maxRateLimitRequests {
		return fmt.Errorf("server.rate_limit_requests must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Server.RateLimitWindow < minRateLimitWindow || c.Server.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("server.rate_limit_window must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Server.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// validateCORS validates every non-wildcard origin.
func (c *Config) validateCORS() error {
	for _, origin := range c.Server.CORSOrigins {
		if origin == "*" {
			continue
		}
		if err := validateOrigin(origin); err != nil {
			return fmt.Errorf("server.cors_origins entry %q is invalid: %w", origin, err)
		}
	}
	return nil
}

// validateInsights validates the price table and report thresholds.
// insights.Config names its fields without the section prefix.
func (c *Config) validateInsights() error {
	if err := c.InsightsReport().Validate(); err != nil {
		return fmt.Errorf("insights.%w", err)
	}
	return nil
}

// validateGraph validates Neo4j settings (only if enabled)
func (c *Config) validateGraph() error {
	if !c.Graph.Enabled {
		return nil
	}
	if err := validateNeo4jURI(c.Graph.URI); err != nil {
		return fmt.Errorf("graph.uri is invalid: %w", err)
	}
	if c.Graph.Timeout <= 0 {
		return fmt.Errorf("graph.timeout must be positive, got %v", c.Graph.Timeout)
	}
	if c.Graph.MaxPoolSize < 0 {
		return fmt.Errorf("graph.max_pool_size must be non-negative, got %d", c.Graph.MaxPoolSize)
	}
	return nil
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: trace, debug, info, warn, error, off, got %q", c.Logging.Level)
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, console, got %q", c.Logging.Format)
	}
	return nil
}
