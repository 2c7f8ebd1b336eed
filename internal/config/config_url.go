// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package config

import (
	"fmt"
	"net/url"
)

// validateOrigin validates a CORS origin: scheme and host only.
func validateOrigin(rawURL string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got: %s", parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("host is required")
	}

	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("origin should not contain a path: %s", parsedURL.Path)
	}

	return nil
}

// validateNeo4jURI validates a Neo4j connection URI.
// Supports: neo4j, neo4j+s, neo4j+ssc, bolt, bolt+s and bolt+ssc schemes.
func validateNeo4jURI(rawURL string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	validSchemes := map[string]bool{
		"neo4j": true, "neo4j+s": true, "neo4j+ssc": true,
		"bolt": true, "bolt+s": true, "bolt+ssc": true,
	}
	if !validSchemes[parsedURL.Scheme] {
		return fmt.Errorf("scheme must be neo4j or bolt (optionally +s or +ssc), got: %s", parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("host is required (e.g., localhost:7687)")
	}

	return nil
}
