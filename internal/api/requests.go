// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/stylehive/internal/recommend"
	"github.com/tomtom215/stylehive/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// defaultListLimit is the page size of rule and itemset listings.
const defaultListLimit = 100

// TopNQuery is the optional result size of recommendation and top-product
// queries. Zero means the configured default.
type TopNQuery struct {
	N int `json:"n" validate:"gte=0"`
}

// BasketRequest is the body of POST /recommendations/basket.
type BasketRequest struct {
	Products []string `json:"products" validate:"required,min=1,max=100,unique,dive,product"`
	N        int      `json:"n" validate:"gte=0"`
}

// RulesQuery filters GET /rules.
type RulesQuery struct {
	Product string  `json:"product" validate:"omitempty,product"`
	MinLift float64 `json:"min_lift" validate:"gte=0"`
	Limit   int     `json:"limit" validate:"gte=0,lte=1000"`
}

// ItemsetsQuery filters GET /itemsets.
type ItemsetsQuery struct {
	MinSize int `json:"min_size" validate:"gte=0"`
	Limit   int `json:"limit" validate:"gte=0,lte=1000"`
}

// FitRequest is the body of POST /model/fit. Omitted fields keep the
// hyperparameters currently in use.
type FitRequest struct {
	MinSupport          *float64 `json:"min_support"`
	MinConfidence       *float64 `json:"min_confidence"`
	MaxLen              *int     `json:"max_len"`
	MaxBaskets          *int     `json:"max_baskets"`
	Rank                *int     `json:"rank"`
	Oversamples         *int     `json:"oversamples"`
	PowerIterations     *int     `json:"power_iterations"`
	MarketBasketWeight  *float64 `json:"market_basket_weight"`
	CollaborativeWeight *float64 `json:"collaborative_weight"`
	Seed                *int64   `json:"seed"`

	// Force bypasses the fit cache.
	Force bool `json:"force"`
}

// apply overlays the request on base.
//
//nolint:gocritic // Hyperparameters is small and copied on purpose
func (f *FitRequest) apply(base recommend.Hyperparameters) recommend.Hyperparameters {
	p := base
	if f.MinSupport != nil {
		p.MinSupport = *f.MinSupport
	}
	if f.MinConfidence != nil {
		p.MinConfidence = *f.MinConfidence
	}
	if f.MaxLen != nil {
		p.MaxLen = *f.MaxLen
	}
	if f.MaxBaskets != nil {
		p.MaxBaskets = *f.MaxBaskets
	}
	if f.Rank != nil {
		p.Rank = *f.Rank
	}
	if f.Oversamples != nil {
		p.Oversamples = *f.Oversamples
	}
	if f.PowerIterations != nil {
		p.PowerIterations = *f.PowerIterations
	}
	if f.MarketBasketWeight != nil {
		p.MarketBasketWeight = *f.MarketBasketWeight
	}
	if f.CollaborativeWeight != nil {
		p.CollaborativeWeight = *f.CollaborativeWeight
	}
	if f.Seed != nil {
		p.Seed = *f.Seed
	}
	return p
}

// decodeJSONBody decodes a bounded JSON body into dst, rejecting unknown
// fields and trailing data.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// intQuery parses an integer query parameter, returning def when absent.
func intQuery(r *http.Request, key string, def int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

// floatQuery parses a float query parameter, returning def when absent.
func floatQuery(r *http.Request, key string, def float64) (float64, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return f, nil
}

// boolQuery parses a boolean query parameter, returning def when absent.
func boolQuery(r *http.Request, key string, def bool) (bool, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false", key)
	}
	return b, nil
}

// productParam reads and validates the {product} path segment. Encoded
// slashes arrive escaped and are decoded here.
func productParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "product")
	product, err := url.PathUnescape(raw)
	if err != nil {
		product = raw
	}
	if !validation.ValidProductName(product) {
		return "", fmt.Errorf("product %q is not a valid product name", product)
	}
	return product, nil
}
