// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/stylehive/internal/logging"
	"github.com/tomtom215/stylehive/internal/metrics"
)

// BreakerConfig configures a BreakerSource.
type BreakerConfig struct {
	// ConsecutiveFailures opens the circuit.
	// Default: 3
	ConsecutiveFailures uint32

	// OpenTimeout is how long the circuit stays open before a trial read.
	// Default: 5m
	OpenTimeout time.Duration
}

// BreakerSource wraps a Source with a circuit breaker. Once the underlying
// source fails ConsecutiveFailures times in a row, reads are rejected with
// ErrDataUnavailable until OpenTimeout passes. Canceled reads do not count
// as failures.
type BreakerSource struct {
	source Source
	cb     *gobreaker.CircuitBreaker[[]Row]
	name   string
}

// NewBreakerSource wraps source.
func NewBreakerSource(source Source, cfg BreakerConfig) *BreakerSource {
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 5 * time.Minute
	}

	name := "source:" + source.Name()
	logger := logging.WithComponent("transactions")
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]Row](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("transaction source circuit breaker state change")
			metrics.RecordBreakerTransition(name, from.String(), to.String())
		},
	})

	return &BreakerSource{source: source, cb: cb, name: name}
}

// Name implements Source.
func (s *BreakerSource) Name() string { return s.source.Name() }

// State reports the breaker state: "closed", "half-open" or "open".
func (s *BreakerSource) State() string { return s.cb.State().String() }

// Rows implements Source.
func (s *BreakerSource) Rows(ctx context.Context) ([]Row, error) {
	rows, err := s.cb.Execute(func() ([]Row, error) {
		return s.source.Rows(ctx)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordBreakerResult(s.name, "rejected")
		return nil, fmt.Errorf("%w: %s: %w", ErrDataUnavailable, s.source.Name(), err)
	case err != nil:
		metrics.RecordBreakerResult(s.name, "failure")
		return nil, err
	}
	metrics.RecordBreakerResult(s.name, "success")
	return rows, nil
}
