// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Reloader re-reads the transaction source and refits when it changed.
// Satisfied by *api.Handler.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloadServiceConfig configures the reload loop.
type ReloadServiceConfig struct {
	// Interval between reloads. Required.
	Interval time.Duration

	// Timeout bounds one reload including the fit.
	// Default: 10m
	Timeout time.Duration

	// ReloadOnStart runs a reload as soon as the service starts.
	ReloadOnStart bool
}

// ReloadService periodically reloads the dataset so the API picks up new
// transactions. Reload failures are logged and retried on the next tick;
// the previous model keeps serving.
type ReloadService struct {
	reloader Reloader
	config   ReloadServiceConfig
	logger   zerolog.Logger
	name     string
}

// NewReloadService creates a reload loop around reloader.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloadService(reloader Reloader, cfg ReloadServiceConfig, logger zerolog.Logger) *ReloadService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	return &ReloadService{
		reloader: reloader,
		config:   cfg,
		logger:   logger.With().Str("service", "reload").Logger(),
		name:     "reload-service",
	}
}

// Serve implements suture.Service.
func (s *ReloadService) Serve(ctx context.Context) error {
	interval := s.config.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	s.logger.Info().
		Dur("interval", interval).
		Bool("reload_on_start", s.config.ReloadOnStart).
		Msg("reload service starting")

	if s.config.ReloadOnStart {
		s.reload(ctx)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("reload service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.reload(ctx)
		}
	}
}

func (s *ReloadService) reload(ctx context.Context) {
	reloadCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.reloader.Reload(reloadCtx); err != nil {
		s.logger.Warn().Err(err).Msg("dataset reload failed, keeping serving model")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("dataset reload complete")
}

// String names the service in supervisor events.
func (s *ReloadService) String() string {
	return s.name
}
