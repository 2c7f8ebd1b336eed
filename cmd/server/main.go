// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/stylehive/internal/api"
	"github.com/tomtom215/stylehive/internal/config"
	"github.com/tomtom215/stylehive/internal/logging"
	"github.com/tomtom215/stylehive/internal/supervisor"
	"github.com/tomtom215/stylehive/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// logging still has its defaults here
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.Log())

	logging.Info().
		Str("version", version).
		Str("data_source", cfg.Data.Source).
		Str("addr", cfg.Address()).
		Msg("Starting StyleHive")
	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*)")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logging.Logger()
	handler, err := initHandler(ctx, cfg, logger)
	if err != nil {
		cancel()
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation service")
	}

	exportAffinityGraph(ctx, cfg, handler, logger)

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), treeCfg)
	if err != nil {
		cancel()
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.NewRouter(handler, routerConfig(cfg)),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	if cfg.Data.ReloadInterval > 0 {
		tree.AddDataService(services.NewReloadService(handler, services.ReloadServiceConfig{
			Interval: cfg.Data.ReloadInterval,
			Timeout:  cfg.Server.FitTimeout + time.Minute,
		}, logger))
		logging.Info().Dur("interval", cfg.Data.ReloadInterval).Msg("Reload service added")
	}

	logging.Info().Msg("Starting supervisor tree...")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("StyleHive stopped")
	if len(unstopped) > 0 {
		os.Exit(1)
	}
}
