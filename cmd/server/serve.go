// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/middleware"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

// Performance monitor sample window.
const perfWindow = 1000

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the engine and run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			interval, _ := cmd.Flags().GetDuration("stats-interval")
			return serve(cmd.Context(), cfg, interval)
		},
	}
	cmd.Flags().Int("port", 0, "HTTP listen port")
	cmd.Flags().Duration("stats-interval", services.DefaultStatsInterval, "Interval between engine stats log lines")
	return cmd
}

func serve(parent context.Context, cfg *config.Config, statsInterval time.Duration) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("version", version).Str("source", cfg.Source.Kind).Msg("Starting Reelmatch")

	engine, err := buildEngine(ctx, cfg)
	if err != nil {
		// Startup without a built engine is not allowed.
		logging.Error().Err(err).Msg("Failed to build recommendation engine")
		return err
	}

	if len(cfg.Security.CORSOrigins) == 1 && cfg.Security.CORSOrigins[0] == "*" {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*)")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is disabled (DISABLE_RATE_LIMIT=true)")
	}

	monitor := middleware.NewPerformanceMonitor(perfWindow, middleware.DefaultSlowRequestThreshold)
	handler := api.NewHandler(engine, monitor)

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwConfig.RateLimitRequests = cfg.Security.RateLimitReqs
	mwConfig.RateLimitWindow = cfg.Security.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, mwConfig).Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
		BaseContext:       requestBaseContext(logging.WithComponent("http")),
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	logger := logging.Logger()
	tree.AddEngineService(services.NewStatsReporterService(engine, statsInterval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logger))

	logging.Info().Msg("Starting supervisor tree")
	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Reelmatch stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// requestBaseContext gives every request context the server's logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func requestBaseContext(logger zerolog.Logger) func(net.Listener) context.Context {
	return func(net.Listener) context.Context {
		return logging.ContextWithLogger(context.Background(), logger)
	}
}
