// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // IANA zones for containers without /usr/share/zoneinfo

	"github.com/tomtom215/listenwell/internal/analytics"
	"github.com/tomtom215/listenwell/internal/api"
	"github.com/tomtom215/listenwell/internal/config"
	"github.com/tomtom215/listenwell/internal/database"
	"github.com/tomtom215/listenwell/internal/eventsource"
	"github.com/tomtom215/listenwell/internal/logging"
	"github.com/tomtom215/listenwell/internal/supervisor"
	"github.com/tomtom215/listenwell/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", api.Version).
		Str("db_driver", cfg.Database.Driver).
		Str("db_path", cfg.Database.Path).
		Str("timezone", cfg.Analytics.Timezone).
		Msg("Starting Listenwell")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS_ORIGINS allows any origin; restrict it in production")
	}

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Listenwell stopped with an error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run owns every resource so deferred cleanup happens before main exits.
func run(cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Str("driver", db.Driver()).Msg("Database initialized")

	loc, err := cfg.Analytics.Location()
	if err != nil {
		return err
	}

	src := eventsource.New(db, cfg.Source)
	engine := analytics.NewEngine(src, analytics.WithLocation(loc))

	handler := api.NewHandler(engine, src, cfg)
	defer handler.Close()

	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	if interval := cfg.Source.HealthCheckInterval; interval > 0 {
		tree.AddSourceService(services.NewSourceMonitorService(src, interval))
		logging.Info().Dur("interval", interval).Msg("Source monitor added to supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// Serve returns once ctx is canceled and every service has stopped.
	treeErr := <-errCh
	if errors.Is(treeErr, context.Canceled) {
		treeErr = nil
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	return treeErr
}
