// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

/*
Package supervisor runs Listenwell's long-lived services under a suture v4
supervisor tree.

	root ("listenwell")
	├── source-layer
	│   └── SourceMonitorService (if SOURCE_HEALTH_CHECK_INTERVAL > 0)
	└── api-layer
	    └── HTTPServerService

A crashing service is restarted with backoff by its own layer; the other
layer keeps running. Supervisor events are logged through sutureslog and the
zerolog-backed slog adapter from the logging package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddSourceService(services.NewSourceMonitorService(src, cfg.Source.HealthCheckInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	errCh := tree.ServeBackground(ctx)
*/
package supervisor
