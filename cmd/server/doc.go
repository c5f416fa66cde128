// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

/*
Command server runs the Listenwell HTTP API.

Startup order:

 1. Configuration: koanf (defaults, optional YAML file, environment)
 2. Logging: zerolog, json or console
 3. Store: DuckDB (default) or SQLite holding play_events
 4. Source: circuit breaker around the store
 5. Engine: analytics over the source in ANALYTICS_TIMEZONE
 6. Router: chi with request IDs, CORS, rate limiting and Prometheus metrics
 7. Supervisor tree: source monitor and HTTP server under suture

SIGINT or SIGTERM cancels the tree; the HTTP server drains for
HTTP_SHUTDOWN_TIMEOUT before the store is closed.

Common environment variables:

	HTTP_PORT=8787
	DB_DRIVER=duckdb              # or sqlite
	DB_PATH=/data/listenwell.duckdb
	ANALYTICS_TIMEZONE=UTC
	USER_HEADER=X-User-ID
	LOG_LEVEL=info
	LOG_FORMAT=json

See the config package for the full list.
*/
package main
