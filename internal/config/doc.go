// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

/*
Package config provides centralized configuration management for Listenwell.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The result is validated once by
Load and is read-only afterwards.

# Configuration Sources

  - Defaults: defaultConfig in koanf.go
  - Config file: CONFIG_PATH, else config.yaml, config.yml,
    /etc/listenwell/config.yaml, /etc/listenwell/config.yml
  - Environment variables: see envMappings in koanf.go

# Environment Variables

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8787)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT

Play Event Store (DatabaseConfig):
  - DB_DRIVER: duckdb or sqlite (default: duckdb)
  - DB_PATH / DUCKDB_PATH: Database file (default: /data/listenwell.duckdb)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
  - DUCKDB_THREADS: DuckDB threads (default: CPU count)
  - DB_QUERY_TIMEOUT: Per-query timeout (default: 10s)

Analytics (AnalyticsConfig):
  - ANALYTICS_TIMEZONE / TZ_DEFAULT: IANA zone for day boundaries (default: UTC)
  - DEFAULT_RANGE: Range when a request names none (default: 30days)
  - CALENDAR_DEFAULT_RANGE: Heatmap range when a request names none (default: year)

Circuit Breaker (SourceConfig):
  - SOURCE_BREAKER_ENABLED (default: true)
  - SOURCE_BREAKER_FAILURE_THRESHOLD: Consecutive failures before opening (default: 5)
  - SOURCE_BREAKER_TIMEOUT: Open-state duration (default: 30s)
  - SOURCE_BREAKER_INTERVAL, SOURCE_BREAKER_MAX_REQUESTS
  - SOURCE_HEALTH_CHECK_INTERVAL: Background store ping period, 0 disables (default: 30s)

API (APIConfig, SecurityConfig):
  - API_DEFAULT_PAGE_SIZE, API_MAX_PAGE_SIZE (default: 20, 100)
  - API_CACHE_TTL: Response cache TTL, 0 disables (default: 0)
  - USER_HEADER: Header carrying the authenticated user ID (default: X-User-ID)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: Comma-separated origins (default: *)

Logging (LoggingConfig):
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load config")
	}
	loc, _ := cfg.Analytics.Location()

# Thread Safety

The Config struct is immutable after Load() returns.
*/
package config
