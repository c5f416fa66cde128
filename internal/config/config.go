// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values for every setting
//  2. Config File: optional YAML file (CONFIG_PATH, config.yaml, /etc/listenwell/config.yaml)
//  3. Environment Variables: override any setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	store, err := database.New(&cfg.Database)
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Source    SourceConfig    `koanf:"source"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects and tunes the play event store.
type DatabaseConfig struct {
	// Driver is "duckdb" (default) or "sqlite".
	Driver string `koanf:"driver"`
	// Path is the database file. An empty path or ":memory:" opens an in-memory store.
	Path         string        `koanf:"path"`
	MaxMemory    string        `koanf:"max_memory"` // DuckDB only
	Threads      int           `koanf:"threads"`    // DuckDB threads (0 = use NumCPU)
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// AnalyticsConfig holds engine defaults.
type AnalyticsConfig struct {
	// Timezone is the IANA zone whose midnight starts a day when a request
	// does not name one.
	Timezone             string `koanf:"timezone"`
	DefaultRange         string `koanf:"default_range"`
	CalendarDefaultRange string `koanf:"calendar_default_range"`
}

// Location resolves Timezone. Validate has already rejected unknown zones.
func (a AnalyticsConfig) Location() (*time.Location, error) {
	if a.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", a.Timezone, err)
	}
	return loc, nil
}

// SourceConfig tunes the circuit breaker in front of the play event store.
type SourceConfig struct {
	BreakerEnabled          bool          `koanf:"breaker_enabled"`
	BreakerMaxRequests      uint32        `koanf:"breaker_max_requests"`
	BreakerInterval         time.Duration `koanf:"breaker_interval"`
	BreakerTimeout          time.Duration `koanf:"breaker_timeout"`
	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold"`

	// HealthCheckInterval is how often the source monitor pings the store.
	// Zero disables the monitor.
	HealthCheckInterval time.Duration `koanf:"health_check_interval"`
}

// APIConfig holds API pagination and response settings
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
	// CacheTTL enables the response cache when positive.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// SecurityConfig holds request-facing protection settings.
//
// Listenwell does not authenticate users itself: the upstream gateway sets
// UserHeader to the authenticated user ID.
type SecurityConfig struct {
	UserHeader        string        `koanf:"user_header"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console. Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, the first config file found and
// the environment, then validates it. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
