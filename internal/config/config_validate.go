// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/listenwell/internal/analytics"
	"github.com/tomtom215/listenwell/internal/logging"
)

// Supported play event store drivers.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateAnalytics,
		c.validateSource,
		c.validateAPI,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("HTTP timeouts must not be negative")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverDuckDB, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be one of: %s, %s", DriverDuckDB, DriverSQLite)
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	if c.Database.QueryTimeout < 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must not be negative")
	}
	return nil
}

// validateAnalytics checks the default timezone and both default ranges.
// The calendar default may use the month-granularity tags.
func (c *Config) validateAnalytics() error {
	if _, err := c.Analytics.Location(); err != nil {
		return fmt.Errorf("ANALYTICS_TIMEZONE is invalid: %w", err)
	}
	if _, err := analytics.ParseRange(c.Analytics.DefaultRange, analytics.ScopeActivity); err != nil {
		return fmt.Errorf("DEFAULT_RANGE is invalid: %w", err)
	}
	if _, err := analytics.ParseRange(c.Analytics.CalendarDefaultRange, analytics.ScopeCalendar); err != nil {
		return fmt.Errorf("CALENDAR_DEFAULT_RANGE is invalid: %w", err)
	}
	return nil
}

// validateSource checks circuit breaker thresholds (only if enabled)
func (c *Config) validateSource() error {
	if c.Source.HealthCheckInterval < 0 {
		return fmt.Errorf("SOURCE_HEALTH_CHECK_INTERVAL must not be negative")
	}
	if !c.Source.BreakerEnabled {
		return nil
	}
	if c.Source.BreakerFailureThreshold < 1 {
		return fmt.Errorf("SOURCE_BREAKER_FAILURE_THRESHOLD must be at least 1")
	}
	if c.Source.BreakerTimeout <= 0 {
		return fmt.Errorf("SOURCE_BREAKER_TIMEOUT must be positive")
	}
	if c.Source.BreakerInterval < 0 {
		return fmt.Errorf("SOURCE_BREAKER_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE (%d) must not be below API_DEFAULT_PAGE_SIZE (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.API.CacheTTL < 0 {
		return fmt.Errorf("API_CACHE_TTL must not be negative")
	}
	return nil
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	if strings.TrimSpace(c.Security.UserHeader) == "" {
		return fmt.Errorf("USER_HEADER must not be empty")
	}
	return c.validateRateLimits()
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS reports a wildcard CORS origin, which lets any site
// read a user's analytics once the gateway has attached the user header.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
