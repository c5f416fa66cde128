// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/listenwell/config.yaml",
	"/etc/listenwell/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with every default applied.
// Config file and environment values are layered on top.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8787,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:       DriverDuckDB,
			Path:         "/data/listenwell.duckdb",
			MaxMemory:    "1GB",
			Threads:      0, // 0 = use runtime.NumCPU()
			QueryTimeout: 10 * time.Second,
		},
		Analytics: AnalyticsConfig{
			Timezone:             "UTC",
			DefaultRange:         "30days",
			CalendarDefaultRange: "year",
		},
		Source: SourceConfig{
			BreakerEnabled:          true,
			BreakerMaxRequests:      3,
			BreakerInterval:         time.Minute,
			BreakerTimeout:          30 * time.Second,
			BreakerFailureThreshold: 5,
			HealthCheckInterval:     30 * time.Second,
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
			CacheTTL:        0, // disabled
		},
		Security: SecurityConfig{
			UserHeader:        "X-User-ID",
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Struct defaults
//  2. The first config file found (see findConfigFile)
//  3. Environment variables (see envTransformFunc)
func LoadWithKoanf() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is LoadWithKoanf with an explicit config file path. An empty path
// skips the file layer.
func LoadFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns CONFIG_PATH when it exists, else the first of
// DefaultConfigPaths that exists, else "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are keys that environment variables supply as comma-separated strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated string values of sliceConfigPaths.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to config keys.
var envMappings = map[string]string{
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	"db_driver":         "database.driver",
	"db_path":           "database.path",
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"db_query_timeout":  "database.query_timeout",

	"analytics_timezone":     "analytics.timezone",
	"tz_default":             "analytics.timezone",
	"default_range":          "analytics.default_range",
	"calendar_default_range": "analytics.calendar_default_range",

	"source_breaker_enabled":           "source.breaker_enabled",
	"source_breaker_max_requests":      "source.breaker_max_requests",
	"source_breaker_interval":          "source.breaker_interval",
	"source_breaker_timeout":           "source.breaker_timeout",
	"source_breaker_failure_threshold": "source.breaker_failure_threshold",
	"source_health_check_interval":     "source.health_check_interval",

	"api_default_page_size": "api.default_page_size",
	"api_max_page_size":     "api.max_page_size",
	"api_cache_ttl":         "api.cache_ttl",

	"user_header":         "security.user_header",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable to its config key. Unmapped
// variables return "" and are skipped so the wider environment cannot leak
// into the configuration.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
