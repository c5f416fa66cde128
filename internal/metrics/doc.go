// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

// Package metrics defines the Prometheus collectors of Listenwell.
//
// All collectors are registered on the default registry through promauto and
// exposed by the server at /metrics. Every name carries the listenwell_ prefix:
//
//   - listenwell_api_*: request count, latency and in-flight gauge, recorded by
//     middleware.PrometheusMetrics
//   - listenwell_analytics_*: per-view compute time and events read, recorded by
//     the analytics engine
//   - listenwell_source_*: play event source query latency, errors and the
//     circuit breaker state
//   - listenwell_cache_*: response cache hits and misses
//
// Callers use the Record* helpers rather than touching collectors directly.
//
// Example PromQL:
//
//	histogram_quantile(0.95, sum by (le, view) (rate(listenwell_analytics_compute_duration_seconds_bucket[5m])))
//	max(listenwell_source_breaker_state) > 0
package metrics
