// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "listenwell"

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Duration of API requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint", "status"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_active_requests",
			Help:      "Current number of in-flight API requests",
		},
	)

	// Analytics Engine Metrics
	AnalyticsComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analytics_compute_duration_seconds",
			Help:      "Time to compute one analytics view, source reads included",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"view"}, // "stats", "history", "calendar", "patterns", "dashboard"
	)

	AnalyticsEventsProcessed = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analytics_events_processed",
			Help:      "Number of play events read to compute one view",
			Buckets:   []float64{0, 10, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
		[]string{"view"},
	)

	// Play Event Source Metrics
	SourceQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_query_duration_seconds",
			Help:      "Duration of play event source queries in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"}, // "list_events", "list_active_days", "insert", "ping"
	)

	SourceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_errors_total",
			Help:      "Total number of failed play event source queries",
		},
		[]string{"operation"},
	)

	SourceUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_up",
			Help:      "Whether the last background ping of the play event source succeeded (1) or not (0)",
		},
	)

	// Circuit Breaker Metrics
	SourceBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_breaker_state",
			Help:      "Play event source circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	SourceBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_breaker_requests_total",
			Help:      "Requests through the source circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	SourceBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_breaker_state_transitions_total",
			Help:      "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Response Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of response cache hits",
		},
		[]string{"view"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of response cache misses",
		},
		[]string{"view"},
	)
)

// RecordAPIRequest records one finished API request.
func RecordAPIRequest(method, endpoint, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAnalyticsView records the cost of computing one analytics view.
func RecordAnalyticsView(view string, duration time.Duration, events int) {
	AnalyticsComputeDuration.WithLabelValues(view).Observe(duration.Seconds())
	AnalyticsEventsProcessed.WithLabelValues(view).Observe(float64(events))
}

// RecordSourceQuery records a play event source query.
func RecordSourceQuery(operation string, duration time.Duration, err error) {
	SourceQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		SourceErrors.WithLabelValues(operation).Inc()
	}
}

// RecordSourcePing records the outcome of a background source ping.
func RecordSourcePing(up bool) {
	if up {
		SourceUp.Set(1)
		return
	}
	SourceUp.Set(0)
}

// RecordBreakerResult counts a call through the named breaker.
func RecordBreakerResult(name, result string) {
	SourceBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordBreakerTransition updates the state gauge and the transition counter.
// state is 0 for closed, 1 for half-open and 2 for open.
func RecordBreakerTransition(name, from, to string, state float64) {
	SourceBreakerState.WithLabelValues(name).Set(state)
	SourceBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// RecordCacheLookup counts a response cache hit or miss for view.
func RecordCacheLookup(view string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(view).Inc()
	} else {
		CacheMisses.WithLabelValues(view).Inc()
	}
}
