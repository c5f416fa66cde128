// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/listening/stats", "200"))

	RecordAPIRequest("GET", "/api/v1/listening/stats", "200", 15*time.Millisecond)
	RecordAPIRequest("GET", "/api/v1/listening/stats", "200", 30*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/listening/stats", "200"))
	if after-before != 2 {
		t.Errorf("api_requests_total delta = %v, want 2", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 2 {
		t.Errorf("active requests delta = %v, want 2", got)
	}
	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordSourceQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		err       error
		wantErrs  float64
	}{
		{"success", "list_events", nil, 0},
		{"failure", "list_active_days", errors.New("database is locked"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(SourceErrors.WithLabelValues(tt.operation))
			RecordSourceQuery(tt.operation, 3*time.Millisecond, tt.err)
			got := testutil.ToFloat64(SourceErrors.WithLabelValues(tt.operation)) - before
			if got != tt.wantErrs {
				t.Errorf("source_errors_total delta = %v, want %v", got, tt.wantErrs)
			}
		})
	}
}

func TestRecordAnalyticsView(t *testing.T) {
	RecordAnalyticsView("calendar", 2*time.Millisecond, 42)

	if n := testutil.CollectAndCount(AnalyticsComputeDuration); n < 1 {
		t.Errorf("analytics_compute_duration_seconds series = %d, want >= 1", n)
	}
	if n := testutil.CollectAndCount(AnalyticsEventsProcessed); n < 1 {
		t.Errorf("analytics_events_processed series = %d, want >= 1", n)
	}
}

func TestRecordBreakerTransition(t *testing.T) {
	RecordBreakerTransition("test-source", "closed", "open", 2)

	if got := testutil.ToFloat64(SourceBreakerState.WithLabelValues("test-source")); got != 2 {
		t.Errorf("source_breaker_state = %v, want 2", got)
	}
	if got := testutil.ToFloat64(SourceBreakerTransitions.WithLabelValues("test-source", "closed", "open")); got != 1 {
		t.Errorf("transitions = %v, want 1", got)
	}

	RecordBreakerTransition("test-source", "open", "half-open", 1)
	if got := testutil.ToFloat64(SourceBreakerState.WithLabelValues("test-source")); got != 1 {
		t.Errorf("source_breaker_state = %v, want 1", got)
	}
}

func TestRecordBreakerResult(t *testing.T) {
	before := testutil.ToFloat64(SourceBreakerRequests.WithLabelValues("results", "rejected"))
	RecordBreakerResult("results", "rejected")
	if got := testutil.ToFloat64(SourceBreakerRequests.WithLabelValues("results", "rejected")) - before; got != 1 {
		t.Errorf("rejected delta = %v, want 1", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("stats"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("stats"))

	RecordCacheLookup("stats", true)
	RecordCacheLookup("stats", false)
	RecordCacheLookup("stats", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("stats")) - hits; got != 1 {
		t.Errorf("cache hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("stats")) - misses; got != 2 {
		t.Errorf("cache misses delta = %v, want 2", got)
	}
}

func TestRecordSourcePing(t *testing.T) {
	RecordSourcePing(false)
	if got := testutil.ToFloat64(SourceUp); got != 0 {
		t.Errorf("SourceUp = %v after a failed ping, want 0", got)
	}
	RecordSourcePing(true)
	if got := testutil.ToFloat64(SourceUp); got != 1 {
		t.Errorf("SourceUp = %v after a good ping, want 1", got)
	}
}
