// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

/*
Package middleware provides HTTP middleware components for the API.

Key Components:

  - RequestID: UUID request IDs, propagated into the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - AccessLog: per-request debug line, warning for slow requests

All three take and return http.HandlerFunc; the api package adapts them to
chi's func(http.Handler) http.Handler. Run them inside the chi router so the
route pattern is known by the time a request completes.
*/
package middleware
