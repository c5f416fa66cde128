// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/listenwell/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which AccessLog warns.
const DefaultSlowRequestThreshold = time.Second

// AccessLog logs every request at debug level through the request's context
// logger, and at warn level when it took longer than slow.
func AccessLog(slow time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	if slow <= 0 {
		slow = DefaultSlowRequestThreshold
	}
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := newStatusWriter(w)

			next(wrapper, r)

			duration := time.Since(start)
			event := logging.Ctx(r.Context()).Debug()
			msg := "Request served"
			if duration > slow {
				event = logging.Ctx(r.Context()).Warn().Dur("threshold", slow)
				msg = "Slow request detected"
			}
			event.
				Str("method", r.Method).
				Str("route", routePattern(r)).
				Str("path", logging.SanitizeValue(r.URL.Path)).
				Int("status", wrapper.statusCode).
				Dur("duration", duration).
				Msg(msg)
		}
	}
}
