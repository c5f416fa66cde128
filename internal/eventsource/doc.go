// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

// Package eventsource puts a circuit breaker (sony/gobreaker) in front of the
// play event store. After BreakerFailureThreshold consecutive failures the
// circuit opens and calls fail fast with *analytics.SourceUnavailableError
// until BreakerTimeout has passed.
package eventsource
