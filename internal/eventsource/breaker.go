// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package eventsource

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/listenwell/internal/analytics"
	"github.com/tomtom215/listenwell/internal/config"
	"github.com/tomtom215/listenwell/internal/logging"
	"github.com/tomtom215/listenwell/internal/metrics"
	"github.com/tomtom215/listenwell/internal/models"
)

// BreakerName labels the breaker in logs and metrics.
const BreakerName = "play-event-source"

// Store is a play event source that can also report its own health.
type Store interface {
	analytics.Source
	Ping(ctx context.Context) error
}

// Ensure Source implements analytics.Source
var _ analytics.Source = (*Source)(nil)

// Source decorates a Store with a circuit breaker. Every store failure and
// every rejected call surfaces as *analytics.SourceUnavailableError; context
// cancellation passes through unchanged and never trips the breaker.
//
// The breaker runs on wall-clock time (sony/gobreaker) for its interval and
// timeout. Analytics results never depend on it.
type Source struct {
	store Store
	cb    *gobreaker.CircuitBreaker[any]
	name  string
}

// New wraps store. With cfg.BreakerEnabled false the decorator only
// classifies errors.
func New(store Store, cfg config.SourceConfig) *Source {
	s := &Source{store: store, name: BreakerName}
	if !cfg.BreakerEnabled {
		return s
	}

	threshold := cfg.BreakerFailureThreshold
	if threshold == 0 {
		threshold = 1
	}

	metrics.SourceBreakerState.WithLabelValues(s.name).Set(0) // 0 = closed

	s.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        s.name,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= threshold
			if shouldTrip {
				logging.Warn().
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening play event source circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] Play event source state transition")
			metrics.RecordBreakerTransition(name, fromStr, toStr, stateToFloat(to))
		},

		// The caller gave up; that says nothing about the store's health.
		IsSuccessful: func(err error) bool {
			return err == nil || isContextError(err)
		},
	})
	return s
}

// State returns the breaker state: "closed", "half-open", "open", or
// "disabled" when no breaker is configured.
func (s *Source) State() string {
	if s.cb == nil {
		return "disabled"
	}
	return stateToString(s.cb.State())
}

// ListEvents implements analytics.Source.
func (s *Source) ListEvents(ctx context.Context, userID string, start, end time.Time) ([]models.PlayEvent, error) {
	result, err := s.execute(ctx, "list_events", func() (any, error) {
		return s.store.ListEvents(ctx, userID, start, end)
	})
	if err != nil {
		return nil, err
	}
	events, _ := result.([]models.PlayEvent)
	return events, nil
}

// ListActiveDays implements analytics.Source.
func (s *Source) ListActiveDays(ctx context.Context, userID string, loc *time.Location) ([]models.ActiveDay, error) {
	result, err := s.execute(ctx, "list_active_days", func() (any, error) {
		return s.store.ListActiveDays(ctx, userID, loc)
	})
	if err != nil {
		return nil, err
	}
	days, _ := result.([]models.ActiveDay)
	return days, nil
}

// Ping checks the store through the breaker, so an open circuit reports
// unhealthy without touching the store.
func (s *Source) Ping(ctx context.Context) error {
	_, err := s.execute(ctx, "ping", func() (any, error) {
		return nil, s.store.Ping(ctx)
	})
	return err
}

// execute wraps a store call with circuit breaker protection
func (s *Source) execute(ctx context.Context, op string, fn func() (any, error)) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		result any
		err    error
	)
	if s.cb == nil {
		result, err = fn()
	} else {
		result, err = s.cb.Execute(fn)
	}

	switch {
	case err == nil:
		if s.cb != nil {
			metrics.RecordBreakerResult(s.name, "success")
		}
		return result, nil
	case isContextError(err):
		return nil, err
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordBreakerResult(s.name, "rejected")
		logging.Warn().Err(err).Str("operation", op).Msg("[CIRCUIT BREAKER] Play event source request rejected")
	default:
		if s.cb != nil {
			metrics.RecordBreakerResult(s.name, "failure")
		}
	}

	var sue *analytics.SourceUnavailableError
	if errors.As(err, &sue) {
		return nil, err
	}
	return nil, &analytics.SourceUnavailableError{Op: op, Err: err}
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// stateToFloat converts circuit breaker state to float for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
