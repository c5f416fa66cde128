// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomtom215/listenwell/internal/logging"
	"github.com/tomtom215/listenwell/internal/metrics"
)

// Pinger is the part of the play event source the monitor needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SourceMonitorService pings the play event source every interval, logs
// up/down transitions and publishes the result as listenwell_source_up.
//
// Pings go through the same circuit breaker as analytics queries, so a
// recovered store closes the breaker even when no user traffic arrives.
type SourceMonitorService struct {
	source   Pinger
	interval time.Duration
	timeout  time.Duration

	// up is -1 before the first ping, then 0 or 1.
	up atomic.Int32
}

// NewSourceMonitorService creates a monitor. Each ping is bounded by the
// smaller of interval and 5s.
func NewSourceMonitorService(source Pinger, interval time.Duration) *SourceMonitorService {
	m := &SourceMonitorService{
		source:   source,
		interval: interval,
		timeout:  min(interval, 5*time.Second),
	}
	m.up.Store(-1)
	return m
}

// Serve implements suture.Service. It pings once immediately, then on every tick.
func (m *SourceMonitorService) Serve(ctx context.Context) error {
	m.check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

// Up reports the result of the most recent ping.
func (m *SourceMonitorService) Up() bool {
	return m.up.Load() == 1
}

func (m *SourceMonitorService) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, m.timeout)
	err := m.source.Ping(pingCtx)
	cancel()

	// Shutdown mid-ping says nothing about the source.
	if ctx.Err() != nil {
		return
	}

	up := err == nil
	metrics.RecordSourcePing(up)

	var next int32
	if up {
		next = 1
	}
	prev := m.up.Swap(next)
	switch {
	case prev == next:
	case up:
		logging.Info().Msg("Play event source is reachable")
	default:
		logging.Warn().Err(err).Msg("Play event source is unreachable")
	}
}

// String implements fmt.Stringer for supervisor logs.
func (m *SourceMonitorService) String() string {
	return "source-monitor"
}
