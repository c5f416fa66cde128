// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package api

import (
	"context"
	"time"

	"github.com/tomtom215/listenwell/internal/analytics"
	"github.com/tomtom215/listenwell/internal/cache"
	"github.com/tomtom215/listenwell/internal/config"
	"github.com/tomtom215/listenwell/internal/logging"
)

// Version is reported by the health endpoint. Set at build time with
// -ldflags "-X github.com/tomtom215/listenwell/internal/api.Version=...".
var Version = "dev"

// SourceStatus is the health view of the play event source.
// *eventsource.Source implements it.
type SourceStatus interface {
	Ping(ctx context.Context) error
	State() string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response envelope, error mapping, user resolution
//   - handlers_health.go: health and probe endpoints
//   - handlers_listening.go: the listening analytics views
type Handler struct {
	engine    *analytics.Engine
	source    SourceStatus
	config    *config.Config
	cache     *cache.Cache // nil unless api.cache_ttl > 0
	startTime time.Time
}

// NewHandler creates a handler serving engine's views. source may be nil,
// in which case health reports the source as disconnected.
//
// Example:
//
//	src := eventsource.New(store, cfg.Source)
//	engine := analytics.NewEngine(src, analytics.WithLocation(loc))
//	handler := api.NewHandler(engine, src, cfg)
//	defer handler.Close()
func NewHandler(engine *analytics.Engine, source SourceStatus, cfg *config.Config) *Handler {
	h := &Handler{
		engine:    engine,
		source:    source,
		config:    cfg,
		startTime: time.Now(),
	}
	if cfg.API.CacheTTL > 0 {
		h.cache = cache.New(cfg.API.CacheTTL)
		logging.Info().Dur("ttl", cfg.API.CacheTTL).Msg("Response cache enabled")
	}
	return h
}

// Close stops the response cache cleanup goroutine.
func (h *Handler) Close() {
	if h.cache != nil {
		h.cache.Close()
	}
}
