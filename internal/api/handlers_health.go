// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/listenwell/internal/models"
)

// pingTimeout bounds the source ping of the health endpoints.
const pingTimeout = 2 * time.Second

func (h *Handler) sourceConnected(ctx context.Context) bool {
	if h.source == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return h.source.Ping(ctx) == nil
}

// Health handles GET /api/v1/health.
//
// Always 200; status is "healthy" when the source answers a ping and
// "degraded" otherwise.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	connected := h.sourceConnected(r.Context())

	status := "healthy"
	if !connected {
		status = "degraded"
	}

	health := models.HealthStatus{
		Status:          status,
		Version:         Version,
		SourceDriver:    h.config.Database.Driver,
		SourceConnected: connected,
		DefaultTimezone: h.engine.Location().String(),
		Uptime:          time.Since(h.startTime).Seconds(),
	}
	if h.source != nil {
		health.SourceBreaker = h.source.State()
	}
	if h.cache != nil {
		health.ResponseCacheTTL = h.cache.TTL().String()
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 503 while the play event source is unreachable.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.sourceConnected(r.Context()) {
		respondError(w, http.StatusServiceUnavailable, ErrCodeSourceUnavailable, "Play event source is not reachable", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"ready": true,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
