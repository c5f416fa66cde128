// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/listenwell/internal/analytics"
)

// ListeningStats handles GET /api/v1/listening/stats.
//
// Query: range (7days|30days|90days|all, default analytics.default_range), tz.
func (h *Handler) ListeningStats(w http.ResponseWriter, r *http.Request) {
	req, apiErr := h.parseViewRequest(r)
	if apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return
	}

	userID := h.userID(r)
	engine := h.engineFor(req.Timezone)
	h.serveView(w, r, "stats", viewKey{User: userID, Request: req}, func(ctx context.Context) (interface{}, error) {
		return engine.ListeningStats(ctx, userID, req.Range)
	})
}

// PlayHistory handles GET /api/v1/listening/history.
//
// Query: range, q (case-insensitive title search), limit, offset, tz.
func (h *Handler) PlayHistory(w http.ResponseWriter, r *http.Request) {
	req, apiErr := h.parseHistoryRequest(r)
	if apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return
	}

	userID := h.userID(r)
	engine := h.engineFor(req.Timezone)
	h.serveView(w, r, "history", viewKey{User: userID, Request: req}, func(ctx context.Context) (interface{}, error) {
		return engine.PlayHistory(ctx, userID, analytics.HistoryQuery{
			Range:  req.Range,
			Search: req.Query,
			Limit:  req.Limit,
			Offset: req.Offset,
		})
	})
}

// CalendarData handles GET /api/v1/listening/calendar.
//
// Query: range (adds 6months and year, default analytics.calendar_default_range), tz.
func (h *Handler) CalendarData(w http.ResponseWriter, r *http.Request) {
	req, apiErr := h.parseCalendarRequest(r)
	if apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return
	}

	userID := h.userID(r)
	engine := h.engineFor(req.Timezone)
	h.serveView(w, r, "calendar", viewKey{User: userID, Request: req}, func(ctx context.Context) (interface{}, error) {
		return engine.CalendarData(ctx, userID, req.Range)
	})
}

// ListeningPatterns handles GET /api/v1/listening/patterns.
func (h *Handler) ListeningPatterns(w http.ResponseWriter, r *http.Request) {
	req, apiErr := h.parseViewRequest(r)
	if apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return
	}

	userID := h.userID(r)
	engine := h.engineFor(req.Timezone)
	h.serveView(w, r, "patterns", viewKey{User: userID, Request: req}, func(ctx context.Context) (interface{}, error) {
		return engine.ListeningPatterns(ctx, userID, req.Range)
	})
}

// Dashboard handles GET /api/v1/listening/dashboard: stats, calendar and
// patterns from one event fetch.
//
// Query: range, calendar_range, tz.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	req, apiErr := h.parseDashboardRequest(r)
	if apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return
	}

	userID := h.userID(r)
	engine := h.engineFor(req.Timezone)
	h.serveView(w, r, "dashboard", viewKey{User: userID, Request: req}, func(ctx context.Context) (interface{}, error) {
		return engine.Dashboard(ctx, userID, req.Range, req.CalendarRange)
	})
}
