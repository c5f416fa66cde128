// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/listenwell/internal/analytics"
	"github.com/tomtom215/listenwell/internal/models"
)

// Request structs carry go-playground/validator tags. Custom tags:
//   - listenrange: an activity range tag (7days, 30days, 90days, all)
//   - listenrange=calendar: a calendar range tag (adds 6months, year)
//
// Handlers fill the defaults before validating, so an empty range never
// reaches the validator from a handler.

// ViewRequest is the query of the stats and patterns views.
type ViewRequest struct {
	Range    string `json:"range" validate:"listenrange"`
	Timezone string `json:"tz,omitempty" validate:"omitempty,timezone"`
}

// CalendarRequest is the query of the calendar view.
type CalendarRequest struct {
	Range    string `json:"range" validate:"listenrange=calendar"`
	Timezone string `json:"tz,omitempty" validate:"omitempty,timezone"`
}

// HistoryRequest is the query of the play history view.
type HistoryRequest struct {
	Range    string `json:"range" validate:"listenrange"`
	Timezone string `json:"tz,omitempty" validate:"omitempty,timezone"`
	Query    string `json:"q,omitempty"`
	Limit    int    `json:"limit" validate:"gte=0"`
	Offset   int    `json:"offset" validate:"gte=0"`
}

// DashboardRequest is the query of the combined dashboard view.
type DashboardRequest struct {
	Range         string `json:"range" validate:"listenrange"`
	CalendarRange string `json:"calendar_range" validate:"listenrange=calendar"`
	Timezone      string `json:"tz,omitempty" validate:"omitempty,timezone"`
}

// viewKey identifies a cached view result.
type viewKey struct {
	User    string      `json:"user"`
	Request interface{} `json:"request"`
}

// queryRange returns the named query parameter, or def when it is absent or blank.
func queryRange(r *http.Request, name, def string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(name)); v != "" {
		return v
	}
	return def
}

// queryInt parses an integer query parameter. Absent means def; anything
// that is not an integer is a validation error.
func queryInt(r *http.Request, name string, def int) (int, *models.APIError) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &models.APIError{
			Code:    ErrCodeValidation,
			Message: fmt.Sprintf("%s must be an integer", name),
			Details: map[string]interface{}{"field": name, "value": raw},
		}
	}
	return v, nil
}

func (h *Handler) parseViewRequest(r *http.Request) (ViewRequest, *models.APIError) {
	req := ViewRequest{
		Range:    queryRange(r, "range", h.config.Analytics.DefaultRange),
		Timezone: strings.TrimSpace(r.URL.Query().Get("tz")),
	}
	return req, validateRequest(&req)
}

func (h *Handler) parseCalendarRequest(r *http.Request) (CalendarRequest, *models.APIError) {
	req := CalendarRequest{
		Range:    queryRange(r, "range", h.config.Analytics.CalendarDefaultRange),
		Timezone: strings.TrimSpace(r.URL.Query().Get("tz")),
	}
	return req, validateRequest(&req)
}

func (h *Handler) parseHistoryRequest(r *http.Request) (HistoryRequest, *models.APIError) {
	req := HistoryRequest{
		Range:    queryRange(r, "range", h.config.Analytics.DefaultRange),
		Timezone: strings.TrimSpace(r.URL.Query().Get("tz")),
		Query:    r.URL.Query().Get("q"),
	}

	var apiErr *models.APIError
	if req.Limit, apiErr = queryInt(r, "limit", 0); apiErr != nil {
		return req, apiErr
	}
	if req.Offset, apiErr = queryInt(r, "offset", 0); apiErr != nil {
		return req, apiErr
	}
	if apiErr = validateRequest(&req); apiErr != nil {
		return req, apiErr
	}

	req.Limit = h.pageSize(req.Limit)
	return req, nil
}

func (h *Handler) parseDashboardRequest(r *http.Request) (DashboardRequest, *models.APIError) {
	req := DashboardRequest{
		Range:         queryRange(r, "range", h.config.Analytics.DefaultRange),
		CalendarRange: queryRange(r, "calendar_range", h.config.Analytics.CalendarDefaultRange),
		Timezone:      strings.TrimSpace(r.URL.Query().Get("tz")),
	}
	return req, validateRequest(&req)
}

// pageSize applies the configured default to 0 and caps at the maximum.
func (h *Handler) pageSize(limit int) int {
	if limit == 0 {
		limit = h.config.API.DefaultPageSize
	}
	if maxSize := h.config.API.MaxPageSize; maxSize > 0 && limit > maxSize {
		limit = maxSize
	}
	return limit
}

// engineFor returns the engine bucketing days in tz, or the default engine
// when tz is empty. tz has already passed the timezone validator.
func (h *Handler) engineFor(tz string) *analytics.Engine {
	if tz == "" {
		return h.engine
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return h.engine
	}
	return h.engine.In(loc)
}
