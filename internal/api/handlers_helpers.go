// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package api

import (
	"context"
	"errors"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/listenwell/internal/analytics"
	"github.com/tomtom215/listenwell/internal/cache"
	"github.com/tomtom215/listenwell/internal/logging"
	"github.com/tomtom215/listenwell/internal/models"
	"github.com/tomtom215/listenwell/internal/validation"
)

// Error codes for API responses
const (
	ErrCodeValidation        = validation.CodeValidation
	ErrCodeInvalidRange      = validation.CodeInvalidRange
	ErrCodeSourceUnavailable = "SOURCE_UNAVAILABLE"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeRateLimited       = "RATE_LIMIT_EXCEEDED"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
)

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	// Responses are per user.
	w.Header().Set("Cache-Control", "private, no-cache")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a weak validator from the FNV-1a hash of data.
func generateETag(data []byte) string {
	h := fnv.New32a()
	_, _ = h.Write(data)
	return `"` + strconv.FormatUint(uint64(h.Sum32()), 16) + `"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	respondErrorDetails(w, status, code, message, nil, err)
}

func respondErrorDetails(w http.ResponseWriter, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		logging.Error().
			Str("code", logging.SanitizeValue(code)).
			Str("error", logging.SanitizeValue(err.Error())).
			Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondEngineError maps an engine error onto the HTTP error taxonomy.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var rangeErr *analytics.InvalidRangeError
	switch {
	case errors.As(err, &rangeErr):
		respondErrorDetails(w, http.StatusBadRequest, ErrCodeInvalidRange, rangeErr.Error(),
			map[string]interface{}{"range": rangeErr.Tag}, nil)

	case errors.Is(err, analytics.ErrSourceUnavailable):
		logging.Ctx(r.Context()).Warn().
			Str("error", logging.SanitizeValue(err.Error())).
			Msg("Play event source unavailable")
		respondError(w, http.StatusServiceUnavailable, ErrCodeSourceUnavailable,
			"Listening data is temporarily unavailable", nil)

	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads this response.
		logging.Ctx(r.Context()).Debug().Msg("Request canceled")
		respondError(w, http.StatusServiceUnavailable, ErrCodeSourceUnavailable, "Request canceled", nil)

	default:
		logging.Ctx(r.Context()).Error().
			Str("error", logging.SanitizeValue(err.Error())).
			Msg("Analytics request failed")
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", nil)
	}
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError if validation fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// userID returns the caller's user ID from the configured header, or "" when absent.
func (h *Handler) userID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(h.config.Security.UserHeader))
}

// serveView runs compute, through the response cache when enabled, and
// writes the envelope. key identifies the result within view.
func (h *Handler) serveView(w http.ResponseWriter, r *http.Request, view string, key interface{}, compute func(ctx context.Context) (interface{}, error)) {
	start := time.Now()

	var (
		data   interface{}
		cached bool
		err    error
	)
	if h.cache != nil {
		data, cached, err = h.cache.Do(view, cache.GenerateKey(view, key), func() (interface{}, error) {
			return compute(r.Context())
		})
	} else {
		data, err = compute(r.Context())
	}
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	meta := models.Metadata{Timestamp: time.Now(), Cached: cached}
	if !cached {
		meta.QueryTimeMS = time.Since(start).Milliseconds()
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: meta,
	})
}
