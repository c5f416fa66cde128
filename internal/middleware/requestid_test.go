// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/listenwell/internal/logging"
)

func TestRequestID_GeneratesNewID(t *testing.T) {
	var capturedID, loggingID, correlationID string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		capturedID = GetRequestID(r.Context())
		loggingID = logging.RequestIDFromContext(r.Context())
		correlationID = logging.CorrelationIDFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	responseID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("response X-Request-ID %q is not a UUID: %v", responseID, err)
	}
	if capturedID != responseID || loggingID != responseID {
		t.Errorf("context IDs %q/%q differ from header %q", capturedID, loggingID, responseID)
	}
	if correlationID == "" {
		t.Error("correlation ID missing from logging context")
	}
}

func TestRequestID_UpstreamIDs(t *testing.T) {
	tests := []struct {
		name     string
		upstream string
		keep     bool
	}{
		{"plain", "req-123", true},
		{"uuid", "0b6a1d8e-9f4b-4c1e-8a55-0e0a3b7d9c21", true},
		{"with spaces", "req 123", false},
		{"control characters", "req\n123", false},
		{"too long", strings.Repeat("x", maxRequestIDLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedID string
			handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
				capturedID = GetRequestID(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(RequestIDHeader, tt.upstream)
			rec := httptest.NewRecorder()
			handler(rec, req)

			if kept := capturedID == tt.upstream; kept != tt.keep {
				t.Errorf("upstream %q kept = %v, want %v (got %q)", tt.upstream, kept, tt.keep, capturedID)
			}
			if rec.Header().Get(RequestIDHeader) != capturedID {
				t.Error("response header differs from context ID")
			}
		})
	}
}

func TestGetRequestID_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := GetRequestID(req.Context()); id != "" {
		t.Errorf("GetRequestID() = %q, want empty", id)
	}
}
