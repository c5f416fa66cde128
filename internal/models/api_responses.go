// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses, with metadata
// for observability and caching information.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"totalPlays": 3, "totalDuration": 210, ...},
//	  "metadata": {
//	    "timestamp": "2026-01-03T12:00:00Z",
//	    "query_time_ms": 4
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "INVALID_RANGE",
//	    "message": "unrecognized range \"14days\"",
//	    "details": {"range": "14days"}
//	  },
//	  "metadata": {"timestamp": "2026-01-03T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and performance tracking.
//
// Query time tracking:
//   - Cached responses: QueryTimeMS is 0, Cached is true
//   - Fresh computations: QueryTimeMS covers the source fetch and the aggregation
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid query parameters
//   - INVALID_RANGE: Unrecognized symbolic range tag
//   - SOURCE_UNAVAILABLE: The play event store could not be reached
//   - INTERNAL_ERROR: Anything else
//   - RATE_LIMIT_EXCEEDED: Too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
