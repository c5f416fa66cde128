// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

// Package validation provides struct validation using go-playground/validator v10.
//
// GetValidator returns a thread-safe singleton with one custom tag:
//
//   - listenrange[=calendar]: a symbolic range tag accepted by the activity
//     views, or by the calendar when the parameter is "calendar"
//
// The built-in timezone tag validates IANA zone names.
//
// ValidateStruct returns *RequestValidationError, whose ToAPIError produces
// INVALID_RANGE when a range field failed and VALIDATION_ERROR otherwise:
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
