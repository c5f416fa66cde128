// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package analytics

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange matches every *InvalidRangeError via errors.Is.
	ErrInvalidRange = errors.New("invalid range")

	// ErrSourceUnavailable matches every *SourceUnavailableError via errors.Is.
	ErrSourceUnavailable = errors.New("play event source unavailable")
)

// InvalidRangeError reports a symbolic range tag that is unknown, or known but
// not accepted by the requested view. There is no silent default.
type InvalidRangeError struct {
	Tag     string
	Allowed []Range
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("unrecognized range %q (allowed: %v)", e.Tag, e.Allowed)
}

// Is makes errors.Is(err, ErrInvalidRange) succeed.
func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// SourceUnavailableError reports that the play event source could not serve a
// query. It is propagated to the caller untouched; retry policy belongs there.
type SourceUnavailableError struct {
	Op  string
	Err error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("play event source unavailable (%s): %v", e.Op, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSourceUnavailable) succeed.
func (e *SourceUnavailableError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// classifySourceError wraps a source failure in SourceUnavailableError unless it
// already is one. Context cancellation and deadlines belong to the caller and
// pass through unchanged.
func classifySourceError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var sue *SourceUnavailableError
	if errors.As(err, &sue) {
		return err
	}
	return &SourceUnavailableError{Op: op, Err: err}
}
