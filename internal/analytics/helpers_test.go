// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package analytics

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/tomtom215/listenwell/internal/models"
)

// memSource is an in-memory Source over a fixed event log.
type memSource struct {
	events []models.PlayEvent
	err    error
	calls  atomic.Int32
}

func (s *memSource) ListEvents(ctx context.Context, userID string, start, end time.Time) ([]models.PlayEvent, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []models.PlayEvent
	for _, e := range s.events {
		if e.UserID == userID && !e.PlayedAt.Before(start) && !e.PlayedAt.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memSource) ListActiveDays(ctx context.Context, userID string, loc *time.Location) ([]models.ActiveDay, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var mine []models.PlayEvent
	for _, e := range s.events {
		if e.UserID == userID {
			mine = append(mine, e)
		}
	}
	return ActiveDaysFromEvents(mine, loc), nil
}

var eventSeq atomic.Int64

// play builds an event for user u1 at the RFC 3339 instant at.
func play(t *testing.T, storyID, at string) models.PlayEvent {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, at)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", at, err)
	}
	return models.PlayEvent{
		ID:              fmt.Sprintf("evt-%04d", eventSeq.Add(1)),
		UserID:          "u1",
		StoryID:         storyID,
		StoryTitle:      "Title " + storyID,
		PlayedAt:        ts,
		DurationSeconds: 60,
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", s, err)
	}
	return ts
}

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%q): %v", name, err)
	}
	return loc
}

func day(y int, m time.Month, d int) models.Day {
	return models.NewDay(y, m, d)
}

func activeDays(days ...models.Day) []models.ActiveDay {
	out := make([]models.ActiveDay, 0, len(days))
	for _, d := range days {
		out = append(out, models.ActiveDay{Date: d, Count: 1})
	}
	return out
}
