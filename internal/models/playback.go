// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package models

import (
	"time"
)

// PlayEvent is one listening session of a user on a story.
//
// Events are append-only: the narration service creates one when a session
// starts and advances ProgressPercentage (never backwards) while the session
// continues. A user may have many sessions per story. The analytics engine
// only ever reads events.
//
// Key Fields:
//   - PlayedAt: the instant the session occurred; every bucket derives from it
//   - Completed: set once ProgressPercentage reaches 100
//   - DurationSeconds: contribution of this session to total listening time
//
// StoryTitle and CoverImage are denormalized copies taken when the session
// was recorded.
type PlayEvent struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	StoryID            string    `json:"storyId"`
	StoryTitle         string    `json:"storyTitle"`
	CoverImage         string    `json:"coverImage,omitempty"`
	PlayedAt           time.Time `json:"playedAt"`
	Completed          bool      `json:"completed"`
	ProgressPercentage int       `json:"progressPercentage"`
	DurationSeconds    int64     `json:"durationSeconds"`
}

// ActiveDay is a calendar day on which a user had at least one play event.
// Count is the number of events that day.
type ActiveDay struct {
	Date  Day `json:"date"`
	Count int `json:"count"`
}

// PlayHistoryEntry is one row of the play history list.
type PlayHistoryEntry struct {
	ID                 string    `json:"id"`
	StoryID            string    `json:"storyId"`
	StoryTitle         string    `json:"storyTitle"`
	CoverImage         string    `json:"coverImage,omitempty"`
	PlayedAt           time.Time `json:"playedAt"`
	Completed          bool      `json:"completed"`
	ProgressPercentage int       `json:"progressPercentage"`
	DurationSeconds    int64     `json:"durationSeconds"`
}

// HistoryEntryFromEvent projects a PlayEvent onto the history list shape.
func HistoryEntryFromEvent(e *PlayEvent) PlayHistoryEntry {
	return PlayHistoryEntry{
		ID:                 e.ID,
		StoryID:            e.StoryID,
		StoryTitle:         e.StoryTitle,
		CoverImage:         e.CoverImage,
		PlayedAt:           e.PlayedAt,
		Completed:          e.Completed,
		ProgressPercentage: e.ProgressPercentage,
		DurationSeconds:    e.DurationSeconds,
	}
}

// PlayHistory is the response of the play history request.
// Count is the number of entries matching the query before pagination.
type PlayHistory struct {
	History []PlayHistoryEntry `json:"history"`
	Count   int                `json:"count"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
	Window  Window             `json:"window"`
}
