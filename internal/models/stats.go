// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package models

import (
	"time"
)

// Window is a resolved time window.
//
// Start and End are inclusive instants. StartDay and EndDay are the calendar
// days they fall on in the request's location; for the "all" range StartDay
// is the day of the user's earliest event (zero when the user has none).
type Window struct {
	Range    string    `json:"range"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	StartDay Day       `json:"startDay"`
	EndDay   Day       `json:"endDay"`
	Timezone string    `json:"timezone"`
}

// DayBucket aggregates the play events of a single calendar day.
type DayBucket struct {
	Date            Day   `json:"date"`
	Count           int   `json:"count"`
	DurationSeconds int64 `json:"durationSeconds"`
	CompletedCount  int   `json:"completedCount"`
}

// StreakInfo holds consecutive-day listening streaks.
// Longest is always >= Current.
type StreakInfo struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// MostPlayedStory is the story with the most plays in a window.
type MostPlayedStory struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	CoverImage string    `json:"coverImage,omitempty"`
	PlayCount  int       `json:"playCount"`
	LastPlayed time.Time `json:"lastPlayed"`
}

// ListeningStats is the aggregate stats card for a user and range.
// MostPlayedStory is nil when the window has no events.
type ListeningStats struct {
	TotalPlays      int              `json:"totalPlays"`
	TotalDuration   int64            `json:"totalDuration"`
	AveragePerDay   float64          `json:"averagePerDay"`
	MostPlayedStory *MostPlayedStory `json:"mostPlayedStory"`
	CurrentStreak   int              `json:"currentStreak"`
	LongestStreak   int              `json:"longestStreak"`
	CompletedPlays  int              `json:"completedPlays"`
	ActiveDays      int              `json:"activeDays"`
	Window          Window           `json:"window"`
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status           string  `json:"status"`
	Version          string  `json:"version"`
	SourceDriver     string  `json:"source_driver"`
	SourceConnected  bool    `json:"source_connected"`
	SourceBreaker    string  `json:"source_breaker,omitempty"`
	DefaultTimezone  string  `json:"default_timezone"`
	Uptime           float64 `json:"uptime_seconds"`
	ResponseCacheTTL string  `json:"response_cache_ttl,omitempty"`
}
