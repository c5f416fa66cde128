// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package models

// CalendarDay is one cell of the listening heatmap.
// Level is the discrete intensity 0-4 derived from Count and the window's MaxCount.
type CalendarDay struct {
	Date            Day   `json:"date"`
	Count           int   `json:"count"`
	DurationSeconds int64 `json:"durationSeconds"`
	CompletedCount  int   `json:"completedCount"`
	Level           int   `json:"level"`
}

// CalendarData is the response for the calendar heatmap.
//
// Days covers every calendar day of the window in ascending order, with
// zero-count entries for days without listening. MaxCount is at least 1.
type CalendarData struct {
	Days       []CalendarDay `json:"days"`
	MaxCount   int           `json:"maxCount"`
	TotalCount int           `json:"totalCount"`
	ActiveDays int           `json:"activeDays"`
	Streak     StreakInfo    `json:"streak"`
	Window     Window        `json:"window"`
}

// HourlyCount is one bucket of the hour-of-day histogram.
type HourlyCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// WeekdayCount is one bucket of the day-of-week histogram.
type WeekdayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// ListeningPatterns holds the time-of-day and day-of-week usage histograms.
//
// HourlyDistribution always has 24 entries (hour 0..23) and WeekdayDistribution
// always has 7 entries, Monday first. PeakHour and PeakDay are nil when there
// are no events.
type ListeningPatterns struct {
	HourlyDistribution  []HourlyCount  `json:"hourlyDistribution"`
	WeekdayDistribution []WeekdayCount `json:"weekdayDistribution"`
	PeakHour            *int           `json:"peakHour"`
	PeakDay             *string        `json:"peakDay"`
	TotalEvents         int            `json:"totalEvents"`
	Window              Window         `json:"window"`
}

// Dashboard bundles the stats card, calendar heatmap and insights panel of one
// dashboard load so they are computed from the same event set.
type Dashboard struct {
	Stats    *ListeningStats    `json:"stats"`
	Calendar *CalendarData      `json:"calendar"`
	Patterns *ListeningPatterns `json:"patterns"`
}
