// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package analytics

import (
	"time"

	"github.com/tomtom215/listenwell/internal/models"
)

// WeekdayOrder is the fixed Monday-first order of the weekday distribution.
var WeekdayOrder = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// weekdayIndex maps a time.Weekday onto WeekdayOrder.
func weekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// AnalyzePatterns builds the hour-of-day and day-of-week histograms of events
// in loc. Both are always fully populated: 24 hourly and 7 weekday entries.
func AnalyzePatterns(events []models.PlayEvent, loc *time.Location) models.ListeningPatterns {
	if loc == nil {
		loc = time.UTC
	}

	var hours [24]int
	var weekdays [7]int
	for i := range events {
		local := events[i].PlayedAt.In(loc)
		hours[local.Hour()]++
		weekdays[weekdayIndex(local.Weekday())]++
	}

	p := models.ListeningPatterns{
		HourlyDistribution:  make([]models.HourlyCount, 24),
		WeekdayDistribution: make([]models.WeekdayCount, 7),
		TotalEvents:         len(events),
	}

	peakHour := -1
	for h, c := range hours {
		p.HourlyDistribution[h] = models.HourlyCount{Hour: h, Count: c}
		// Strict comparison keeps the earliest hour on ties.
		if c > 0 && (peakHour < 0 || c > hours[peakHour]) {
			peakHour = h
		}
	}

	peakDay := -1
	for i, c := range weekdays {
		p.WeekdayDistribution[i] = models.WeekdayCount{Day: WeekdayOrder[i].String(), Count: c}
		if c > 0 && (peakDay < 0 || c > weekdays[peakDay]) {
			peakDay = i
		}
	}

	if peakHour >= 0 {
		p.PeakHour = &peakHour
	}
	if peakDay >= 0 {
		name := WeekdayOrder[peakDay].String()
		p.PeakDay = &name
	}
	return p
}
