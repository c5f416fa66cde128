// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package analytics

import (
	"github.com/tomtom215/listenwell/internal/models"
)

// IntensityLevel maps a day's count to a heatmap level 0-4 relative to
// maxCount. A zero count is always level 0.
func IntensityLevel(count, maxCount int) int {
	if count <= 0 {
		return 0
	}
	if maxCount < 1 {
		maxCount = 1
	}
	ratio := float64(count) / float64(maxCount)
	switch {
	case ratio <= 0.25:
		return 1
	case ratio <= 0.5:
		return 2
	case ratio <= 0.75:
		return 3
	default:
		return 4
	}
}

// BuildCalendar turns zero-filled buckets into heatmap cells. MaxCount is at
// least 1 even for an empty or all-zero sequence.
func BuildCalendar(filled []models.DayBucket) models.CalendarData {
	data := models.CalendarData{
		Days:     make([]models.CalendarDay, 0, len(filled)),
		MaxCount: 1,
	}
	for _, b := range filled {
		data.MaxCount = max(data.MaxCount, b.Count)
		data.TotalCount += b.Count
		if b.Count > 0 {
			data.ActiveDays++
		}
	}
	for _, b := range filled {
		data.Days = append(data.Days, models.CalendarDay{
			Date:            b.Date,
			Count:           b.Count,
			DurationSeconds: b.DurationSeconds,
			CompletedCount:  b.CompletedCount,
			Level:           IntensityLevel(b.Count, data.MaxCount),
		})
	}
	return data
}
