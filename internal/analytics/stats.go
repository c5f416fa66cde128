// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package analytics

import (
	"time"

	"github.com/tomtom215/listenwell/internal/models"
)

// storyTally accumulates plays of one story while scanning events.
type storyTally struct {
	id         string
	title      string
	cover      string
	count      int
	lastPlayed time.Time
}

// AggregateStats computes the totals card over events already restricted to w.
// Streak fields are left zero; the engine fills them from the full active-day
// history. Empty input yields zero totals and a nil MostPlayedStory.
//
// AveragePerDay divides by ElapsedDays(w), the days between StartDay and
// EndDay, so a 7days window divides by 7 while its calendar shows 8 days
// (today included). Never less than 1.
func AggregateStats(events []models.PlayEvent, w models.Window) models.ListeningStats {
	stats := models.ListeningStats{Window: w}

	tallies := make(map[string]*storyTally)
	days := make(map[models.Day]struct{})
	loc := windowLocation(w)

	for i := range events {
		e := &events[i]
		stats.TotalPlays++
		stats.TotalDuration += e.DurationSeconds
		if e.Completed {
			stats.CompletedPlays++
		}
		days[models.DayOf(e.PlayedAt, loc)] = struct{}{}

		t, ok := tallies[e.StoryID]
		if !ok {
			t = &storyTally{id: e.StoryID}
			tallies[e.StoryID] = t
		}
		t.count++
		// Title and cover follow the story's most recent play.
		if t.count == 1 || e.PlayedAt.After(t.lastPlayed) {
			t.lastPlayed = e.PlayedAt
			t.title = e.StoryTitle
			t.cover = e.CoverImage
		}
	}

	stats.ActiveDays = len(days)
	stats.AveragePerDay = float64(stats.TotalPlays) / float64(max(1, ElapsedDays(w)))
	stats.MostPlayedStory = mostPlayed(tallies)
	return stats
}

// mostPlayed picks the story with the highest play count. Ties go to the story
// played most recently, then to the lowest story ID so the result never
// depends on map iteration order.
func mostPlayed(tallies map[string]*storyTally) *models.MostPlayedStory {
	var best *storyTally
	for _, t := range tallies {
		if best == nil || betterTally(t, best) {
			best = t
		}
	}
	if best == nil {
		return nil
	}
	return &models.MostPlayedStory{
		ID:         best.id,
		Title:      best.title,
		CoverImage: best.cover,
		PlayCount:  best.count,
		LastPlayed: best.lastPlayed,
	}
}

func betterTally(a, b *storyTally) bool {
	if a.count != b.count {
		return a.count > b.count
	}
	if !a.lastPlayed.Equal(b.lastPlayed) {
		return a.lastPlayed.After(b.lastPlayed)
	}
	return a.id < b.id
}

// windowLocation recovers the location the window was resolved in.
func windowLocation(w models.Window) *time.Location {
	if w.End.IsZero() {
		return time.UTC
	}
	return w.End.Location()
}
