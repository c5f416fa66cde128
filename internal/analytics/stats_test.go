// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package analytics

import (
	"testing"
	"time"

	"github.com/tomtom215/listenwell/internal/models"
)

func TestAggregateStatsTotals(t *testing.T) {
	t.Parallel()

	w := ResolveWindow(Range7Days, mustTime(t, "2024-01-10T15:00:00Z"), time.UTC)
	events := []models.PlayEvent{
		play(t, "a", "2024-01-08T10:00:00Z"),
		play(t, "b", "2024-01-09T10:00:00Z"),
		play(t, "c", "2024-01-09T11:00:00Z"),
	}
	events[0].DurationSeconds = 60
	events[1].DurationSeconds = 120
	events[2].DurationSeconds = 30
	events[2].Completed = true

	stats := AggregateStats(events, w)
	if stats.TotalDuration != 210 {
		t.Errorf("TotalDuration = %d, want 210", stats.TotalDuration)
	}
	if stats.TotalPlays != 3 {
		t.Errorf("TotalPlays = %d, want 3", stats.TotalPlays)
	}
	if stats.CompletedPlays != 1 {
		t.Errorf("CompletedPlays = %d, want 1", stats.CompletedPlays)
	}
	if stats.ActiveDays != 2 {
		t.Errorf("ActiveDays = %d, want 2", stats.ActiveDays)
	}
	if want := 3.0 / 7.0; stats.AveragePerDay != want {
		t.Errorf("AveragePerDay = %v, want %v", stats.AveragePerDay, want)
	}
}

func TestAggregateStatsEmpty(t *testing.T) {
	t.Parallel()

	w := ResolveWindow(RangeAll, mustTime(t, "2024-01-10T15:00:00Z"), time.UTC)
	stats := AggregateStats(nil, w)

	if stats.TotalPlays != 0 || stats.TotalDuration != 0 || stats.AveragePerDay != 0 {
		t.Errorf("stats = %+v, want zero totals", stats)
	}
	if stats.MostPlayedStory != nil {
		t.Errorf("MostPlayedStory = %+v, want nil", stats.MostPlayedStory)
	}
}

func TestAggregateStatsSameDayWindow(t *testing.T) {
	t.Parallel()

	// An "all" window whose earliest event is today spans zero elapsed days.
	now := mustTime(t, "2024-01-10T15:00:00Z")
	w := WithEarliest(ResolveWindow(RangeAll, now, time.UTC), day(2024, 1, 10))
	stats := AggregateStats([]models.PlayEvent{
		play(t, "a", "2024-01-10T09:00:00Z"),
		play(t, "a", "2024-01-10T10:00:00Z"),
	}, w)

	if stats.AveragePerDay != 2 {
		t.Errorf("AveragePerDay = %v, want 2", stats.AveragePerDay)
	}
}

func TestMostPlayedTieBreak(t *testing.T) {
	t.Parallel()

	w := ResolveWindow(Range30Days, mustTime(t, "2024-01-10T15:00:00Z"), time.UTC)
	events := []models.PlayEvent{
		play(t, "old", "2024-01-01T10:00:00Z"),
		play(t, "old", "2024-01-02T10:00:00Z"),
		play(t, "old", "2024-01-03T10:00:00Z"),
		play(t, "recent", "2023-12-20T10:00:00Z"),
		play(t, "recent", "2023-12-21T10:00:00Z"),
		play(t, "recent", "2024-01-09T10:00:00Z"),
		play(t, "single", "2024-01-10T10:00:00Z"),
	}

	// Order of input must not matter.
	for _, order := range [][]int{{0, 1, 2, 3, 4, 5, 6}, {6, 5, 4, 3, 2, 1, 0}, {3, 0, 6, 4, 1, 5, 2}} {
		shuffled := make([]models.PlayEvent, 0, len(events))
		for _, i := range order {
			shuffled = append(shuffled, events[i])
		}
		mp := AggregateStats(shuffled, w).MostPlayedStory
		if mp == nil {
			t.Fatal("MostPlayedStory = nil")
		}
		if mp.ID != "recent" || mp.PlayCount != 3 {
			t.Errorf("order %v: MostPlayedStory = %s (%d), want recent (3)", order, mp.ID, mp.PlayCount)
		}
		if !mp.LastPlayed.Equal(mustTime(t, "2024-01-09T10:00:00Z")) {
			t.Errorf("LastPlayed = %v, want 2024-01-09T10:00:00Z", mp.LastPlayed)
		}
	}
}

func TestMostPlayedUsesLatestTitle(t *testing.T) {
	t.Parallel()

	w := ResolveWindow(Range7Days, mustTime(t, "2024-01-10T15:00:00Z"), time.UTC)
	first := play(t, "s", "2024-01-08T10:00:00Z")
	first.StoryTitle = "Draft Title"
	latest := play(t, "s", "2024-01-09T10:00:00Z")
	latest.StoryTitle = "Final Title"
	latest.CoverImage = "cover.png"

	mp := AggregateStats([]models.PlayEvent{latest, first}, w).MostPlayedStory
	if mp.Title != "Final Title" || mp.CoverImage != "cover.png" {
		t.Errorf("MostPlayedStory = %+v, want title and cover of the latest play", mp)
	}
}

func TestMostPlayedFullTieUsesStoryID(t *testing.T) {
	t.Parallel()

	w := ResolveWindow(Range7Days, mustTime(t, "2024-01-10T15:00:00Z"), time.UTC)
	mp := AggregateStats([]models.PlayEvent{
		play(t, "zeta", "2024-01-09T10:00:00Z"),
		play(t, "alpha", "2024-01-09T10:00:00Z"),
	}, w).MostPlayedStory
	if mp.ID != "alpha" {
		t.Errorf("MostPlayedStory.ID = %q, want alpha", mp.ID)
	}
}
