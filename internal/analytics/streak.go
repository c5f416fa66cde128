// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package analytics

import (
	"sort"

	"github.com/tomtom215/listenwell/internal/models"
)

// CalculateStreak computes the current and longest consecutive-day streaks
// from a user's full active-day history. Entries with a zero count are not
// active; duplicates and any input order are tolerated.
//
// The current streak is alive while today or yesterday has activity: a user
// who has not listened yet today keeps yesterday's streak until the day ends.
// Days are compared as calendar dates, so DST transitions never split a run.
func CalculateStreak(active []models.ActiveDay, today models.Day) models.StreakInfo {
	set := make(map[models.Day]struct{}, len(active))
	for _, d := range active {
		if d.Count > 0 {
			set[d.Date] = struct{}{}
		}
	}
	if len(set) == 0 {
		return models.StreakInfo{}
	}

	info := models.StreakInfo{
		Current: currentStreak(set, today),
		Longest: longestStreak(set),
	}
	// Active days after today (clock skew, future-dated imports) can't make
	// the longest run shorter than the current one, but guard the invariant.
	if info.Longest < info.Current {
		info.Longest = info.Current
	}
	return info
}

func currentStreak(set map[models.Day]struct{}, today models.Day) int {
	day := today
	if _, ok := set[day]; !ok {
		day = today.AddDays(-1)
		if _, ok := set[day]; !ok {
			return 0
		}
	}

	n := 0
	for {
		if _, ok := set[day]; !ok {
			return n
		}
		n++
		day = day.AddDays(-1)
	}
}

// longestStreak is a single ascending pass over the distinct active days.
func longestStreak(set map[models.Day]struct{}) int {
	days := make([]models.Day, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDays(1) == d {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}
