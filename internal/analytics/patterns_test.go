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

func TestAnalyzePatternsEmpty(t *testing.T) {
	t.Parallel()

	p := AnalyzePatterns(nil, time.UTC)
	if len(p.HourlyDistribution) != 24 {
		t.Errorf("len(HourlyDistribution) = %d, want 24", len(p.HourlyDistribution))
	}
	if len(p.WeekdayDistribution) != 7 {
		t.Errorf("len(WeekdayDistribution) = %d, want 7", len(p.WeekdayDistribution))
	}
	for h, c := range p.HourlyDistribution {
		if c.Hour != h || c.Count != 0 {
			t.Errorf("HourlyDistribution[%d] = %+v", h, c)
		}
	}
	wantDays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, c := range p.WeekdayDistribution {
		if c.Day != wantDays[i] || c.Count != 0 {
			t.Errorf("WeekdayDistribution[%d] = %+v, want %s/0", i, c, wantDays[i])
		}
	}
	if p.PeakHour != nil || p.PeakDay != nil {
		t.Errorf("peaks = %v/%v, want nil", p.PeakHour, p.PeakDay)
	}
}

func TestAnalyzePatterns(t *testing.T) {
	t.Parallel()

	events := []models.PlayEvent{
		play(t, "a", "2024-01-01T09:15:00Z"), // Monday
		play(t, "a", "2024-01-07T09:45:00Z"), // Sunday
		play(t, "a", "2024-01-07T20:00:00Z"), // Sunday
		play(t, "a", "2024-01-03T23:59:59Z"), // Wednesday
	}
	p := AnalyzePatterns(events, time.UTC)

	if p.TotalEvents != 4 {
		t.Errorf("TotalEvents = %d, want 4", p.TotalEvents)
	}
	if got := p.HourlyDistribution[9].Count; got != 2 {
		t.Errorf("hour 9 count = %d, want 2", got)
	}
	if got := p.HourlyDistribution[23].Count; got != 1 {
		t.Errorf("hour 23 count = %d, want 1", got)
	}
	if got := p.WeekdayDistribution[0]; got.Day != "Monday" || got.Count != 1 {
		t.Errorf("WeekdayDistribution[0] = %+v, want Monday/1", got)
	}
	if got := p.WeekdayDistribution[6]; got.Day != "Sunday" || got.Count != 2 {
		t.Errorf("WeekdayDistribution[6] = %+v, want Sunday/2", got)
	}
	if p.PeakHour == nil || *p.PeakHour != 9 {
		t.Errorf("PeakHour = %v, want 9", p.PeakHour)
	}
	if p.PeakDay == nil || *p.PeakDay != "Sunday" {
		t.Errorf("PeakDay = %v, want Sunday", p.PeakDay)
	}
}

func TestAnalyzePatternsLocalTime(t *testing.T) {
	t.Parallel()

	// 03:00 UTC Monday is 22:00 Sunday at UTC-5.
	loc := time.FixedZone("UTC-5", -5*3600)
	p := AnalyzePatterns([]models.PlayEvent{play(t, "a", "2024-01-08T03:00:00Z")}, loc)

	if p.HourlyDistribution[22].Count != 1 {
		t.Errorf("hour 22 count = %d, want 1", p.HourlyDistribution[22].Count)
	}
	if p.WeekdayDistribution[6].Count != 1 {
		t.Errorf("Sunday count = %d, want 1", p.WeekdayDistribution[6].Count)
	}
}

func TestAnalyzePatternsPeakTies(t *testing.T) {
	t.Parallel()

	p := AnalyzePatterns([]models.PlayEvent{
		play(t, "a", "2024-01-07T20:00:00Z"), // Sunday 20h
		play(t, "a", "2024-01-02T06:00:00Z"), // Tuesday 6h
	}, time.UTC)

	if p.PeakHour == nil || *p.PeakHour != 6 {
		t.Errorf("PeakHour = %v, want earliest tied hour 6", p.PeakHour)
	}
	if p.PeakDay == nil || *p.PeakDay != "Tuesday" {
		t.Errorf("PeakDay = %v, want earliest tied day Tuesday", p.PeakDay)
	}
}

func TestWeekdayIndex(t *testing.T) {
	t.Parallel()

	for i, wd := range WeekdayOrder {
		if got := weekdayIndex(wd); got != i {
			t.Errorf("weekdayIndex(%v) = %d, want %d", wd, got, i)
		}
	}
}
