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

func TestBucketEvents(t *testing.T) {
	t.Parallel()

	w := ResolveWindow(Range7Days, mustTime(t, "2024-01-10T15:00:00Z"), time.UTC)
	done := play(t, "a", "2024-01-09T20:00:00Z")
	done.Completed = true
	done.DurationSeconds = 300

	events := []models.PlayEvent{
		play(t, "a", "2024-01-09T08:00:00Z"),
		done,
		play(t, "b", "2024-01-10T01:00:00Z"),
		play(t, "c", "2023-12-25T10:00:00Z"), // outside the window
	}

	buckets := BucketEvents(events, w, time.UTC)
	if len(buckets) != 2 {
		t.Fatalf("len(buckets) = %d, want 2", len(buckets))
	}
	got := buckets[day(2024, 1, 9)]
	want := models.DayBucket{Date: day(2024, 1, 9), Count: 2, DurationSeconds: 360, CompletedCount: 1}
	if got != want {
		t.Errorf("bucket 2024-01-09 = %+v, want %+v", got, want)
	}
	if buckets.Earliest() != day(2024, 1, 9) {
		t.Errorf("Earliest = %v, want 2024-01-09", buckets.Earliest())
	}
}

func TestBucketEventsLocalDay(t *testing.T) {
	t.Parallel()

	// 03:00 UTC on Jan 10 is 22:00 on Jan 9 at UTC-5.
	loc := time.FixedZone("UTC-5", -5*3600)
	w := ResolveWindow(Range7Days, mustTime(t, "2024-01-10T15:00:00Z"), loc)
	buckets := BucketEvents([]models.PlayEvent{play(t, "a", "2024-01-10T03:00:00Z")}, w, loc)

	if _, ok := buckets[day(2024, 1, 9)]; !ok {
		t.Errorf("event not bucketed on local day 2024-01-09: %v", buckets.Sorted())
	}
}

func TestBucketEventsDST(t *testing.T) {
	t.Parallel()

	// March 10 2024 is a 23-hour day in New York. Both events are local March 10.
	ny := mustLoad(t, "America/New_York")
	w := ResolveWindow(Range7Days, mustTime(t, "2024-03-12T12:00:00Z"), ny)
	buckets := BucketEvents([]models.PlayEvent{
		play(t, "a", "2024-03-10T05:30:00Z"), // 00:30 EST
		play(t, "a", "2024-03-11T03:30:00Z"), // 23:30 EDT
	}, w, ny)

	if len(buckets) != 1 || buckets[day(2024, 3, 10)].Count != 2 {
		t.Errorf("buckets = %v, want one bucket on 2024-03-10 with count 2", buckets.Sorted())
	}
}

func TestFillZeroFillsEveryDay(t *testing.T) {
	t.Parallel()

	buckets := DayBuckets{
		day(2024, 1, 1): {Date: day(2024, 1, 1), Count: 2},
		day(2024, 1, 3): {Date: day(2024, 1, 3), Count: 1},
	}

	tests := []struct {
		name     string
		from, to models.Day
	}{
		{"three days", day(2024, 1, 1), day(2024, 1, 3)},
		{"month boundary", day(2023, 12, 20), day(2024, 1, 10)},
		{"leap february", day(2024, 2, 1), day(2024, 3, 1)},
		{"single day", day(2024, 1, 2), day(2024, 1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filled := buckets.Fill(tt.from, tt.to)
			if want := tt.from.DaysUntil(tt.to) + 1; len(filled) != want {
				t.Fatalf("len = %d, want %d", len(filled), want)
			}
			for i, b := range filled {
				if want := tt.from.AddDays(i); b.Date != want {
					t.Fatalf("filled[%d].Date = %v, want %v", i, b.Date, want)
				}
				if orig, ok := buckets[b.Date]; ok && orig.Count != b.Count {
					t.Errorf("filled[%d].Count = %d, want %d", i, b.Count, orig.Count)
				}
			}
		})
	}

	counts := []int{}
	for _, b := range buckets.Fill(day(2024, 1, 1), day(2024, 1, 3)) {
		counts = append(counts, b.Count)
	}
	if len(counts) != 3 || counts[0] != 2 || counts[1] != 0 || counts[2] != 1 {
		t.Errorf("counts = %v, want [2 0 1]", counts)
	}
}

func TestFillEmptyRange(t *testing.T) {
	t.Parallel()

	var b DayBuckets
	if got := b.Fill(models.Day{}, day(2024, 1, 1)); got == nil || len(got) != 0 {
		t.Errorf("Fill(zero, d) = %v, want empty non-nil", got)
	}
	if got := b.Fill(day(2024, 1, 5), day(2024, 1, 1)); len(got) != 0 {
		t.Errorf("Fill(inverted) = %v, want empty", got)
	}
}

func TestActiveDaysFromEvents(t *testing.T) {
	t.Parallel()

	got := ActiveDaysFromEvents([]models.PlayEvent{
		play(t, "a", "2024-01-03T10:00:00Z"),
		play(t, "a", "2024-01-01T10:00:00Z"),
		play(t, "b", "2024-01-01T11:00:00Z"),
	}, time.UTC)

	want := []models.ActiveDay{
		{Date: day(2024, 1, 1), Count: 2},
		{Date: day(2024, 1, 3), Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
