// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package analytics

import (
	"sort"
	"time"

	"github.com/tomtom215/listenwell/internal/models"
)

// DayBuckets is the sparse per-day aggregation of play events: one entry per
// local calendar day with at least one event. Days without events are absent.
type DayBuckets map[models.Day]models.DayBucket

// BucketEvents groups the events that fall inside w into local calendar-day
// buckets. Events outside w are ignored, duplicates and out-of-order events are
// counted as they come.
func BucketEvents(events []models.PlayEvent, w models.Window, loc *time.Location) DayBuckets {
	buckets := make(DayBuckets)
	for i := range events {
		e := &events[i]
		if !Contains(w, e.PlayedAt) {
			continue
		}
		buckets.add(e, loc)
	}
	return buckets
}

func (b DayBuckets) add(e *models.PlayEvent, loc *time.Location) {
	day := models.DayOf(e.PlayedAt, loc)
	bucket := b[day]
	bucket.Date = day
	bucket.Count++
	bucket.DurationSeconds += e.DurationSeconds
	if e.Completed {
		bucket.CompletedCount++
	}
	b[day] = bucket
}

// Sorted returns the buckets in ascending date order.
func (b DayBuckets) Sorted() []models.DayBucket {
	out := make([]models.DayBucket, 0, len(b))
	for _, bucket := range b {
		out = append(out, bucket)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Earliest returns the first day with activity, or the zero Day when empty.
func (b DayBuckets) Earliest() models.Day {
	var earliest models.Day
	for day := range b {
		if earliest.IsZero() || day.Before(earliest) {
			earliest = day
		}
	}
	return earliest
}

// ActiveDays returns the buckets as ActiveDay values in ascending order.
func (b DayBuckets) ActiveDays() []models.ActiveDay {
	sorted := b.Sorted()
	out := make([]models.ActiveDay, 0, len(sorted))
	for _, bucket := range sorted {
		out = append(out, models.ActiveDay{Date: bucket.Date, Count: bucket.Count})
	}
	return out
}

// Fill returns one bucket per calendar day from..to inclusive, synthesizing
// zero-count buckets for days without events. It returns an empty, non-nil
// slice when from is zero or after to.
//
// Every consumer that needs a contiguous calendar must use Fill rather than
// iterating the sparse map.
func (b DayBuckets) Fill(from, to models.Day) []models.DayBucket {
	if from.IsZero() || from.After(to) {
		return []models.DayBucket{}
	}
	out := make([]models.DayBucket, 0, from.DaysUntil(to)+1)
	for day := from; !day.After(to); day = day.AddDays(1) {
		bucket, ok := b[day]
		if !ok {
			bucket = models.DayBucket{Date: day}
		}
		out = append(out, bucket)
	}
	return out
}

// ActiveDaysFromEvents buckets every event regardless of window. Sources that
// cannot aggregate by local day themselves use it to implement ListActiveDays.
func ActiveDaysFromEvents(events []models.PlayEvent, loc *time.Location) []models.ActiveDay {
	buckets := make(DayBuckets)
	for i := range events {
		buckets.add(&events[i], loc)
	}
	return buckets.ActiveDays()
}
