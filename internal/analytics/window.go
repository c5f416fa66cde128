// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package analytics

import (
	"time"

	"github.com/tomtom215/listenwell/internal/models"
)

// Range is a symbolic time window tag.
type Range string

const (
	Range7Days   Range = "7days"
	Range30Days  Range = "30days"
	Range90Days  Range = "90days"
	Range6Months Range = "6months"
	RangeYear    Range = "year"
	RangeAll     Range = "all"
)

// Epoch is the sentinel start of the "all" range. It is never shown to users:
// the effective start of "all" is the day of the earliest event.
var Epoch = time.Unix(0, 0).UTC()

// Scope selects which range tags a view accepts.
type Scope int

const (
	// ScopeActivity covers stats, history and patterns.
	ScopeActivity Scope = iota
	// ScopeCalendar covers the heatmap, which also offers month-granularity ranges.
	ScopeCalendar
)

var (
	activityRanges = []Range{Range7Days, Range30Days, Range90Days, RangeAll}
	calendarRanges = []Range{Range7Days, Range30Days, Range90Days, Range6Months, RangeYear, RangeAll}
)

// Ranges returns the tags accepted in scope, in display order.
func Ranges(scope Scope) []Range {
	src := activityRanges
	if scope == ScopeCalendar {
		src = calendarRanges
	}
	out := make([]Range, len(src))
	copy(out, src)
	return out
}

// ParseRange validates tag against scope. Unknown tags and tags outside the
// scope both fail with *InvalidRangeError.
func ParseRange(tag string, scope Scope) (Range, error) {
	for _, r := range Ranges(scope) {
		if string(r) == tag {
			return r, nil
		}
	}
	return "", &InvalidRangeError{Tag: tag, Allowed: Ranges(scope)}
}

// dayCount returns N for the day ranges and 0 otherwise.
func (r Range) dayCount() int {
	switch r {
	case Range7Days:
		return 7
	case Range30Days:
		return 30
	case Range90Days:
		return 90
	default:
		return 0
	}
}

// ResolveWindow maps r to concrete instants anchored at now in loc.
//
//   - 7days/30days/90days: [start of (today - N days), now]
//   - 6months/year: [start of (today - 6 or 12 calendar months), now]
//   - all: [Epoch, now]; StartDay stays zero until WithEarliest supplies the
//     user's first active day
//
// Both ends are inclusive at day granularity.
func ResolveWindow(r Range, now time.Time, loc *time.Location) models.Window {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	today := models.DayOf(now, loc)

	w := models.Window{
		Range:    string(r),
		End:      now,
		EndDay:   today,
		Timezone: loc.String(),
	}

	var startDay models.Day
	switch r {
	case Range6Months:
		startDay = today.AddMonths(-6)
	case RangeYear:
		startDay = today.AddMonths(-12)
	case RangeAll:
		w.Start = Epoch.In(loc)
		return w
	default:
		startDay = today.AddDays(-r.dayCount())
	}

	w.Start = startDay.Start(loc)
	w.StartDay = startDay
	return w
}

// WithEarliest returns w with its effective start day clamped to
// max(w.Start's day, earliest). It only changes "all" windows, whose start is
// the Epoch sentinel; the instant bounds are left untouched. A zero earliest
// (no events) starts the window today.
func WithEarliest(w models.Window, earliest models.Day) models.Window {
	if w.Range != string(RangeAll) {
		return w
	}
	if earliest.IsZero() {
		w.StartDay = w.EndDay
		return w
	}
	if epochDay := models.DayOf(w.Start, nil); earliest.Before(epochDay) {
		earliest = epochDay
	}
	if earliest.After(w.EndDay) {
		earliest = w.EndDay
	}
	w.StartDay = earliest
	return w
}

// Contains reports whether t lies inside the window's inclusive instant bounds.
func Contains(w models.Window, t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ElapsedDays is the number of whole calendar days the window spans. It is 0
// for a window that starts and ends on the same day, or has no start day.
func ElapsedDays(w models.Window) int {
	if w.StartDay.IsZero() {
		return 0
	}
	n := w.StartDay.DaysUntil(w.EndDay)
	if n < 0 {
		return 0
	}
	return n
}
