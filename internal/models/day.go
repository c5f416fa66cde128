// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package models

import (
	"fmt"
	"time"
)

// DayLayout is the wire and storage format of a Day.
const DayLayout = "2006-01-02"

// Day is a civil calendar date with no time-of-day and no location.
//
// Every bucketing and streak computation keys on Day rather than on instants:
// two events belong to the same day when their local year, month and day
// match, and "yesterday" is calendar arithmetic, never instant arithmetic.
// This keeps daylight-saving transitions (23h and 25h days) from splitting
// or merging days.
//
// The zero value is not a valid date; use IsZero to detect it.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar day that t falls on in loc.
// A nil loc means the location already attached to t.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// NewDay builds a Day, normalizing out-of-range values the way time.Date does
// (January 32 becomes February 1).
func NewDay(year int, month time.Month, day int) Day {
	// UTC has no DST, so normalizing through it is pure calendar arithmetic.
	return DayOf(time.Date(year, month, day, 12, 0, 0, 0, time.UTC), nil)
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return DayOf(t, nil), nil
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// AddDays returns the day n calendar days after d (before, for negative n).
func (d Day) AddDays(n int) Day {
	return NewDay(d.Year, d.Month, d.Day+n)
}

// AddMonths returns the same day-of-month n months later, normalized like time.AddDate.
func (d Day) AddMonths(n int) Day {
	return NewDay(d.Year, d.Month+time.Month(n), d.Day)
}

// Start returns midnight at the beginning of d in loc.
func (d Day) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// julian returns the Julian Day Number of d (Fliegel & Van Flandern).
func (d Day) julian() int {
	a := (14 - int(d.Month)) / 12
	y := d.Year + 4800 - a
	m := int(d.Month) + 12*a - 3
	return d.Day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// DaysUntil returns the number of calendar days from d to other.
// It is negative when other is before d.
func (d Day) DaysUntil(other Day) int {
	return other.julian() - d.julian()
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d Day) Compare(other Day) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether d is strictly before other.
func (d Day) Before(other Day) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly after other.
func (d Day) After(other Day) bool { return d.Compare(other) > 0 }

// Weekday returns the day of the week d falls on.
func (d Day) Weekday() time.Weekday {
	// JDN 0 was a Monday.
	return time.Weekday((d.julian() + 1) % 7)
}

// String formats d as YYYY-MM-DD.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler, so Day encodes as "YYYY-MM-DD" in JSON.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
