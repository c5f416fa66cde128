// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// formatSeconds renders a listening total such as "1h 5m" or "45s".
func formatSeconds(seconds int64) string {
	d := time.Duration(seconds) * time.Second
	h := int64(d / time.Hour)
	m := int64(d % time.Hour / time.Minute)
	s := int64(d % time.Minute / time.Second)
	switch {
	case h > 0:
		return fmt.Sprintf("%sh %dm", humanize.Comma(h), m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// formatDays renders a streak length.
func formatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return humanize.Comma(int64(n)) + " days"
}

// formatRelative renders t relative to now, e.g. "3 hours ago".
func formatRelative(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// bar scales count against peak into a bar of at most width cells.
func bar(count, peak, width int) string {
	if count <= 0 || peak <= 0 {
		return ""
	}
	n := count * width / peak
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func itoa(n int) string {
	return humanize.Comma(int64(n))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
