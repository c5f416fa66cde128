// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

// Package analytics implements the listening analytics engine.
//
// It turns the append-only log of play events of one user into the derived
// views the dashboard renders. Data flows one way:
//
//	Source -> ResolveWindow -> BucketEvents -> {AggregateStats, CalculateStreak, BuildCalendar}
//	Source -> AnalyzePatterns (raw events, sub-day granularity)
//
// # Components
//
//   - window.go: symbolic ranges (7days, 30days, 90days, 6months, year, all) to instants
//   - buckets.go: per-calendar-day buckets and zero-filled day ranges
//   - stats.go: totals, average per day, most played story
//   - streak.go: current and longest consecutive-day streaks
//   - calendar.go: zero-filled heatmap with 0-4 intensity levels
//   - patterns.go: hour-of-day and Monday-first day-of-week histograms
//   - history.go: search, ordering and pagination of the play history list
//   - engine.go: request-shaped entry points over a Source
//
// # Time
//
// Windows and day boundaries never depend on the wall clock. The Engine takes
// a Clock and a *time.Location; every day boundary is computed with
// models.Day in that location, never by dividing instant differences.
//
// # Statelessness
//
// Every function is a pure function of its inputs. The Engine holds only its
// collaborators and is safe for concurrent use; each call recomputes from the
// source, so identical event logs always produce identical results.
package analytics
