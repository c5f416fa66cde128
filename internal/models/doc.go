// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

/*
Package models defines data structures for the Listenwell application.

Key Components:

  - PlayEvent: append-only record of one listening session
  - Day: civil calendar date used as the key of every day bucket
  - DayBucket, ActiveDay: per-day aggregations of play events
  - ListeningStats, StreakInfo, CalendarData, ListeningPatterns: derived views
  - APIResponse: standardized HTTP response envelope

Derived views are never persisted; they are recomputed from play events on
every request.
*/
package models
