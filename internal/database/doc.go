// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

/*
Package database is the play event store behind the analytics engine.

Two drivers share one schema:

  - duckdb (default): github.com/duckdb/duckdb-go/v2, tuned through the DSN
    (threads, max_memory) with a CPU-sized connection pool
  - sqlite: modernc.org/sqlite, pure Go, WAL journal, one connection

The store is read by the engine through ListEvents and ListActiveDays and
written only by the import command and tests through InsertPlayEvents.
Every read is bounded by the configured query timeout and recorded in the
listenwell_source_query_duration_seconds histogram.

# Schema

	play_events(id, user_id, story_id, story_title, cover_image,
	            played_at, completed, progress_percentage, duration_seconds)

played_at is Unix milliseconds. Events are never updated or deleted here.
*/
package database
