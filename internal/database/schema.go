// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaStatements is valid for both DuckDB and SQLite.
// played_at holds Unix milliseconds (UTC) so range filters compare integers
// on either driver.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS play_events (
		id                  TEXT PRIMARY KEY,
		user_id             TEXT NOT NULL,
		story_id            TEXT NOT NULL,
		story_title         TEXT NOT NULL DEFAULT '',
		cover_image         TEXT NOT NULL DEFAULT '',
		played_at           BIGINT NOT NULL,
		completed           BOOLEAN NOT NULL DEFAULT FALSE,
		progress_percentage INTEGER NOT NULL DEFAULT 0,
		duration_seconds    BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_play_events_user_played ON play_events (user_id, played_at)`,
}

// initialize creates tables and indexes
func (db *DB) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
