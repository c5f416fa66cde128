// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/listenwell/internal/analytics"
	"github.com/tomtom215/listenwell/internal/metrics"
	"github.com/tomtom215/listenwell/internal/models"
)

const selectEventColumns = `id, user_id, story_id, story_title, cover_image, played_at, completed, progress_percentage, duration_seconds`

// ListEvents returns userID's events with start <= played_at <= end, oldest first.
func (db *DB) ListEvents(ctx context.Context, userID string, start, end time.Time) (events []models.PlayEvent, err error) {
	began := time.Now()
	defer func() { metrics.RecordSourceQuery("list_events", time.Since(began), err) }()

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+selectEventColumns+`
		FROM play_events
		WHERE user_id = ? AND played_at >= ? AND played_at <= ?
		ORDER BY played_at, id`,
		userID, start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to query play events: %w", err)
	}
	defer closeWithLog(rows, "rows")

	events = make([]models.PlayEvent, 0)
	for rows.Next() {
		e, scanErr := scanPlayEvent(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating play events: %w", err)
	}
	return events, nil
}

// ListActiveDays returns every day in loc on which userID has at least one
// event, oldest first.
func (db *DB) ListActiveDays(ctx context.Context, userID string, loc *time.Location) (days []models.ActiveDay, err error) {
	began := time.Now()
	defer func() { metrics.RecordSourceQuery("list_active_days", time.Since(began), err) }()

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	// Day boundaries depend on loc, so only instants are read here.
	rows, err := db.conn.QueryContext(ctx,
		`SELECT played_at FROM play_events WHERE user_id = ? ORDER BY played_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active days: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var instants []models.PlayEvent
	for rows.Next() {
		var ms int64
		if err = rows.Scan(&ms); err != nil {
			return nil, fmt.Errorf("failed to scan active day: %w", err)
		}
		instants = append(instants, models.PlayEvent{PlayedAt: time.UnixMilli(ms).UTC()})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active days: %w", err)
	}
	return analytics.ActiveDaysFromEvents(instants, loc), nil
}

// InsertPlayEvents appends events in one transaction and returns how many
// rows were written. Events without an ID get a UUID; an ID already present
// is skipped, so re-importing a file is harmless.
func (db *DB) InsertPlayEvents(ctx context.Context, events []models.PlayEvent) (inserted int, err error) {
	for i := range events {
		e := &events[i]
		if e.UserID == "" || e.StoryID == "" || e.PlayedAt.IsZero() {
			return 0, fmt.Errorf("%w: event %d needs userId, storyId and playedAt", ErrInvalidEvent, i)
		}
		if e.ProgressPercentage < 0 || e.ProgressPercentage > 100 {
			return 0, fmt.Errorf("%w: event %d progressPercentage %d outside 0-100", ErrInvalidEvent, i, e.ProgressPercentage)
		}
	}

	began := time.Now()
	defer func() { metrics.RecordSourceQuery("insert_events", time.Since(began), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO play_events (`+selectEventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range events {
		e := &events[i]
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		res, execErr := stmt.ExecContext(ctx,
			e.ID, e.UserID, e.StoryID, e.StoryTitle, e.CoverImage,
			e.PlayedAt.UnixMilli(), e.Completed || e.ProgressPercentage >= 100,
			e.ProgressPercentage, e.DurationSeconds)
		if execErr != nil {
			return 0, fmt.Errorf("failed to insert event %s: %w", e.ID, execErr)
		}
		if n, raErr := res.RowsAffected(); raErr == nil {
			inserted += int(n)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit play events: %w", err)
	}
	return inserted, nil
}

// CountPlayEvents returns the number of stored events for userID, or for all
// users when userID is empty.
func (db *DB) CountPlayEvents(ctx context.Context, userID string) (int, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var (
		count int
		err   error
	)
	if userID == "" {
		err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM play_events`).Scan(&count)
	} else {
		err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM play_events WHERE user_id = ?`, userID).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count play events: %w", err)
	}
	return count, nil
}

func scanPlayEvent(rows *sql.Rows) (models.PlayEvent, error) {
	var (
		e        models.PlayEvent
		playedAt int64
	)
	if err := rows.Scan(
		&e.ID, &e.UserID, &e.StoryID, &e.StoryTitle, &e.CoverImage,
		&playedAt, &e.Completed, &e.ProgressPercentage, &e.DurationSeconds,
	); err != nil {
		return e, fmt.Errorf("failed to scan play event: %w", err)
	}
	e.PlayedAt = time.UnixMilli(playedAt).UTC()
	return e, nil
}
