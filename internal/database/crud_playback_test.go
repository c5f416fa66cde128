// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package database

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/tomtom215/listenwell/internal/analytics"
	"github.com/tomtom215/listenwell/internal/models"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleEvents() []models.PlayEvent {
	return []models.PlayEvent{
		{ID: "e1", UserID: "u1", StoryID: "s1", StoryTitle: "The Gruffalo", PlayedAt: at("2024-01-01T09:00:00Z"), Completed: true, ProgressPercentage: 100, DurationSeconds: 300},
		{ID: "e2", UserID: "u1", StoryID: "s1", StoryTitle: "The Gruffalo", PlayedAt: at("2024-01-01T20:30:00Z"), ProgressPercentage: 40, DurationSeconds: 120},
		{ID: "e3", UserID: "u1", StoryID: "s2", StoryTitle: "Zog", CoverImage: "https://img.example/zog.png", PlayedAt: at("2024-01-03T04:00:00Z"), ProgressPercentage: 100, DurationSeconds: 200},
		{ID: "e4", UserID: "u2", StoryID: "s2", StoryTitle: "Zog", PlayedAt: at("2024-01-02T12:00:00Z"), DurationSeconds: 60},
	}
}

func seed(t *testing.T, db *DB) {
	t.Helper()
	n, err := db.InsertPlayEvents(context.Background(), sampleEvents())
	if err != nil {
		t.Fatalf("InsertPlayEvents() error = %v", err)
	}
	if n != 4 {
		t.Fatalf("inserted = %d, want 4", n)
	}
}

func TestListEvents(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			db := setupTestDB(t, driver)
			seed(t, db)
			ctx := context.Background()

			events, err := db.ListEvents(ctx, "u1", at("2024-01-01T00:00:00Z"), at("2024-01-31T00:00:00Z"))
			if err != nil {
				t.Fatalf("ListEvents() error = %v", err)
			}
			if len(events) != 3 {
				t.Fatalf("len(events) = %d, want 3", len(events))
			}
			wantIDs := []string{"e1", "e2", "e3"}
			for i, id := range wantIDs {
				if events[i].ID != id {
					t.Errorf("events[%d].ID = %s, want %s", i, events[i].ID, id)
				}
			}

			e3 := events[2]
			if !e3.PlayedAt.Equal(at("2024-01-03T04:00:00Z")) || e3.PlayedAt.Location() != time.UTC {
				t.Errorf("PlayedAt = %v, want 2024-01-03T04:00:00Z in UTC", e3.PlayedAt)
			}
			if !e3.Completed {
				t.Error("progress 100 should be stored as completed")
			}
			if e3.CoverImage != "https://img.example/zog.png" || e3.DurationSeconds != 200 || e3.ProgressPercentage != 100 {
				t.Errorf("e3 = %+v", e3)
			}
			if events[1].Completed {
				t.Error("e2 should not be completed")
			}
		})
	}
}

func TestListEventsBoundsInclusive(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			db := setupTestDB(t, driver)
			seed(t, db)

			events, err := db.ListEvents(context.Background(), "u1", at("2024-01-01T09:00:00Z"), at("2024-01-01T20:30:00Z"))
			if err != nil {
				t.Fatalf("ListEvents() error = %v", err)
			}
			if len(events) != 2 {
				t.Errorf("len(events) = %d, want both boundary events", len(events))
			}
		})
	}
}

func TestListEventsUnknownUser(t *testing.T) {
	db := setupTestDB(t, drivers[0])
	seed(t, db)

	events, err := db.ListEvents(context.Background(), "nobody", analytics.Epoch, at("2030-01-01T00:00:00Z"))
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Errorf("events = %v, want empty non-nil slice", events)
	}
}

func TestListActiveDays(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			db := setupTestDB(t, driver)
			seed(t, db)
			ctx := context.Background()

			days, err := db.ListActiveDays(ctx, "u1", time.UTC)
			if err != nil {
				t.Fatalf("ListActiveDays() error = %v", err)
			}
			want := []models.ActiveDay{
				{Date: models.NewDay(2024, time.January, 1), Count: 2},
				{Date: models.NewDay(2024, time.January, 3), Count: 1},
			}
			if len(days) != len(want) {
				t.Fatalf("days = %v, want %v", days, want)
			}
			for i := range want {
				if days[i] != want[i] {
					t.Errorf("days[%d] = %v, want %v", i, days[i], want[i])
				}
			}

			// e3 (04:00Z on Jan 3) is 23:00 on Jan 2 in New York.
			ny, err := time.LoadLocation("America/New_York")
			if err != nil {
				t.Fatalf("LoadLocation: %v", err)
			}
			days, err = db.ListActiveDays(ctx, "u1", ny)
			if err != nil {
				t.Fatalf("ListActiveDays(NY) error = %v", err)
			}
			wantNY := []models.ActiveDay{
				{Date: models.NewDay(2024, time.January, 1), Count: 2},
				{Date: models.NewDay(2024, time.January, 2), Count: 1},
			}
			if len(days) != len(wantNY) {
				t.Fatalf("NY days = %v, want %v", days, wantNY)
			}
			for i := range wantNY {
				if days[i] != wantNY[i] {
					t.Errorf("NY days[%d] = %v, want %v", i, days[i], wantNY[i])
				}
			}
		})
	}
}

func TestInsertPlayEvents(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			db := setupTestDB(t, driver)
			seed(t, db)
			ctx := context.Background()

			// Re-importing the same IDs writes nothing.
			n, err := db.InsertPlayEvents(ctx, sampleEvents())
			if err != nil {
				t.Fatalf("re-insert error = %v", err)
			}
			if n != 0 {
				t.Errorf("re-insert wrote %d rows, want 0", n)
			}

			fresh := []models.PlayEvent{{UserID: "u3", StoryID: "s9", PlayedAt: at("2024-02-01T10:00:00Z")}}
			n, err = db.InsertPlayEvents(ctx, fresh)
			if err != nil {
				t.Fatalf("insert without ID error = %v", err)
			}
			if n != 1 {
				t.Errorf("inserted = %d, want 1", n)
			}
			if fresh[0].ID == "" {
				t.Error("missing ID was not assigned")
			}

			count, err := db.CountPlayEvents(ctx, "")
			if err != nil {
				t.Fatalf("CountPlayEvents() error = %v", err)
			}
			if count != 5 {
				t.Errorf("total count = %d, want 5", count)
			}
			if count, _ := db.CountPlayEvents(ctx, "u1"); count != 3 {
				t.Errorf("u1 count = %d, want 3", count)
			}
		})
	}
}

func TestInsertPlayEventsRejectsInvalid(t *testing.T) {
	db := setupTestDB(t, drivers[0])
	ctx := context.Background()

	tests := []struct {
		name  string
		event models.PlayEvent
	}{
		{"missing user", models.PlayEvent{StoryID: "s1", PlayedAt: at("2024-01-01T00:00:00Z")}},
		{"missing story", models.PlayEvent{UserID: "u1", PlayedAt: at("2024-01-01T00:00:00Z")}},
		{"missing time", models.PlayEvent{UserID: "u1", StoryID: "s1"}},
		{"progress above 100", models.PlayEvent{UserID: "u1", StoryID: "s1", PlayedAt: at("2024-01-01T00:00:00Z"), ProgressPercentage: 150}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.InsertPlayEvents(ctx, []models.PlayEvent{tt.event})
			if !errors.Is(err, ErrInvalidEvent) {
				t.Errorf("err = %v, want ErrInvalidEvent", err)
			}
		})
	}

	// A rejected batch writes nothing.
	if count, _ := db.CountPlayEvents(ctx, ""); count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestListEventsCanceledContext(t *testing.T) {
	db := setupTestDB(t, drivers[0])
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := db.ListEvents(ctx, "u1", analytics.Epoch, time.Now()); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

// The store plugs straight into the engine.
func TestEngineOverStore(t *testing.T) {
	db := setupTestDB(t, drivers[0])
	seed(t, db)

	now := at("2024-01-03T12:00:00Z")
	engine := analytics.NewEngine(db, analytics.WithClock(analytics.FixedClock(now)))
	stats, err := engine.ListeningStats(context.Background(), "u1", "7days")
	if err != nil {
		t.Fatalf("ListeningStats() error = %v", err)
	}
	if stats.TotalPlays != 3 || stats.TotalDuration != 620 {
		t.Errorf("stats = %+v, want 3 plays and 620s", stats)
	}
	if stats.CurrentStreak != 1 || stats.LongestStreak != 1 {
		t.Errorf("streaks = %d/%d, want 1/1", stats.CurrentStreak, stats.LongestStreak)
	}
}
