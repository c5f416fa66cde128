// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/listenwell/internal/logging"
	"github.com/tomtom215/listenwell/internal/metrics"
	"github.com/tomtom215/listenwell/internal/models"
)

// Source is the read side of the play event store.
//
// ListEvents returns the user's events with PlayedAt in [start, end], in any
// order. ListActiveDays returns every day the user was active, bucketed in
// loc and not limited to any window. Implementations must be safe for
// concurrent use.
type Source interface {
	ListEvents(ctx context.Context, userID string, start, end time.Time) ([]models.PlayEvent, error)
	ListActiveDays(ctx context.Context, userID string, loc *time.Location) ([]models.ActiveDay, error)
}

// Engine answers the four listening-analytics requests plus the combined
// dashboard view. It holds no mutable state: every call reads the clock once,
// queries the source and computes its result from scratch.
type Engine struct {
	source Source
	clock  Clock
	loc    *time.Location
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the source of "now".
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithLocation sets the timezone whose midnight defines a day.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// NewEngine creates an engine over source. Defaults: system clock, UTC.
func NewEngine(source Source, opts ...Option) *Engine {
	e := &Engine{
		source: source,
		clock:  SystemClock{},
		loc:    time.UTC,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// In returns an engine sharing e's source and clock that buckets days in loc.
// A nil loc returns e.
func (e *Engine) In(loc *time.Location) *Engine {
	if loc == nil {
		return e
	}
	cp := *e
	cp.loc = loc
	return &cp
}

// Location returns the engine's timezone.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// ListeningStats computes the totals card for userID over rangeTag. Streaks
// come from the user's full active-day history, not just the window.
func (e *Engine) ListeningStats(ctx context.Context, userID, rangeTag string) (*models.ListeningStats, error) {
	r, err := ParseRange(rangeTag, ScopeActivity)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	w := ResolveWindow(r, e.clock.Now(), e.loc)

	events, err := e.listEvents(ctx, userID, w)
	if err != nil {
		return nil, err
	}
	active, err := e.listActiveDays(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := e.computeStats(events, active, w)
	e.observe(ctx, "stats", userID, stats.Window, len(events), start)
	return &stats, nil
}

// PlayHistory returns one page of the user's plays in the window, newest first.
func (e *Engine) PlayHistory(ctx context.Context, userID string, q HistoryQuery) (*models.PlayHistory, error) {
	r, err := ParseRange(q.Range, ScopeActivity)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	w := ResolveWindow(r, e.clock.Now(), e.loc)

	events, err := e.listEvents(ctx, userID, w)
	if err != nil {
		return nil, err
	}
	events = inWindow(events, w)

	page, count := FilterHistory(events, q.Search, q.Limit, q.Offset)
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	history := &models.PlayHistory{
		History: page,
		Count:   count,
		Limit:   limit,
		Offset:  max(0, q.Offset),
		Window:  WithEarliest(w, earliestDay(events, e.loc)),
	}
	e.observe(ctx, "history", userID, history.Window, len(events), start)
	return history, nil
}

// CalendarData computes the zero-filled heatmap for userID over rangeTag.
func (e *Engine) CalendarData(ctx context.Context, userID, rangeTag string) (*models.CalendarData, error) {
	r, err := ParseRange(rangeTag, ScopeCalendar)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	w := ResolveWindow(r, e.clock.Now(), e.loc)

	events, err := e.listEvents(ctx, userID, w)
	if err != nil {
		return nil, err
	}
	active, err := e.listActiveDays(ctx, userID)
	if err != nil {
		return nil, err
	}

	cal := e.computeCalendar(events, active, w)
	e.observe(ctx, "calendar", userID, cal.Window, len(events), start)
	return &cal, nil
}

// ListeningPatterns computes the hour-of-day and weekday histograms.
func (e *Engine) ListeningPatterns(ctx context.Context, userID, rangeTag string) (*models.ListeningPatterns, error) {
	r, err := ParseRange(rangeTag, ScopeActivity)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	w := ResolveWindow(r, e.clock.Now(), e.loc)

	events, err := e.listEvents(ctx, userID, w)
	if err != nil {
		return nil, err
	}

	p := e.computePatterns(events, w)
	e.observe(ctx, "patterns", userID, p.Window, len(events), start)
	return &p, nil
}

// Dashboard computes stats, calendar and patterns from one event fetch and
// one active-day fetch. The three views are independent and run concurrently.
// All share the same "now".
func (e *Engine) Dashboard(ctx context.Context, userID, rangeTag, calendarRangeTag string) (*models.Dashboard, error) {
	r, err := ParseRange(rangeTag, ScopeActivity)
	if err != nil {
		return nil, err
	}
	calR, err := ParseRange(calendarRangeTag, ScopeCalendar)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	now := e.clock.Now()
	w := ResolveWindow(r, now, e.loc)
	calW := ResolveWindow(calR, now, e.loc)

	union := w
	if calW.Start.Before(union.Start) {
		union = calW
	}

	var events []models.PlayEvent
	var active []models.ActiveDay
	fetch, fctx := errgroup.WithContext(ctx)
	fetch.Go(func() error {
		var err error
		events, err = e.listEvents(fctx, userID, union)
		return err
	})
	fetch.Go(func() error {
		var err error
		active, err = e.listActiveDays(fctx, userID)
		return err
	})
	if err := fetch.Wait(); err != nil {
		return nil, err
	}

	var d models.Dashboard
	var compute errgroup.Group
	compute.Go(func() error {
		s := e.computeStats(events, active, w)
		d.Stats = &s
		return nil
	})
	compute.Go(func() error {
		c := e.computeCalendar(events, active, calW)
		d.Calendar = &c
		return nil
	})
	compute.Go(func() error {
		p := e.computePatterns(events, w)
		d.Patterns = &p
		return nil
	})
	if err := compute.Wait(); err != nil {
		return nil, err
	}

	e.observe(ctx, "dashboard", userID, union, len(events), start)
	return &d, nil
}

func (e *Engine) computeStats(events []models.PlayEvent, active []models.ActiveDay, w models.Window) models.ListeningStats {
	events = inWindow(events, w)
	w = WithEarliest(w, earliestDay(events, e.loc))
	stats := AggregateStats(events, w)
	streak := CalculateStreak(active, w.EndDay)
	stats.CurrentStreak = streak.Current
	stats.LongestStreak = streak.Longest
	return stats
}

func (e *Engine) computeCalendar(events []models.PlayEvent, active []models.ActiveDay, w models.Window) models.CalendarData {
	buckets := BucketEvents(events, w, e.loc)
	earliest := buckets.Earliest()
	w = WithEarliest(w, earliest)
	filled := []models.DayBucket{}
	// An "all" calendar without events has no days at all.
	if w.Range != string(RangeAll) || !earliest.IsZero() {
		filled = buckets.Fill(w.StartDay, w.EndDay)
	}
	cal := BuildCalendar(filled)
	cal.Streak = CalculateStreak(active, w.EndDay)
	cal.Window = w
	return cal
}

func (e *Engine) computePatterns(events []models.PlayEvent, w models.Window) models.ListeningPatterns {
	events = inWindow(events, w)
	p := AnalyzePatterns(events, e.loc)
	p.Window = WithEarliest(w, earliestDay(events, e.loc))
	return p
}

// listEvents queries the source; an absent user has no events.
func (e *Engine) listEvents(ctx context.Context, userID string, w models.Window) ([]models.PlayEvent, error) {
	if userID == "" {
		return nil, nil
	}
	events, err := e.source.ListEvents(ctx, userID, w.Start, w.End)
	if err != nil {
		return nil, classifySourceError("list_events", err)
	}
	return events, nil
}

// listActiveDays queries the source; an absent user has no history.
func (e *Engine) listActiveDays(ctx context.Context, userID string) ([]models.ActiveDay, error) {
	if userID == "" {
		return nil, nil
	}
	days, err := e.source.ListActiveDays(ctx, userID, e.loc)
	if err != nil {
		return nil, classifySourceError("list_active_days", err)
	}
	return days, nil
}

func (e *Engine) observe(ctx context.Context, view, userID string, w models.Window, events int, start time.Time) {
	elapsed := time.Since(start)
	metrics.RecordAnalyticsView(view, elapsed, events)
	logging.Ctx(ctx).Debug().
		Str("view", view).
		Str("user_id", logging.SanitizeValue(userID)).
		Str("range", w.Range).
		Stringer("start_day", w.StartDay).
		Stringer("end_day", w.EndDay).
		Str("timezone", w.Timezone).
		Int("events", events).
		Dur("elapsed", elapsed).
		Msg("Analytics view computed")
}

// inWindow returns the events inside w. Sources return events in their
// requested bounds, but the dashboard shares one fetch across windows.
func inWindow(events []models.PlayEvent, w models.Window) []models.PlayEvent {
	out := events[:0:0]
	for i := range events {
		if Contains(w, events[i].PlayedAt) {
			out = append(out, events[i])
		}
	}
	return out
}

func earliestDay(events []models.PlayEvent, loc *time.Location) models.Day {
	var earliest models.Day
	for i := range events {
		d := models.DayOf(events[i].PlayedAt, loc)
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
	}
	return earliest
}
