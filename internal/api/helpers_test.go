// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/listenwell/internal/analytics"
	"github.com/tomtom215/listenwell/internal/config"
	"github.com/tomtom215/listenwell/internal/models"
)

// testNow is mid-afternoon on the day of the last fixture play.
var testNow = time.Date(2024, 1, 3, 15, 0, 0, 0, time.UTC)

// fakeSource serves fixed events and counts calls.
type fakeSource struct {
	events  []models.PlayEvent
	err     error
	pingErr error
	state   string
	calls   atomic.Int32
}

func (s *fakeSource) ListEvents(ctx context.Context, userID string, start, end time.Time) ([]models.PlayEvent, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	var out []models.PlayEvent
	for _, e := range s.events {
		if e.UserID == userID && !e.PlayedAt.Before(start) && !e.PlayedAt.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeSource) ListActiveDays(ctx context.Context, userID string, loc *time.Location) ([]models.ActiveDay, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	var mine []models.PlayEvent
	for _, e := range s.events {
		if e.UserID == userID {
			mine = append(mine, e)
		}
	}
	return analytics.ActiveDaysFromEvents(mine, loc), nil
}

func (s *fakeSource) Ping(ctx context.Context) error { return s.pingErr }

func (s *fakeSource) State() string {
	if s.state == "" {
		return "closed"
	}
	return s.state
}

func fixtureEvents() []models.PlayEvent {
	mk := func(id, story, title, at string, dur int64) models.PlayEvent {
		playedAt, err := time.Parse(time.RFC3339, at)
		if err != nil {
			panic(err)
		}
		return models.PlayEvent{
			ID: id, UserID: "u1", StoryID: story, StoryTitle: title,
			PlayedAt: playedAt, DurationSeconds: dur, ProgressPercentage: 50,
		}
	}
	return []models.PlayEvent{
		mk("e1", "moon", "Goodnight Moon", "2024-01-01T08:00:00Z", 60),
		mk("e2", "moon", "Goodnight Moon", "2024-01-01T19:30:00Z", 60),
		mk("e3", "stars", "Twinkle Stars", "2024-01-03T07:45:00Z", 60),
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverSQLite},
		Analytics: config.AnalyticsConfig{
			Timezone:             "UTC",
			DefaultRange:         "30days",
			CalendarDefaultRange: "year",
		},
		API: config.APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: config.SecurityConfig{
			UserHeader:        "X-User-ID",
			RateLimitDisabled: true,
			CORSOrigins:       []string{"*"},
		},
	}
}

type testServer struct {
	handler http.Handler
	source  *fakeSource
}

// newTestServer builds the full router over a fake source. mutate may adjust
// the config before the handler is created.
func newTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()

	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}
	src := &fakeSource{events: fixtureEvents()}
	engine := analytics.NewEngine(src, analytics.WithClock(analytics.FixedClock(testNow)))
	h := NewHandler(engine, src, cfg)
	t.Cleanup(h.Close)

	mw := NewChiMiddleware(ChiMiddlewareConfigFromSecurity(cfg.Security))
	return &testServer{handler: NewRouter(h, mw).SetupChi(), source: src}
}

// envelope mirrors models.APIResponse with Data left raw.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func (s *testServer) get(t *testing.T, path, user string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("GET %s: body is not an envelope: %v (%s)", path, err, rec.Body.String())
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader(env.Data))
	if err := dec.Decode(v); err != nil {
		t.Fatalf("decode data: %v (%s)", err, env.Data)
	}
}

var errDiskGone = errors.New("disk gone")
