// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

// Package logging provides the zerolog-based structured logger shared by the
// Listenwell server, the listenctl CLI and the analytics engine.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("driver", "duckdb").Msg("Play event source ready")
//	logging.Ctx(ctx).Debug().Str("view", "calendar").Int("events", n).Msg("View computed")
//
// Ctx adds request_id and correlation_id when the HTTP layer placed them on
// the context, so every engine log line of one request can be joined.
//
// # Output
//
// JSON by default; console output (logging.format=console) is meant for local
// development and the CLI. Always finish an event with Msg or Send, otherwise
// nothing is written.
//
// # slog
//
// NewSlogLogger returns a *slog.Logger backed by the global zerolog logger so
// suture's sutureslog handler reports supervisor events in the same stream.
//
// # Untrusted values
//
// Values taken from requests (search queries, range tags, user IDs) go
// through SanitizeValue before being logged.
package logging
