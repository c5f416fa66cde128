// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.Caller {
		t.Error("Caller = true, want false")
	}
	if !cfg.Timestamp {
		t.Error("Timestamp = false, want true")
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Timestamp: true, Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("view", "stats").Msg("view computed")

	out := buf.String()
	for _, want := range []string{`"message":"view computed"`, `"level":"info"`, `"view":"stats"`, `"time":`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestInitLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})
	defer Init(DefaultConfig())

	Info().Msg("hidden")
	Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info event written at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn event missing: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{" fatal ", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	for _, l := range []string{"debug", "INFO", "warn", "error"} {
		if !ValidLevel(l) {
			t.Errorf("ValidLevel(%q) = false, want true", l)
		}
	}
	for _, l := range []string{"", "verbose", "loud"} {
		if ValidLevel(l) {
			t.Errorf("ValidLevel(%q) = true, want false", l)
		}
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	defer Init(DefaultConfig())

	l := WithComponent("database")
	l.Info().Msg("opened")

	if !strings.Contains(buf.String(), `"component":"database"`) {
		t.Errorf("output %q missing component", buf.String())
	}
}

func TestSanitizeValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "30days", "30days"},
		{"newline", "a\nb", `a\x0ab`},
		{"carriage return", "x\ry", `x\x0dy`},
		{"delete", "z\x7f", `z\x7f`},
		{"unicode kept", "Gruffalo ünïcode", "Gruffalo ünïcode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeValue(tt.input); got != tt.want {
				t.Errorf("SanitizeValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	long := strings.Repeat("a", maxLoggedValue+10)
	got := SanitizeValue(long)
	if want := strings.Repeat("a", maxLoggedValue) + "..."; got != want {
		t.Errorf("SanitizeValue(long) has length %d, want %d", len(got), len(want))
	}
}
