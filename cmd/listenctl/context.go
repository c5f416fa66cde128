// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/listenwell/internal/analytics"
	"github.com/tomtom215/listenwell/internal/config"
	"github.com/tomtom215/listenwell/internal/database"
	"github.com/tomtom215/listenwell/internal/logging"
)

type globalOptions struct {
	configPath string
	userID     string
	timezone   string
	now        string
	json       bool
}

type commandContext struct {
	opts *globalOptions

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(opts *globalOptions) *commandContext {
	return &commandContext{opts: opts}
}

// ensureConfig loads configuration once: the --config file when given, else
// the usual search path. The CLI logs warnings and up only.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var cfg *config.Config
		var err error
		if path := strings.TrimSpace(c.opts.configPath); path != "" {
			cfg, err = config.LoadFile(path)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			c.configErr = err
			return
		}
		logging.Init(logging.Config{Level: "warn", Format: "console"})
		c.config = cfg
	})
	return c.config, c.configErr
}

// withStore opens the configured store for the duration of fn.
func (c *commandContext) withStore(fn func(*database.DB) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing database")
		}
	}()
	return fn(db)
}

// withEngine builds an engine over the store honoring --tz and --now.
func (c *commandContext) withEngine(fn func(*analytics.Engine) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	loc, err := cfg.Analytics.Location()
	if err != nil {
		return err
	}
	if tz := strings.TrimSpace(c.opts.timezone); tz != "" {
		if loc, err = time.LoadLocation(tz); err != nil {
			return fmt.Errorf("--tz: %w", err)
		}
	}

	clock, err := c.clock()
	if err != nil {
		return err
	}

	return c.withStore(func(db *database.DB) error {
		return fn(analytics.NewEngine(db, analytics.WithLocation(loc), analytics.WithClock(clock)))
	})
}

func (c *commandContext) clock() (analytics.Clock, error) {
	raw := strings.TrimSpace(c.opts.now)
	if raw == "" {
		return analytics.SystemClock{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("--now must be RFC3339: %w", err)
	}
	return analytics.FixedClock(t), nil
}

// now is the instant relative times are printed against.
func (c *commandContext) nowTime() time.Time {
	if clock, err := c.clock(); err == nil {
		return clock.Now()
	}
	return time.Now()
}

// rangeOr returns tag, or def when tag is blank.
func rangeOr(tag, def string) string {
	if strings.TrimSpace(tag) == "" {
		return def
	}
	return strings.TrimSpace(tag)
}
