// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/listenwell/internal/analytics"
	"github.com/tomtom215/listenwell/internal/models"
)

var errNoUser = errors.New("--user is required")

// viewRun wraps a view command: it checks --user and opens the engine.
func (c *commandContext) viewRun(fn func(cmd *cobra.Command, engine *analytics.Engine, userID string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		userID := strings.TrimSpace(c.opts.userID)
		if userID == "" {
			return errNoUser
		}
		return c.withEngine(func(engine *analytics.Engine) error {
			return fn(cmd, engine, userID)
		})
	}
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var rangeTag string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show totals, average per day, most played story and streaks",
		RunE: ctx.viewRun(func(cmd *cobra.Command, engine *analytics.Engine, userID string) error {
			stats, err := engine.ListeningStats(cmd.Context(), userID, rangeOr(rangeTag, ctx.config.Analytics.DefaultRange))
			if err != nil {
				return err
			}
			if ctx.opts.json {
				return writeJSON(cmd, stats)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderStats(stats, ctx))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&rangeTag, "range", "r", "", "7days, 30days, 90days or all")
	return cmd
}

func renderStats(s *models.ListeningStats, ctx *commandContext) string {
	mostPlayed := "-"
	if s.MostPlayedStory != nil {
		mostPlayed = fmt.Sprintf("%s (%s plays, last %s)",
			s.MostPlayedStory.Title,
			itoa(s.MostPlayedStory.PlayCount),
			formatRelative(s.MostPlayedStory.LastPlayed, ctx.nowTime()))
	}
	rows := [][]string{
		{"Window", windowLabel(s.Window)},
		{"Total plays", itoa(s.TotalPlays)},
		{"Completed plays", itoa(s.CompletedPlays)},
		{"Listening time", formatSeconds(s.TotalDuration)},
		{"Average per day", strconv.FormatFloat(s.AveragePerDay, 'f', 2, 64)},
		{"Active days", itoa(s.ActiveDays)},
		{"Most played", mostPlayed},
		{"Current streak", formatDays(s.CurrentStreak)},
		{"Longest streak", formatDays(s.LongestStreak)},
	}
	return renderTable([]string{"Metric", "Value"}, rows, nil, nil)
}

func newCalendarCommand(ctx *commandContext) *cobra.Command {
	var rangeTag string
	var allDays bool

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show plays per day for the heatmap window",
		RunE: ctx.viewRun(func(cmd *cobra.Command, engine *analytics.Engine, userID string) error {
			cal, err := engine.CalendarData(cmd.Context(), userID, rangeOr(rangeTag, ctx.config.Analytics.CalendarDefaultRange))
			if err != nil {
				return err
			}
			if ctx.opts.json {
				return writeJSON(cmd, cal)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCalendar(cal, allDays))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&rangeTag, "range", "r", "", "7days, 30days, 90days, 6months, year or all")
	cmd.Flags().BoolVar(&allDays, "all-days", false, "Include days without listening")
	return cmd
}

func renderCalendar(cal *models.CalendarData, allDays bool) string {
	rows := make([][]string, 0, len(cal.Days))
	for _, d := range cal.Days {
		if d.Count == 0 && !allDays {
			continue
		}
		rows = append(rows, []string{
			d.Date.String(),
			d.Date.Weekday().String()[:3],
			itoa(d.Count),
			formatSeconds(d.DurationSeconds),
			bar(d.Count, cal.MaxCount, 20),
		})
	}
	footer := []string{
		windowLabel(cal.Window),
		"",
		itoa(cal.TotalCount),
		fmt.Sprintf("%s active", itoa(cal.ActiveDays)),
		fmt.Sprintf("streak %d / best %d", cal.Streak.Current, cal.Streak.Longest),
	}
	return renderTable(
		[]string{"Date", "Day", "Plays", "Time", ""},
		rows, footer,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

func newPatternsCommand(ctx *commandContext) *cobra.Command {
	var rangeTag string

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Show plays by hour of day and day of week",
		RunE: ctx.viewRun(func(cmd *cobra.Command, engine *analytics.Engine, userID string) error {
			patterns, err := engine.ListeningPatterns(cmd.Context(), userID, rangeOr(rangeTag, ctx.config.Analytics.DefaultRange))
			if err != nil {
				return err
			}
			if ctx.opts.json {
				return writeJSON(cmd, patterns)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPatterns(patterns))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&rangeTag, "range", "r", "", "7days, 30days, 90days or all")
	return cmd
}

func renderPatterns(p *models.ListeningPatterns) string {
	hourPeak, dayPeak := 0, 0
	for _, h := range p.HourlyDistribution {
		hourPeak = max(hourPeak, h.Count)
	}
	for _, d := range p.WeekdayDistribution {
		dayPeak = max(dayPeak, d.Count)
	}

	hours := make([][]string, 0, len(p.HourlyDistribution))
	for _, h := range p.HourlyDistribution {
		hours = append(hours, []string{fmt.Sprintf("%02d:00", h.Hour), itoa(h.Count), bar(h.Count, hourPeak, 30)})
	}
	days := make([][]string, 0, len(p.WeekdayDistribution))
	for _, d := range p.WeekdayDistribution {
		days = append(days, []string{d.Day, itoa(d.Count), bar(d.Count, dayPeak, 30)})
	}

	peak := "no listening in " + windowLabel(p.Window)
	if p.PeakHour != nil && p.PeakDay != nil {
		peak = fmt.Sprintf("peak: %s around %02d:00 (%s plays in %s)", *p.PeakDay, *p.PeakHour, itoa(p.TotalEvents), windowLabel(p.Window))
	}

	aligns := []columnAlignment{alignLeft, alignRight, alignLeft}
	return renderTable([]string{"Hour", "Plays", ""}, hours, nil, aligns) + "\n" +
		renderTable([]string{"Day", "Plays", ""}, days, nil, aligns) + "\n" + peak
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var rangeTag, query string
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List plays, newest first",
		RunE: ctx.viewRun(func(cmd *cobra.Command, engine *analytics.Engine, userID string) error {
			if limit < 0 || offset < 0 {
				return errors.New("--limit and --offset must not be negative")
			}
			if limit == 0 {
				limit = ctx.config.API.DefaultPageSize
			}
			if maxSize := ctx.config.API.MaxPageSize; maxSize > 0 && limit > maxSize {
				limit = maxSize
			}
			history, err := engine.PlayHistory(cmd.Context(), userID, analytics.HistoryQuery{
				Range:  rangeOr(rangeTag, ctx.config.Analytics.DefaultRange),
				Search: query,
				Limit:  limit,
				Offset: offset,
			})
			if err != nil {
				return err
			}
			if ctx.opts.json {
				return writeJSON(cmd, history)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHistory(history, ctx))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&rangeTag, "range", "r", "", "7days, 30days, 90days or all")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive story title search")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Page size (default: api.default_page_size)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Entries to skip")
	return cmd
}

func renderHistory(h *models.PlayHistory, ctx *commandContext) string {
	now := ctx.nowTime()
	rows := make([][]string, 0, len(h.History))
	for _, e := range h.History {
		rows = append(rows, []string{
			e.PlayedAt.In(now.Location()).Format("2006-01-02 15:04"),
			formatRelative(e.PlayedAt, now),
			e.StoryTitle,
			strconv.Itoa(e.ProgressPercentage) + "%",
			formatSeconds(e.DurationSeconds),
			yesNo(e.Completed),
		})
	}
	footer := []string{
		fmt.Sprintf("%s-%s of %s", itoa(min(h.Offset+1, h.Count)), itoa(h.Offset+len(h.History)), itoa(h.Count)),
	}
	return renderTable(
		[]string{"Played", "", "Story", "Progress", "Time", "Done"},
		rows, footer,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

func windowLabel(w models.Window) string {
	if w.StartDay.IsZero() {
		return w.Range
	}
	return fmt.Sprintf("%s (%s to %s)", w.Range, w.StartDay, w.EndDay)
}
