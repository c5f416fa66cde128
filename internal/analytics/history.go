// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package analytics

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/tomtom215/listenwell/internal/models"
)

// MaxSearchLength bounds the search query; longer queries are truncated.
const MaxSearchLength = 200

// DefaultHistoryLimit applies when a HistoryQuery has no positive Limit.
const DefaultHistoryLimit = 20

// HistoryQuery parameterizes the play history request.
type HistoryQuery struct {
	Range  string
	Search string
	Limit  int
	Offset int
}

// normalizeSearch trims the query, caps it at MaxSearchLength runes and case folds it.
func normalizeSearch(q string) string {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) > MaxSearchLength {
		q = string([]rune(q)[:MaxSearchLength])
	}
	return cases.Fold().String(q)
}

// FilterHistory matches, orders and paginates events for the history list.
// It returns the page and the number of matching events before pagination.
//
// Events are ordered by PlayedAt descending, then ID, so pages are stable.
func FilterHistory(events []models.PlayEvent, search string, limit, offset int) ([]models.PlayHistoryEntry, int) {
	needle := normalizeSearch(search)
	folder := cases.Fold()

	matched := make([]*models.PlayEvent, 0, len(events))
	for i := range events {
		e := &events[i]
		if needle != "" && !strings.Contains(folder.String(e.StoryTitle), needle) {
			continue
		}
		matched = append(matched, e)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.PlayedAt.Equal(b.PlayedAt) {
			return a.PlayedAt.After(b.PlayedAt)
		}
		return a.ID < b.ID
	})

	total := len(matched)
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []models.PlayHistoryEntry{}, total
	}
	// offset+limit can overflow for huge limits.
	end := offset + min(limit, total-offset)

	page := make([]models.PlayHistoryEntry, 0, end-offset)
	for _, e := range matched[offset:end] {
		page = append(page, models.HistoryEntryFromEvent(e))
	}
	return page, total
}
