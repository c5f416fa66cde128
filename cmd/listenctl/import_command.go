// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/listenwell/internal/database"
	"github.com/tomtom215/listenwell/internal/models"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Load play events from a JSON array into the store",
		Long: `Reads a JSON array of play events and inserts them into the configured store.
Events without an id get a generated one. Events whose id is already stored
are skipped, so re-running an import is safe.
Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := readPlayEvents(cmd, args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(db *database.DB) error {
				inserted, err := db.InsertPlayEvents(cmd.Context(), events)
				if err != nil {
					return fmt.Errorf("import failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s of %s play events (%s duplicates skipped)\n",
					itoa(inserted), itoa(len(events)), itoa(len(events)-inserted))
				return nil
			})
		},
	}
}

func readPlayEvents(cmd *cobra.Command, source string) ([]models.PlayEvent, error) {
	var r io.Reader
	if strings.TrimSpace(source) == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var events []models.PlayEvent
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	return events, nil
}
