// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var opts globalOptions

	ctx := newCommandContext(&opts)

	rootCmd := &cobra.Command{
		Use:           "listenctl",
		Short:         "Listenwell listening analytics CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	flags.StringVarP(&opts.userID, "user", "u", "", "User ID to report on")
	flags.StringVar(&opts.timezone, "tz", "", "IANA timezone for day boundaries (default: analytics.timezone)")
	flags.StringVar(&opts.now, "now", "", "Pin the current time (RFC3339)")
	flags.BoolVar(&opts.json, "json", false, "Print JSON instead of tables")

	rootCmd.AddCommand(newStatsCommand(ctx))
	rootCmd.AddCommand(newCalendarCommand(ctx))
	rootCmd.AddCommand(newPatternsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))

	return rootCmd
}
