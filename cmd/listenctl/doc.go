// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

/*
Command listenctl computes listening analytics from the terminal against the
same store the server uses, and imports play events into it.

	listenctl [--config path] stats    --user ID [--range 30days] [--tz Zone] [--json]
	listenctl [--config path] calendar --user ID [--range year] [--all-days]
	listenctl [--config path] patterns --user ID [--range all]
	listenctl [--config path] history  --user ID [--query moon] [--limit 20] [--offset 0]
	listenctl [--config path] import   events.json

--now pins the clock (RFC3339) so output is reproducible. import reads a JSON
array of play events ("-" for stdin); events without an id get a UUID and
re-imported ids are skipped.
*/
package main
