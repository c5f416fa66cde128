// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

/*
Package services provides suture.Service wrappers for Listenwell components.

Each wrapper implements suture's Serve(ctx) error, returns when ctx is
canceled, and identifies itself through fmt.Stringer for supervisor logs.

  - HTTPServerService: runs an *http.Server and shuts it down gracefully
  - SourceMonitorService: pings the play event source on an interval and
    publishes listenwell_source_up
*/
package services
