// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

/*
Package cache provides the optional API response cache.

Analytics views are pure functions of (user, range, timezone, now), so a
short TTL bounds how stale a cached view can be. The API enables the cache
only when api.cache_ttl is positive; it is off by default.

Keys come from GenerateKey, which hashes the JSON encoding of the request
parameters (goccy/go-json). Do reports hits and misses per view to the
listenwell_cache_hits_total and listenwell_cache_misses_total counters.
*/
package cache
