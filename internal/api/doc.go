// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

/*
Package api serves the listening analytics engine over HTTP.

Routes (chi):

	GET /api/v1/health                 source ping, breaker state, uptime
	GET /api/v1/health/live            liveness probe
	GET /api/v1/health/ready           readiness probe (503 while the source is down)
	GET /api/v1/listening/stats        ?range=&tz=
	GET /api/v1/listening/history      ?range=&q=&limit=&offset=&tz=
	GET /api/v1/listening/calendar     ?range=&tz=
	GET /api/v1/listening/patterns     ?range=&tz=
	GET /api/v1/listening/dashboard    ?range=&calendar_range=&tz=
	GET /metrics                       Prometheus exposition

The user is identified by the configured header (X-User-ID by default) which
the upstream gateway sets after authenticating the caller. A request without
it gets zeroed results rather than 401.

Every JSON response uses the models.APIResponse envelope. Error codes:

	INVALID_RANGE        400  unknown range tag, or one outside the view's scope
	VALIDATION_ERROR     400  malformed tz, limit or offset
	SOURCE_UNAVAILABLE   503  play event store unreachable or breaker open
	RATE_LIMIT_EXCEEDED  429
	INTERNAL_ERROR       500

When api.cache_ttl is positive, view responses are cached per user and
parameters and marked with metadata.cached.
*/
package api
