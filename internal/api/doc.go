// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

/*
Package api exposes the dashboard over HTTP using the chi router.

Every response uses the models.APIResponse envelope:

	{"status":"success","data":...,"metadata":{"timestamp":...,"query_time_ms":3}}
	{"status":"error","data":null,"error":{"code":"NOT_FOUND","message":"Brand not found"},...}

Route groups:

  - /api/health/*: public liveness and readiness probes
  - /api/register, /api/login: public, strictly rate limited
  - /api/logout, /api/auth/user: session management
  - /api/brands/*, /api/hashtags/*: dashboard reads, authenticated and cached
  - /api/user/onboarding: per-user onboarding gate
  - /metrics: Prometheus scrape endpoint

Read endpoints share a cache-first executor: parameters are normalised,
hashed with cache.GenerateKey, and served from the TTL cache when present.
Responses carry an FNV-1a ETag and honour If-None-Match.

Date filters accept dateRange presets (7days, 30days, 90days, all) or explicit
startDate and endDate in YYYY-MM-DD form, resolved against the configured
reference date rather than the wall clock.
*/
package api
