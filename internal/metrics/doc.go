// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

/*
Package metrics provides Prometheus instrumentation for the dashboard server.

All collectors are registered on the default registry through promauto and are
exposed at /metrics in Prometheus text format:

	curl http://localhost:5000/metrics

# Available Metrics

HTTP Metrics:
  - http_requests_total: Total HTTP requests (counter)
    Labels: method, endpoint, status
  - http_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - http_requests_in_flight: Active requests (gauge)
  - api_rate_limit_hits_total: Requests rejected by the rate limiter (counter)

Dataset Metrics:
  - dataset_rows_loaded_total: Rows read from CSV exports (counter)
    Labels: platform, source
  - dataset_file_errors_total: Exports skipped (counter)
    Labels: reason ("missing", "read")
  - aggregation_duration_seconds: Time spent in analytics reductions (histogram)
    Labels: operation

Sentiment Metrics:
  - sentiment_requests_total: Calls to the sentiment service (counter)
    Labels: outcome ("success", "fallback", "rejected")
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
    Labels: name
  - circuit_breaker_transitions_total: State changes (counter)
    Labels: name, from, to
  - sentiment_cache_refreshes_total: Sentiment cache rebuilds (counter)
    Labels: result

Cache, Auth and Onboarding Metrics:
  - cache_hits_total / cache_misses_total (counter)
    Labels: cache
  - auth_attempts_total (counter)
    Labels: result
  - onboarding_transitions_total (counter)
    Labels: transition

# Usage

	start := time.Now()
	summaries := analytics.AggregateByPlatform(posts, "")
	metrics.ObserveAggregation("aggregate_by_platform", time.Since(start))

# Thread Safety

All functions are safe for concurrent use; the underlying Prometheus
collectors handle their own synchronization.
*/
package metrics
