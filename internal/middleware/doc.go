// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

/*
Package middleware provides the infrastructure HTTP middleware shared by
every route.

Key Components:

  - RequestID: honours or generates X-Request-ID and threads it into the
    logging context
  - PrometheusMetrics: request counter, latency histogram and in-flight gauge
    labelled by chi route pattern
  - RequestLogger: one structured log line per completed request
  - SecurityHeaders: nosniff, frame denial, referrer policy, HSTS over TLS

All middleware use the func(http.Handler) http.Handler shape so they can be
passed straight to chi's Use.
*/
package middleware
