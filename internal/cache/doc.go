// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

// Package cache provides the in-memory TTL cache that fronts the dashboard
// read endpoints.
//
// Entries expire lazily on Get and eagerly when the supervised janitor
// (Serve) sweeps. Hits and misses are exported as Prometheus counters
// labelled by cache name. Keys are built with GenerateKey so equivalent
// parameter sets share an entry.
package cache
