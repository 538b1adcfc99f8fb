// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

// Package audit records security-relevant events: logins, lockouts,
// registrations and administrative data rebuilds.
//
// Events flow through a buffered channel so request handlers never block on
// storage:
//
//	Logger.Log() -> buffer (chan) -> Logger.Serve -> Store
//
// Logger.Serve runs under the supervisor tree. It drains the buffer and
// enforces the retention window on a ticker. The MemoryStore keeps a bounded
// window of recent events and answers filtered queries newest first.
//
// A nil *Logger is valid and discards events, so callers do not need to
// guard optional auditing.
package audit
