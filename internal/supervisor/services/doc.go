// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

/*
Package services provides suture.Service wrappers for SocialPulse components.

Each wrapper translates a component's lifecycle into suture's context-aware
Serve pattern:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts the blocking ListenAndServe call to Serve
  - Drains connections for a configurable timeout

Sentiment Refresh (RefreshService):
  - Periodically calls RefreshIfOutdated on the sentiment analyzer
  - Rebuilds the sentiment cache once the CSV exports are newer than it
  - Runs an optional hook after a rebuild (the API clears its response cache)
  - Refresh failures are logged and retried on the next tick, never returned

Every wrapper implements fmt.Stringer so suture's event hook can name it.
*/
package services
