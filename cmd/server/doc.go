// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

/*
Package main is the entry point for the SocialPulse server.

SocialPulse serves a social-media analytics dashboard: per-brand engagement
summaries, key topics by sentiment, hashtag and content rankings, and the
per-user onboarding gate, all computed from CSV exports on disk.

# Application Architecture

	RootSupervisor ("socialpulse")
	├── DataSupervisor ("data-layer")
	│   ├── Sentiment refresh loop (if SENTIMENT_ENABLED)
	│   └── Response cache janitor
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Key-value store: in-memory or BadgerDB, shared by users and onboarding
 4. Authentication: JWT sessions or auth mode none, Casbin RBAC
 5. Analytics: CSV loader, sentiment client and cache
 6. Supervisor tree and HTTP server

# Example Usage

Development, no login:

	export AUTH_MODE=none
	export DATA_DIR=./public
	./socialpulse

Production:

	export JWT_SECRET=$(openssl rand -base64 32)
	export ADMIN_USERNAME=admin
	export ADMIN_PASSWORD=secure-password
	export STORAGE_BACKEND=badger
	export STORAGE_PATH=/data/socialpulse
	./socialpulse

SIGINT and SIGTERM stop the tree; the HTTP server drains in-flight requests
for up to ten seconds.
*/
package main
