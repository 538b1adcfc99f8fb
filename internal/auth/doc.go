// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

/*
Package auth provides user accounts, session tokens, and the authentication
middleware that guards the dashboard API.

Key Components:

  - JWTManager: HS256 token generation and validation
  - UserStore: bcrypt-hashed accounts persisted in a key-value store
  - Lockout: failed-login tracking with exponential backoff
  - Middleware: cookie or bearer token authentication for chi routes

Authentication Modes:

The server supports two modes (configured via AUTH_MODE):

 1. jwt (default): every protected request must carry a valid token, either
    in the HTTP-only "token" cookie set at login or in an
    "Authorization: Bearer" header.
 2. none: requests are attributed to a local development administrator.
    Refused when ENVIRONMENT=production.

Account Storage:

Users live in the same key-value store as onboarding state. Two keys are
written per account:

	user:<username>   JSON record including the bcrypt hash
	user_id:<id>      username, for lookups by token subject

Usernames are case-insensitive; the lowercase form is used in keys.
*/
package auth
