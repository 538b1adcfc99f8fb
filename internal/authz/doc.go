// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

// Package authz enforces role-based access control with Casbin.
//
// Subjects are roles taken from the session claims. Objects are request
// paths matched with keyMatch, and actions are derived from the HTTP method
// (read, write, delete). The model and default policy are embedded; a
// policy file configured via CASBIN_POLICY_PATH replaces the default.
//
// The admin role inherits every viewer permission.
package authz
