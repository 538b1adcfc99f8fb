// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

// Package analytics reduces a brand's posts into dashboard summaries.
//
// The reductions are pure functions over []models.Post. Service binds them to
// a PostSource and a reference date so HTTP handlers can ask for a brand,
// platform and date range and get a summary back. A source failure never
// reaches the caller: it is logged and the reduction runs over no posts.
package analytics
