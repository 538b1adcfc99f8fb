// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

/*
Package models defines the data structures shared across SocialPulse.

Model categories:

 1. Dataset records:
    - Post: one social-media post parsed from a brand's CSV exports
    - Platform: the enumerated social network a post was published on
    - SentimentRecord: a post's analysed sentiment, cached on disk

 2. Derived analytics (computed per request, never stored):
    - PlatformSummary, TopicSentiment
    - SocialMetrics, FrequencyPoint, EngagementBucket, ContentItem
    - BrandHashtag, IndustryHashtag, DemographicBucket, ContentStrategy, AudienceOverlap

 3. Accounts and onboarding:
    - User, RegisterRequest, LoginRequest
    - OnboardingPreferences, OnboardingStatus

 4. API envelope:
    - APIResponse, Metadata, APIError

JSON field names follow the dashboard client's camelCase contract, except for
TopicSentiment which keeps the snake_case keys its chart component reads.
*/
package models
