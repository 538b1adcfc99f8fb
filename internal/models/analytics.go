// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package models

import "time"

// PlatformSummary is the per-platform reduction of a brand's posts.
// EngagementRate is (TotalLikes+TotalComments)/TotalReach*100, or 0 when TotalReach is 0.
type PlatformSummary struct {
	Platform       Platform `json:"platform"`
	PostCount      int      `json:"postCount"`
	TotalLikes     int64    `json:"totalLikes"`
	TotalComments  int64    `json:"totalComments"`
	TotalReach     int64    `json:"totalReach"`
	EngagementRate float64  `json:"engagementRate"`
}

// TopicSentiment groups posts by detected topic.
type TopicSentiment struct {
	Topic          string `json:"topic"`
	MentionCount   int    `json:"mention_count"`
	SentimentScore int    `json:"sentiment_score"`
}

// SocialMetrics are the KPI-card totals for a brand.
type SocialMetrics struct {
	Platform        string `json:"platform"`
	Mentions        int    `json:"mentions"`
	MentionCount    int    `json:"mentionCount"`
	TotalPosts      int    `json:"totalPosts"`
	Reach           int64  `json:"reach"`
	Likes           int64  `json:"likes"`
	Comments        int64  `json:"comments"`
	Shares          int64  `json:"shares"`
	EngagementScore string `json:"engagementScore"`
}

// FrequencyPoint is the number of posts published on one calendar day.
type FrequencyPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// EngagementBucket totals engagement for one time bucket of a chart.
type EngagementBucket struct {
	Label    string `json:"week"`
	Likes    int64  `json:"likes"`
	Comments int64  `json:"comments"`
	Shares   int64  `json:"shares"`
	Posts    int    `json:"posts"`
}

// ContentItem is one entry of the top-content table.
type ContentItem struct {
	ID             int       `json:"id"`
	BrandID        int       `json:"brandId"`
	Platform       Platform  `json:"platform"`
	Content        string    `json:"content"`
	PostType       string    `json:"postType"`
	PublishedAt    time.Time `json:"publishedAt"`
	Views          int64     `json:"views"`
	Likes          int64     `json:"likes"`
	Comments       int64     `json:"comments"`
	Shares         int64     `json:"shares"`
	EngagementRate float64   `json:"engagementRate"`
}

// BrandHashtag is a hashtag's usage count within one brand's posts.
type BrandHashtag struct {
	ID         int    `json:"id"`
	BrandID    int    `json:"brandId"`
	Platform   string `json:"platform"`
	Hashtag    string `json:"hashtag"`
	UsageCount int    `json:"usageCount"`
}

// IndustryHashtag is a hashtag's usage count across every brand's hashtag exports.
type IndustryHashtag struct {
	ID             int     `json:"id"`
	Hashtag        string  `json:"hashtag"`
	UsageCount     int     `json:"usageCount"`
	EngagementRate float64 `json:"engagementRate"`
}

// HashtagSuggestion is offered during onboarding.
type HashtagSuggestion struct {
	Tag        string `json:"tag"`
	UsageCount int    `json:"usageCount,omitempty"`
}

// DemographicBucket is an estimated audience size for one age band.
type DemographicBucket struct {
	Age   string `json:"age"`
	Count int    `json:"count"`
}

// ContentTypeShare is one slice of the content-type distribution.
type ContentTypeShare struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// ContentStrategy summarises posting cadence and format mix.
type ContentStrategy struct {
	PostsPerDay  float64            `json:"postsPerDay"`
	TotalPosts   int                `json:"totalPosts"`
	ContentTypes []ContentTypeShare `json:"contentTypes"`
	DateRange    RangeEcho          `json:"dateRange"`
}

// RangeEcho reports the window an analytics result was computed over. A nil
// side is open.
type RangeEcho struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// AudienceOverlap compares the hashtag and mention vocabularies of two brands.
type AudienceOverlap struct {
	OverlapPercentage int      `json:"overlapPercentage"`
	CommonHashtags    []string `json:"commonHashtags"`
}
