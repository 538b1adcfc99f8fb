// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package models

import "time"

// Sentiment labels produced by the analyser.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// SentimentRecord is the analysed sentiment of one official post.
type SentimentRecord struct {
	BrandID      int       `json:"brandId"`
	Platform     Platform  `json:"platform"`
	Sentiment    string    `json:"sentiment"`
	Score        float64   `json:"score"`
	Subjectivity float64   `json:"subjectivity"`
	MentionCount int       `json:"mentionCount"`
	Text         string    `json:"text"`
	Date         time.Time `json:"date"`
}

// ExtractResult reports a forced sentiment cache rebuild.
type ExtractResult struct {
	Records    int       `json:"records"`
	Brands     []int     `json:"brands"`
	ComputedAt time.Time `json:"computedAt"`
}
