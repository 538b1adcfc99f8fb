// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

// Package sentiment scores post text through a TextBlob HTTP service and keeps
// the per-post results in an on-disk cache.
//
// The service is optional. Every call that cannot reach it, because the
// breaker is open, the rate limiter's wait is cancelled or the response is
// bad, resolves to a neutral result rather than an error.
package sentiment

import "github.com/tomtom215/socialpulse/internal/models"

// Polarity thresholds separating the three labels.
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

// Result is the analysed sentiment of one text.
type Result struct {
	Sentiment    string  `json:"sentiment"`
	Score        float64 `json:"score"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// Neutral is the result used whenever text cannot be analysed.
func Neutral() Result {
	return Result{Sentiment: models.SentimentNeutral, Score: 0.5, Subjectivity: 0.5}
}

// LabelFor maps a polarity in [-1, 1] to a sentiment label.
func LabelFor(polarity float64) string {
	switch {
	case polarity > PositiveThreshold:
		return models.SentimentPositive
	case polarity < NegativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// ScoreFor maps a polarity in [-1, 1] onto [0, 1].
func ScoreFor(polarity float64) float64 {
	switch {
	case polarity < -1:
		polarity = -1
	case polarity > 1:
		polarity = 1
	}
	return (polarity + 1) / 2
}

// normalize fills in fields a service response left out or got wrong.
func normalize(r Result) Result {
	switch r.Sentiment {
	case models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative:
	default:
		r.Sentiment = LabelFor(r.Polarity)
	}
	if r.Score <= 0 || r.Score > 1 {
		r.Score = ScoreFor(r.Polarity)
	}
	if r.Subjectivity <= 0 {
		r.Subjectivity = 0.5
	}
	return r
}
