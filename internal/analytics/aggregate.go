// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package analytics

import (
	"math"

	"github.com/tomtom215/socialpulse/internal/models"
)

// Sentiment label weights used when a post carries no numeric sentiment.
const (
	PositiveWeight = 100
	NeutralWeight  = 50
	NegativeWeight = 0
)

func nonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}

// EngagementRate is (likes+comments)/reach*100, or 0 when reach is 0.
func EngagementRate(likes, comments, reach int64) float64 {
	if reach <= 0 {
		return 0
	}
	return float64(likes+comments) * 100 / float64(reach)
}

type platformTotals struct {
	posts    int
	likes    int64
	comments int64
	reach    int64
}

// AggregateByPlatform groups posts by platform and totals each group. Groups
// appear in the order their platform was first seen. Negative counts contribute
// nothing. An empty input yields an empty, non-nil slice.
func AggregateByPlatform(posts []models.Post) []models.PlatformSummary {
	groups := newOrderedGroups[models.Platform, platformTotals]()
	for i := range posts {
		acc := groups.get(posts[i].Platform)
		acc.posts++
		acc.likes += nonNegative(posts[i].Likes)
		acc.comments += nonNegative(posts[i].Comments)
		acc.reach += nonNegative(posts[i].Reach)
	}

	out := make([]models.PlatformSummary, 0, groups.len())
	groups.each(func(p models.Platform, acc *platformTotals) {
		out = append(out, models.PlatformSummary{
			Platform:       p,
			PostCount:      acc.posts,
			TotalLikes:     acc.likes,
			TotalComments:  acc.comments,
			TotalReach:     acc.reach,
			EngagementRate: EngagementRate(acc.likes, acc.comments, acc.reach),
		})
	})
	return out
}

// ScoreFunc returns a post's sentiment on a 0-100 scale.
type ScoreFunc func(p *models.Post) float64

// ColumnScore uses the post's numeric sentiment, treating posts without one as neutral.
func ColumnScore(p *models.Post) float64 {
	if p.Sentiment != nil {
		return clampScore(*p.Sentiment)
	}
	return NeutralWeight
}

// LabelWeight converts a sentiment label to its 0-100 weight.
func LabelWeight(label string) float64 {
	switch label {
	case models.SentimentPositive:
		return PositiveWeight
	case models.SentimentNegative:
		return NegativeWeight
	default:
		return NeutralWeight
	}
}

func clampScore(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return NeutralWeight
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

type topicTotals struct {
	mentions int
	score    float64
}

// KeyTopicsBySentiment groups posts on platform (every platform when empty) by
// topic. Posts without a topic are left out. Each topic's score is the mean of
// its posts' scores rounded to the nearest integer, halves away from zero.
// A nil score falls back to ColumnScore.
func KeyTopicsBySentiment(posts []models.Post, platform models.Platform, score ScoreFunc) []models.TopicSentiment {
	if score == nil {
		score = ColumnScore
	}

	groups := newOrderedGroups[string, topicTotals]()
	for i := range posts {
		if platform != "" && posts[i].Platform != platform {
			continue
		}
		if posts[i].Topic == "" {
			continue
		}
		acc := groups.get(posts[i].Topic)
		acc.mentions++
		acc.score += score(&posts[i])
	}

	out := make([]models.TopicSentiment, 0, groups.len())
	groups.each(func(topic string, acc *topicTotals) {
		out = append(out, models.TopicSentiment{
			Topic:          topic,
			MentionCount:   acc.mentions,
			SentimentScore: int(math.Round(acc.score / float64(acc.mentions))),
		})
	})
	return out
}
