// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package analytics

import (
	"context"
	"time"

	"github.com/tomtom215/socialpulse/internal/logging"
	"github.com/tomtom215/socialpulse/internal/metrics"
	"github.com/tomtom215/socialpulse/internal/models"
)

// PostSource supplies parsed posts. dataset.Loader is the production source.
type PostSource interface {
	// Posts returns a brand's engaged posts from every export.
	Posts(ctx context.Context, brandID int) ([]models.Post, error)
	// OfficialPosts returns every row of a brand's own-account exports.
	OfficialPosts(ctx context.Context, brandID int) ([]models.Post, error)
	// HashtagPosts returns every row of every brand's hashtag exports.
	HashtagPosts(ctx context.Context) ([]models.Post, error)
}

// Labeler classifies free text as positive, neutral or negative.
type Labeler interface {
	Label(ctx context.Context, text string) string
}

// Query selects the posts a reduction runs over.
type Query struct {
	BrandID  int
	Platform models.Platform
	Range    DateRange
}

// Service runs reductions over posts read from a PostSource.
type Service struct {
	source    PostSource
	labeler   Labeler
	reference time.Time
}

// NewService creates a Service. ref anchors date presets and chart buckets.
// labeler may be nil, in which case topics are scored from the sentiment
// column alone.
func NewService(source PostSource, labeler Labeler, ref time.Time) *Service {
	return &Service{source: source, labeler: labeler, reference: ref.UTC()}
}

// Reference returns the date presets are resolved against.
func (s *Service) Reference() time.Time {
	return s.reference
}

// Range resolves request parameters against the service's reference date.
func (s *Service) Range(preset, start, end string) (DateRange, error) {
	return ResolveRange(preset, start, end, s.reference)
}

func (s *Service) posts(ctx context.Context, q Query) []models.Post {
	posts, err := s.source.Posts(ctx, q.BrandID)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int("brand_id", q.BrandID).Msg("Post source unavailable, using empty dataset")
		return nil
	}
	return Filter(posts, q.Platform, q.Range)
}

func observe(op string, start time.Time) {
	metrics.ObserveAggregation(op, time.Since(start))
}

// Summary aggregates the brand's posts by platform.
func (s *Service) Summary(ctx context.Context, q Query) []models.PlatformSummary {
	posts := s.posts(ctx, q)
	defer observe("aggregate_by_platform", time.Now())
	return AggregateByPlatform(posts)
}

// Topics groups the brand's official posts by topic. Posts without a numeric
// sentiment are scored by the labeler.
func (s *Service) Topics(ctx context.Context, q Query) []models.TopicSentiment {
	posts, err := s.source.OfficialPosts(ctx, q.BrandID)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int("brand_id", q.BrandID).Msg("Official posts unavailable, returning no topics")
		return []models.TopicSentiment{}
	}
	posts = Filter(posts, q.Platform, q.Range)

	defer observe("key_topics_by_sentiment", time.Now())
	return KeyTopicsBySentiment(posts, q.Platform, s.scorer(ctx))
}

func (s *Service) scorer(ctx context.Context) ScoreFunc {
	if s.labeler == nil {
		return ColumnScore
	}
	return func(p *models.Post) float64 {
		if p.Sentiment != nil {
			return ColumnScore(p)
		}
		return LabelWeight(s.labeler.Label(ctx, p.Text))
	}
}

// Metrics totals the brand's posts for the KPI cards.
func (s *Service) Metrics(ctx context.Context, q Query) models.SocialMetrics {
	posts := s.posts(ctx, q)
	defer observe("metrics", time.Now())
	return Metrics(posts, q.Platform)
}

// Frequency counts posts per day.
func (s *Service) Frequency(ctx context.Context, q Query) []models.FrequencyPoint {
	posts := s.posts(ctx, q)
	defer observe("frequency", time.Now())
	return PostFrequency(posts)
}

// EngagementOverTime buckets engagement for the chart matching the query's preset.
func (s *Service) EngagementOverTime(ctx context.Context, q Query) []models.EngagementBucket {
	posts := s.posts(ctx, q)
	defer observe("engagement_over_time", time.Now())
	return EngagementOverTime(posts, q.Range.Preset, s.reference)
}

// TopContent ranks the brand's posts.
func (s *Service) TopContent(ctx context.Context, q Query, limit int) []models.ContentItem {
	posts := s.posts(ctx, q)
	defer observe("top_content", time.Now())
	return TopContent(posts, limit)
}

// BrandHashtags ranks the brand's hashtags.
func (s *Service) BrandHashtags(ctx context.Context, q Query, limit int) []models.BrandHashtag {
	posts := s.posts(ctx, q)
	defer observe("brand_hashtags", time.Now())
	return BrandHashtags(posts, q.BrandID, q.Platform, limit)
}

// IndustryHashtags ranks hashtags across every brand.
func (s *Service) IndustryHashtags(ctx context.Context) []models.IndustryHashtag {
	posts, err := s.source.HashtagPosts(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Hashtag exports unavailable")
		return []models.IndustryHashtag{}
	}
	defer observe("industry_hashtags", time.Now())
	return IndustryHashtags(posts)
}

// Demographics estimates the brand's audience age split.
func (s *Service) Demographics(ctx context.Context, q Query) []models.DemographicBucket {
	return Demographics(len(s.posts(ctx, q)))
}

// ContentStrategy reports posting cadence and format mix.
func (s *Service) ContentStrategy(ctx context.Context, q Query) models.ContentStrategy {
	posts := s.posts(ctx, q)
	defer observe("content_strategy", time.Now())
	return ContentStrategy(posts, q.Range)
}

// AudienceOverlap compares two brands over the same platform and range.
func (s *Service) AudienceOverlap(ctx context.Context, brand1, brand2 int, platform models.Platform, r DateRange) models.AudienceOverlap {
	a := s.posts(ctx, Query{BrandID: brand1, Platform: platform, Range: r})
	b := s.posts(ctx, Query{BrandID: brand2, Platform: platform, Range: r})
	defer observe("audience_overlap", time.Now())
	return AudienceOverlap(a, b)
}

// HashtagSuggestions proposes hashtags for a brand name.
func (s *Service) HashtagSuggestions(ctx context.Context, brandName string) []models.HashtagSuggestion {
	if brandName == "" {
		return []models.HashtagSuggestion{}
	}
	return HashtagSuggestions(brandName, s.IndustryHashtags(ctx))
}
