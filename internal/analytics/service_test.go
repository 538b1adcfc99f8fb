// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/socialpulse/internal/models"
)

type fakeSource struct {
	posts    map[int][]models.Post
	official map[int][]models.Post
	hashtags []models.Post
	err      error
}

func (f *fakeSource) Posts(_ context.Context, brandID int) ([]models.Post, error) {
	return f.posts[brandID], f.err
}

func (f *fakeSource) OfficialPosts(_ context.Context, brandID int) ([]models.Post, error) {
	return f.official[brandID], f.err
}

func (f *fakeSource) HashtagPosts(context.Context) ([]models.Post, error) {
	return f.hashtags, f.err
}

type fakeLabeler struct {
	labels map[string]string
	calls  int
}

func (f *fakeLabeler) Label(_ context.Context, text string) string {
	f.calls++
	if l, ok := f.labels[text]; ok {
		return l
	}
	return models.SentimentNeutral
}

func newTestService(src PostSource, labeler Labeler) *Service {
	return NewService(src, labeler, testRef)
}

func TestServiceSummary(t *testing.T) {
	src := &fakeSource{posts: map[int][]models.Post{
		1: {
			{Platform: models.PlatformInstagram, Likes: 100, Comments: 20, Reach: 1000, Date: at(2025, 5, 28)},
			{Platform: models.PlatformInstagram, Likes: 50, Comments: 10, Reach: 500, Date: at(2025, 5, 27)},
			{Platform: models.PlatformTikTok, Likes: 5, Reach: 10, Date: at(2024, 1, 1)},
		},
	}}
	svc := newTestService(src, nil)

	all := svc.Summary(context.Background(), Query{BrandID: 1, Range: PresetRange("all", testRef)})
	if len(all) != 2 {
		t.Fatalf("got %d summaries, want 2", len(all))
	}

	week := svc.Summary(context.Background(), Query{BrandID: 1, Range: PresetRange("7days", testRef)})
	if len(week) != 1 || week[0].EngagementRate != 12 || week[0].PostCount != 2 {
		t.Errorf("7-day summary = %+v", week)
	}

	tiktok := svc.Summary(context.Background(), Query{BrandID: 1, Platform: models.PlatformTikTok})
	if len(tiktok) != 1 || tiktok[0].Platform != models.PlatformTikTok {
		t.Errorf("tiktok summary = %+v", tiktok)
	}
}

func TestServiceSourceFailureDegradesToEmpty(t *testing.T) {
	svc := newTestService(&fakeSource{err: errors.New("disk gone")}, nil)
	ctx := context.Background()
	q := Query{BrandID: 1}

	if got := svc.Summary(ctx, q); got == nil || len(got) != 0 {
		t.Errorf("Summary = %v, want empty", got)
	}
	if got := svc.Topics(ctx, q); got == nil || len(got) != 0 {
		t.Errorf("Topics = %v, want empty", got)
	}
	if got := svc.IndustryHashtags(ctx); got == nil || len(got) != 0 {
		t.Errorf("IndustryHashtags = %v, want empty", got)
	}
	if got := svc.Metrics(ctx, q); got.TotalPosts != 0 {
		t.Errorf("Metrics = %+v, want zero totals", got)
	}
}

func TestServiceTopicsUsesLabelerForUnscoredPosts(t *testing.T) {
	src := &fakeSource{official: map[int][]models.Post{
		2: {
			{Platform: models.PlatformYouTube, Topic: "sale", Text: "love it"},
			{Platform: models.PlatformYouTube, Topic: "sale", Sentiment: ptr(60)},
			{Platform: models.PlatformTikTok, Topic: "returns", Text: "terrible"},
		},
	}}
	labeler := &fakeLabeler{labels: map[string]string{
		"love it":  models.SentimentPositive,
		"terrible": models.SentimentNegative,
	}}
	svc := newTestService(src, labeler)

	got := svc.Topics(context.Background(), Query{BrandID: 2, Platform: models.PlatformYouTube})
	if len(got) != 1 {
		t.Fatalf("got %d topics, want 1: %+v", len(got), got)
	}
	if got[0].SentimentScore != 80 || got[0].MentionCount != 2 {
		t.Errorf("topic = %+v, want score 80 with 2 mentions", got[0])
	}
	if labeler.calls != 1 {
		t.Errorf("labeler called %d times, want 1", labeler.calls)
	}
}

func TestServiceAudienceOverlapAndSuggestions(t *testing.T) {
	src := &fakeSource{
		posts: map[int][]models.Post{
			1: {{Platform: models.PlatformTikTok, Hashtags: "#style #mands"}},
			2: {{Platform: models.PlatformTikTok, Hashtags: "#style #next"}},
		},
		hashtags: []models.Post{
			{Hashtags: "#mands,#mandsfood"},
			{Hashtags: "#mandsfood"},
		},
	}
	svc := newTestService(src, nil)
	ctx := context.Background()

	overlap := svc.AudienceOverlap(ctx, 1, 2, "", PresetRange("all", testRef))
	if overlap.OverlapPercentage != 33 {
		t.Errorf("overlap = %d, want 33", overlap.OverlapPercentage)
	}

	suggestions := svc.HashtagSuggestions(ctx, "mands")
	if len(suggestions) != 6 {
		t.Fatalf("got %d suggestions, want 6: %+v", len(suggestions), suggestions)
	}
	if suggestions[5].Tag != "#mandsfood" || suggestions[5].UsageCount != 2 {
		t.Errorf("first industry match = %+v", suggestions[5])
	}

	if got := svc.HashtagSuggestions(ctx, ""); len(got) != 0 {
		t.Errorf("empty brand suggestions = %v", got)
	}
}

func TestServiceRange(t *testing.T) {
	svc := newTestService(&fakeSource{}, nil)
	r, err := svc.Range("7d", "", "")
	if err != nil {
		t.Fatalf("Range error = %v", err)
	}
	if !r.Start.Equal(time.Date(2025, 5, 23, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", r.Start)
	}
	if !svc.Reference().Equal(testRef) {
		t.Errorf("Reference = %v", svc.Reference())
	}
}
