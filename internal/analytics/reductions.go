// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/socialpulse/internal/models"
)

// IndustryHashtagLimit caps the industry-wide hashtag ranking.
const IndustryHashtagLimit = 20

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Metrics totals posts for the KPI cards. The engagement score includes shares
// and is formatted as a percentage with two decimals.
func Metrics(posts []models.Post, platform models.Platform) models.SocialMetrics {
	label := string(platform)
	if label == "" {
		label = PresetAll
	}
	m := models.SocialMetrics{
		Platform:     label,
		Mentions:     len(posts),
		MentionCount: len(posts),
		TotalPosts:   len(posts),
	}
	for i := range posts {
		m.Likes += nonNegative(posts[i].Likes)
		m.Comments += nonNegative(posts[i].Comments)
		m.Shares += nonNegative(posts[i].Shares)
		m.Reach += nonNegative(posts[i].Reach)
	}

	var rate float64
	if m.Reach > 0 {
		rate = float64(m.Likes+m.Comments+m.Shares) * 100 / float64(m.Reach)
	}
	m.EngagementScore = fmt.Sprintf("%.2f%%", rate)
	return m
}

// PostFrequency counts dated posts per UTC calendar day, oldest day first.
func PostFrequency(posts []models.Post) []models.FrequencyPoint {
	groups := newOrderedGroups[string, int]()
	for i := range posts {
		if !posts[i].HasDate() {
			continue
		}
		*groups.get(posts[i].Date.UTC().Format(time.DateOnly))++
	}

	out := make([]models.FrequencyPoint, 0, groups.len())
	groups.each(func(d string, n *int) {
		out = append(out, models.FrequencyPoint{Date: d, Count: *n})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

type bucket struct {
	label      string
	start, end time.Time
}

// engagementBuckets lays out chart buckets ending at ref, oldest first.
func engagementBuckets(preset string, ref time.Time) []bucket {
	ref = ref.UTC()
	var out []bucket

	switch preset {
	case Preset7Days:
		first := startOfDay(ref).AddDate(0, 0, -6)
		for i := 0; i < 7; i++ {
			s := first.AddDate(0, 0, i)
			out = append(out, bucket{label: s.Weekday().String()[:3], start: s, end: endOfDay(s)})
		}
	case Preset30Days:
		for i := 3; i >= 0; i-- {
			e := endOfDay(ref).AddDate(0, 0, -7*i)
			s := startOfDay(e).AddDate(0, 0, -6)
			out = append(out, bucket{label: fmt.Sprintf("Week %d", 4-i), start: s, end: e})
		}
	default:
		months := 6
		if preset == Preset90Days {
			months = 3
		}
		for i := months - 1; i >= 0; i-- {
			s := time.Date(ref.Year(), ref.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
			e := s.AddDate(0, 1, 0).Add(-time.Nanosecond)
			out = append(out, bucket{label: s.Month().String()[:3], start: s, end: e})
		}
	}
	return out
}

// EngagementOverTime totals likes, comments, shares and posts per chart bucket.
// 7days uses daily buckets, 30days four weekly ones, 90days three calendar
// months and anything else six calendar months, all ending at ref.
func EngagementOverTime(posts []models.Post, preset string, ref time.Time) []models.EngagementBucket {
	buckets := engagementBuckets(preset, ref)
	out := make([]models.EngagementBucket, len(buckets))
	for i, b := range buckets {
		out[i].Label = b.label
	}

	for i := range posts {
		if !posts[i].HasDate() {
			continue
		}
		for j, b := range buckets {
			if posts[i].Date.Before(b.start) || posts[i].Date.After(b.end) {
				continue
			}
			out[j].Likes += nonNegative(posts[i].Likes)
			out[j].Comments += nonNegative(posts[i].Comments)
			out[j].Shares += nonNegative(posts[i].Shares)
			out[j].Posts++
			break
		}
	}
	return out
}

// TopContent ranks posts by views+likes+comments+shares, highest first, and
// numbers them from 1 after ranking.
func TopContent(posts []models.Post, limit int) []models.ContentItem {
	items := make([]models.ContentItem, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		item := models.ContentItem{
			BrandID:     p.BrandID,
			Platform:    p.Platform,
			Content:     p.Text,
			PostType:    p.Platform.ContentType(),
			PublishedAt: p.Date,
			Views:       nonNegative(p.Reach),
			Likes:       nonNegative(p.Likes),
			Comments:    nonNegative(p.Comments),
			Shares:      nonNegative(p.Shares),
		}
		if item.Views > 0 {
			item.EngagementRate = round2(float64(item.Likes+item.Comments+item.Shares) * 100 / float64(item.Views))
		}
		items = append(items, item)
	}

	weight := func(c *models.ContentItem) int64 { return c.Views + c.Likes + c.Comments + c.Shares }
	sort.SliceStable(items, func(i, j int) bool { return weight(&items[i]) > weight(&items[j]) })

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	for i := range items {
		items[i].ID = i + 1
	}
	return items
}

type tagCount struct {
	tag   string
	count int
}

// countHashtags tallies comma-separated hashtags, most used first. Ties keep
// first-seen order; the returned ids are first-seen positions.
func countHashtags(posts []models.Post) ([]tagCount, map[string]int) {
	groups := newOrderedGroups[string, int]()
	for i := range posts {
		if posts[i].Hashtags == "" {
			continue
		}
		for _, tag := range strings.Split(posts[i].Hashtags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				*groups.get(tag)++
			}
		}
	}

	counts := make([]tagCount, 0, groups.len())
	ids := make(map[string]int, groups.len())
	groups.each(func(tag string, n *int) {
		counts = append(counts, tagCount{tag: tag, count: *n})
		ids[tag] = len(counts)
	})
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].count > counts[j].count })
	return counts, ids
}

// BrandHashtags ranks the hashtags used in a brand's posts.
func BrandHashtags(posts []models.Post, brandID int, platform models.Platform, limit int) []models.BrandHashtag {
	label := string(platform)
	if label == "" {
		label = PresetAll
	}

	counts, ids := countHashtags(posts)
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	out := make([]models.BrandHashtag, 0, len(counts))
	for _, c := range counts {
		out = append(out, models.BrandHashtag{
			ID:         ids[c.tag],
			BrandID:    brandID,
			Platform:   label,
			Hashtag:    c.tag,
			UsageCount: c.count,
		})
	}
	return out
}

// IndustryHashtags ranks hashtags across every brand's hashtag exports.
func IndustryHashtags(posts []models.Post) []models.IndustryHashtag {
	counts, ids := countHashtags(posts)
	if len(counts) > IndustryHashtagLimit {
		counts = counts[:IndustryHashtagLimit]
	}
	out := make([]models.IndustryHashtag, 0, len(counts))
	for _, c := range counts {
		out = append(out, models.IndustryHashtag{ID: ids[c.tag], Hashtag: c.tag, UsageCount: c.count})
	}
	return out
}

var ageShares = []struct {
	age   string
	share float64
}{
	{"18-24", 0.20},
	{"25-34", 0.30},
	{"35-44", 0.25},
	{"45-54", 0.15},
	{"55+", 0.10},
}

// Demographics estimates an audience age split from the number of posts.
func Demographics(postCount int) []models.DemographicBucket {
	out := make([]models.DemographicBucket, 0, len(ageShares))
	for _, a := range ageShares {
		out = append(out, models.DemographicBucket{
			Age:   a.age,
			Count: int(math.Floor(float64(postCount) * a.share)),
		})
	}
	return out
}

// ContentStrategy reports posting cadence and format mix over r. For an
// unbounded range the cadence runs from the earliest dated post to r.End; an
// open end stops at the latest dated post.
func ContentStrategy(posts []models.Post, r DateRange) models.ContentStrategy {
	start, end := r.Start, r.End
	for i := range posts {
		if !posts[i].HasDate() {
			continue
		}
		if !r.Bounded() && (start.IsZero() || posts[i].Date.Before(start)) {
			start = posts[i].Date
		}
		if r.End.IsZero() && posts[i].Date.After(end) {
			end = posts[i].Date
		}
	}

	days := 1.0
	if !start.IsZero() && !end.IsZero() {
		days = math.Max(1, math.Ceil(end.Sub(start).Hours()/24))
	}

	types := newOrderedGroups[string, int]()
	for i := range posts {
		*types.get(posts[i].Platform.ContentType())++
	}
	shares := make([]models.ContentTypeShare, 0, types.len())
	types.each(func(t string, n *int) {
		shares = append(shares, models.ContentTypeShare{
			Type:       t,
			Count:      *n,
			Percentage: int(math.Round(float64(*n) * 100 / float64(len(posts)))),
		})
	})

	return models.ContentStrategy{
		PostsPerDay:  round2(float64(len(posts)) / days),
		TotalPosts:   len(posts),
		ContentTypes: shares,
		DateRange:    r.Echo(),
	}
}

// CommonHashtagLimit caps the shared hashtags reported by AudienceOverlap.
const CommonHashtagLimit = 5

func keywords(posts []models.Post) map[string]struct{} {
	set := make(map[string]struct{})
	for i := range posts {
		for _, w := range strings.Fields(strings.ToLower(posts[i].Hashtags + " " + posts[i].Mentions)) {
			set[w] = struct{}{}
		}
	}
	return set
}

// AudienceOverlap is the Jaccard similarity, as a rounded percentage, of the
// lowercased hashtag and mention words of two brands' posts.
func AudienceOverlap(a, b []models.Post) models.AudienceOverlap {
	ka, kb := keywords(a), keywords(b)

	var common []string
	for w := range ka {
		if _, ok := kb[w]; ok {
			common = append(common, w)
		}
	}
	sort.Strings(common)

	result := models.AudienceOverlap{CommonHashtags: []string{}}
	if union := len(ka) + len(kb) - len(common); union > 0 {
		result.OverlapPercentage = int(math.Round(float64(len(common)) * 100 / float64(union)))
	}
	for _, w := range common {
		if len(result.CommonHashtags) == CommonHashtagLimit {
			break
		}
		if strings.HasPrefix(w, "#") {
			result.CommonHashtags = append(result.CommonHashtags, w)
		}
	}
	return result
}

var suggestionSuffixes = []string{"", "style", "fashion", "official", "brand"}

// SuggestionMatchLimit caps the industry hashtags added to name-derived suggestions.
const SuggestionMatchLimit = 5

// HashtagSuggestions derives hashtags from a brand name and appends industry
// hashtags that mention it. An empty name yields no suggestions.
func HashtagSuggestions(brandName string, industry []models.IndustryHashtag) []models.HashtagSuggestion {
	name := strings.ToLower(strings.TrimSpace(brandName))
	if name == "" {
		return []models.HashtagSuggestion{}
	}
	base := strings.Join(strings.Fields(name), "")

	out := make([]models.HashtagSuggestion, 0, len(suggestionSuffixes)+SuggestionMatchLimit)
	seen := make(map[string]struct{}, cap(out))
	for _, suffix := range suggestionSuffixes {
		tag := "#" + base + suffix
		seen[tag] = struct{}{}
		out = append(out, models.HashtagSuggestion{Tag: tag})
	}

	matched := 0
	for _, h := range industry {
		if matched == SuggestionMatchLimit {
			break
		}
		lower := strings.ToLower(h.Hashtag)
		bare := strings.TrimPrefix(lower, "#")
		if !strings.Contains(lower, name) && (bare == "" || !strings.Contains(name, bare)) {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, models.HashtagSuggestion{Tag: h.Hashtag, UsageCount: h.UsageCount})
		matched++
	}
	return out
}
