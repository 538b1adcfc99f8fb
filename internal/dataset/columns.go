// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/socialpulse/internal/models"
)

// Row is one CSV record keyed by header name.
type Row map[string]string

// first returns the first non-empty value among the named columns.
func (r Row) first(cols ...string) string {
	for _, c := range cols {
		if v := strings.TrimSpace(r[c]); v != "" {
			return v
		}
	}
	return ""
}

// count parses a non-negative count. Blank, malformed or negative values are 0.
func (r Row) count(col string) int64 {
	return parseCount(r[col])
}

// firstCount returns the first column holding a positive count.
func (r Row) firstCount(cols ...string) int64 {
	for _, c := range cols {
		if n := parseCount(r[c]); n > 0 {
			return n
		}
	}
	return 0
}

func parseCount(s string) int64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int64(math.Round(f))
}

// columnSet names the columns a platform's exports use for each field.
type columnSet struct {
	likes    []string
	comments []string
	reach    []string
	shares   []string
	date     []string
	text     []string
}

var columnsByPlatform = map[models.Platform]columnSet{
	models.PlatformTikTok: {
		likes:    []string{"diggCount"},
		comments: []string{"commentCount"},
		reach:    []string{"playCount"},
		shares:   []string{"shareCount"},
		date:     []string{"created_time", "createTimeISO"},
		text:     []string{"text", "description", "video_description"},
	},
	models.PlatformInstagram: {
		likes:    []string{"likesCount"},
		comments: []string{"commentsCount"},
		reach:    []string{"videoPlayCount", "videoViewCount"},
		date:     []string{"timestamp"},
		text:     []string{"caption"},
	},
	models.PlatformYouTube: {
		likes:    []string{"likes"},
		comments: []string{"commentsCount"},
		reach:    []string{"viewCount", "view_count"},
		date:     []string{"date", "publishedAt"},
		text:     []string{"title", "video_description"},
	},
}

var yearPattern = regexp.MustCompile(`\b(\d{4})\b`)

// toPost maps a raw row to a Post using the platform's column names.
func toPost(f File, row Row) models.Post {
	cols := columnsByPlatform[f.Platform]

	p := models.Post{
		BrandID:  f.BrandID,
		Platform: f.Platform,
		Source:   f.Source,
		Likes:    row.firstCount(cols.likes...),
		Comments: row.firstCount(cols.comments...),
		Shares:   row.firstCount(cols.shares...),
		Text:     row.first(cols.text...),
		Hashtags: row.first("hashtags"),
		Mentions: row.first("mentions"),
		Topic:    strings.TrimSpace(strings.ReplaceAll(row["topic"], `"`, "")),
	}

	// Hashtag-search exports for Instagram carry view counts of other accounts'
	// posts, so only the official export contributes reach.
	if f.Platform != models.PlatformInstagram || f.Source == models.SourceOfficial {
		p.Reach = row.firstCount(cols.reach...)
	}

	rawDate := row.first(cols.date...)
	if rawDate == "" && f.Platform == models.PlatformYouTube {
		if m := yearPattern.FindStringSubmatch(row["title"]); m != nil {
			rawDate = m[1] + "-01-01"
		}
	}
	p.Date = ParseDate(rawDate)

	if s := strings.TrimSpace(row["sentiment"]); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			p.Sentiment = &v
		}
	}
	return p
}

// engaged reports whether a post counts towards engagement analytics.
// TikTok and Instagram rows need likes or comments; YouTube rows need any metric.
func engaged(p *models.Post) bool {
	if p.Platform == models.PlatformYouTube {
		return p.Likes > 0 || p.Comments > 0 || p.Reach > 0
	}
	return p.Likes > 0 || p.Comments > 0
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
}

// ParseDate accepts the timestamp shapes found in the exports and returns the
// instant in UTC. DD/MM/YYYY is supported. Unparseable input yields the zero time.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	if strings.Count(s, "/") == 2 {
		parts := strings.SplitN(s, "/", 3)
		yearField := strings.Fields(parts[2])
		if len(yearField) == 0 {
			return time.Time{}
		}
		day, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, errY := strconv.Atoi(yearField[0])
		if errD != nil || errM != nil || errY != nil || month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}
		}
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if t.Day() != day {
			return time.Time{}
		}
		return t
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
