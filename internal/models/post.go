// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package models

import (
	"strings"
	"time"
)

// Platform is a social network a post was published on.
type Platform string

// Supported platforms. Only Instagram, TikTok and YouTube have datasets today;
// Facebook and Twitter are accepted as filters and onboarding choices.
const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{
	PlatformInstagram,
	PlatformTikTok,
	PlatformYouTube,
	PlatformFacebook,
	PlatformTwitter,
}

// ParsePlatform normalises a platform label. The empty string and "all" mean
// "no filter" and are returned as "" with ok=true.
func ParsePlatform(s string) (Platform, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return "", true
	}
	p := Platform(s)
	return p, p.Valid()
}

// Valid reports whether p is one of the enumerated platforms.
func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// ContentType is the dominant media format for posts on the platform.
func (p Platform) ContentType() string {
	if p == PlatformInstagram {
		return "image"
	}
	return "video"
}

// Source distinguishes a brand's own account from posts found by hashtag.
type Source string

const (
	SourceOfficial Source = "official"
	SourceHashtag  Source = "hashtag"
)

// Post is one social-media post record. Posts are read-only once loaded.
type Post struct {
	BrandID   int       `json:"brandId"`
	Platform  Platform  `json:"platform"`
	Source    Source    `json:"source"`
	Likes     int64     `json:"likes"`
	Comments  int64     `json:"comments"`
	Reach     int64     `json:"reach"`
	Shares    int64     `json:"shares"`
	Date      time.Time `json:"date"`
	Text      string    `json:"text,omitempty"`
	Hashtags  string    `json:"hashtags,omitempty"`
	Mentions  string    `json:"mentions,omitempty"`
	Topic     string    `json:"topic,omitempty"`
	Sentiment *float64  `json:"sentiment,omitempty"`
}

// HasDate reports whether the post carried a parseable publication date.
func (p *Post) HasDate() bool {
	return !p.Date.IsZero()
}
