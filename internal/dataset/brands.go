// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

// Package dataset reads a brand's social-media CSV exports into models.Post values.
//
// Each brand has one official-account export and one hashtag-search export per
// platform, named {prefix}_{tik|insta|yt}_{off|hash}.csv under the data directory.
// Missing or unreadable files contribute no rows; they are logged, never returned
// as errors, so a half-populated data directory still renders a dashboard.
package dataset

import (
	"errors"
	"fmt"

	"github.com/tomtom215/socialpulse/internal/models"
)

// ErrUnknownBrand is returned for brand IDs with no registered exports.
var ErrUnknownBrand = errors.New("unknown brand")

type brandEntry struct {
	brand  models.Brand
	prefix string
}

var registry = []brandEntry{
	{
		brand:  models.Brand{ID: 1, Name: "Marks & Spencer", Slug: "marks-spencer", Industry: "Retail", Description: "Marks & Spencer"},
		prefix: "mands",
	},
	{
		brand:  models.Brand{ID: 2, Name: "Next Retail", Slug: "next-retail", Industry: "Retail", Description: "Next Retail"},
		prefix: "next",
	},
}

// Brands returns every tracked brand in ID order.
func Brands() []models.Brand {
	out := make([]models.Brand, 0, len(registry))
	for _, e := range registry {
		out = append(out, e.brand)
	}
	return out
}

// BrandByID looks up a brand by numeric ID.
func BrandByID(id int) (models.Brand, bool) {
	for _, e := range registry {
		if e.brand.ID == id {
			return e.brand, true
		}
	}
	return models.Brand{}, false
}

// BrandBySlug looks up a brand by URL slug.
func BrandBySlug(slug string) (models.Brand, bool) {
	for _, e := range registry {
		if e.brand.Slug == slug {
			return e.brand, true
		}
	}
	return models.Brand{}, false
}

// File identifies one CSV export.
type File struct {
	BrandID  int
	Platform models.Platform
	Source   models.Source
	Name     string
}

var platformCodes = []struct {
	platform models.Platform
	code     string
}{
	{models.PlatformTikTok, "tik"},
	{models.PlatformInstagram, "insta"},
	{models.PlatformYouTube, "yt"},
}

// FilesFor lists a brand's exports, official before hashtag for each platform.
func FilesFor(brandID int) ([]File, error) {
	var prefix string
	for _, e := range registry {
		if e.brand.ID == brandID {
			prefix = e.prefix
		}
	}
	if prefix == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBrand, brandID)
	}

	files := make([]File, 0, len(platformCodes)*2)
	for _, pc := range platformCodes {
		files = append(files,
			File{BrandID: brandID, Platform: pc.platform, Source: models.SourceOfficial, Name: fmt.Sprintf("%s_%s_off.csv", prefix, pc.code)},
			File{BrandID: brandID, Platform: pc.platform, Source: models.SourceHashtag, Name: fmt.Sprintf("%s_%s_hash.csv", prefix, pc.code)},
		)
	}
	return files, nil
}

// HashtagFiles lists the hashtag-search exports of every brand, used for
// industry-wide hashtag rankings. YouTube exports carry no hashtag column.
func HashtagFiles() []File {
	var out []File
	for _, e := range registry {
		files, _ := FilesFor(e.brand.ID)
		for _, f := range files {
			if f.Source == models.SourceHashtag && f.Platform != models.PlatformYouTube {
				out = append(out, f)
			}
		}
	}
	return out
}
