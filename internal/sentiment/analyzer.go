// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package sentiment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/socialpulse/internal/analytics"
	"github.com/tomtom215/socialpulse/internal/logging"
	"github.com/tomtom215/socialpulse/internal/metrics"
	"github.com/tomtom215/socialpulse/internal/models"
)

// maxTextRunes is how much post text a record keeps.
const maxTextRunes = 100

// Source supplies official posts and the age of the exports behind them.
type Source interface {
	OfficialPosts(ctx context.Context, brandID int) ([]models.Post, error)
	LatestModTime() (time.Time, error)
}

// TextAnalyzer scores a single text. *Client implements it.
type TextAnalyzer interface {
	Analyze(ctx context.Context, text string) Result
}

// Analyzer builds sentiment records for every brand's official posts and
// serves them from a Cache, rebuilding when the exports change.
type Analyzer struct {
	source   Source
	analyzer TextAnalyzer
	cache    *Cache
	brandIDs []int

	mu  sync.Mutex
	now func() time.Time
}

// NewAnalyzer creates an Analyzer for the given brands.
func NewAnalyzer(source Source, analyzer TextAnalyzer, cache *Cache, brandIDs []int) *Analyzer {
	return &Analyzer{
		source:   source,
		analyzer: analyzer,
		cache:    cache,
		brandIDs: brandIDs,
		now:      time.Now,
	}
}

// Build analyses one brand's official posts. Posts without text are skipped.
func (a *Analyzer) Build(ctx context.Context, brandID int) ([]models.SentimentRecord, error) {
	posts, err := a.source.OfficialPosts(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("load official posts for brand %d: %w", brandID, err)
	}

	records := make([]models.SentimentRecord, 0, len(posts))
	for i := range posts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := &posts[i]
		if p.Text == "" {
			continue
		}
		res := a.analyzer.Analyze(ctx, p.Text)
		records = append(records, models.SentimentRecord{
			BrandID:      brandID,
			Platform:     p.Platform,
			Sentiment:    res.Sentiment,
			Score:        res.Score,
			Subjectivity: res.Subjectivity,
			MentionCount: 1,
			Text:         truncate(p.Text, maxTextRunes),
			Date:         p.Date,
		})
	}
	return records, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Refresh rebuilds and saves records for every brand.
func (a *Analyzer) Refresh(ctx context.Context) (models.ExtractResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.refreshLocked(ctx)
}

func (a *Analyzer) refreshLocked(ctx context.Context) (models.ExtractResult, error) {
	var all []models.SentimentRecord
	for _, id := range a.brandIDs {
		records, err := a.Build(ctx, id)
		if err != nil {
			metrics.RecordSentimentCacheRefresh("error")
			return models.ExtractResult{}, err
		}
		all = append(all, records...)
	}

	computedAt := a.now().UTC()
	if err := a.cache.Save(all, computedAt); err != nil {
		metrics.RecordSentimentCacheRefresh("error")
		return models.ExtractResult{}, err
	}
	metrics.RecordSentimentCacheRefresh("success")
	logging.Ctx(ctx).Info().Int("records", len(all)).Str("path", a.cache.Path()).Msg("Sentiment cache rebuilt")

	return models.ExtractResult{Records: len(all), Brands: a.brandIDs, ComputedAt: computedAt}, nil
}

// Outdated reports whether the cache needs rebuilding.
func (a *Analyzer) Outdated() bool {
	latest, err := a.source.LatestModTime()
	if err != nil {
		return true
	}
	return a.cache.Outdated(latest)
}

// RefreshIfOutdated rebuilds only when the exports are newer than the cache.
// It reports whether a rebuild happened.
func (a *Analyzer) RefreshIfOutdated(ctx context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.Outdated() {
		metrics.RecordSentimentCacheRefresh("skipped")
		return false, nil
	}
	if _, err := a.refreshLocked(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// records returns cached records, rebuilding first when the cache is stale.
func (a *Analyzer) records(ctx context.Context) ([]models.SentimentRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.Outdated() {
		recs, err := a.cache.Load()
		if err == nil {
			return recs, nil
		}
		if !errors.Is(err, ErrCacheMissing) {
			logging.Ctx(ctx).Warn().Err(err).Msg("Sentiment cache unreadable, rebuilding")
		}
	}

	if _, err := a.refreshLocked(ctx); err != nil {
		return nil, err
	}
	return a.cache.Load()
}

// Records returns a brand's sentiment records on platform (every platform
// when empty) within r. Failures are logged and yield an empty list.
func (a *Analyzer) Records(ctx context.Context, brandID int, platform models.Platform, r analytics.DateRange) []models.SentimentRecord {
	all, err := a.records(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int("brand_id", brandID).Msg("Sentiment records unavailable")
		return []models.SentimentRecord{}
	}

	out := make([]models.SentimentRecord, 0)
	for i := range all {
		rec := &all[i]
		if rec.BrandID != brandID {
			continue
		}
		if platform != "" && rec.Platform != platform {
			continue
		}
		if !r.Contains(rec.Date) {
			continue
		}
		out = append(out, *rec)
	}
	return out
}
