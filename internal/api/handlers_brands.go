// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/socialpulse/internal/analytics"
	"github.com/tomtom215/socialpulse/internal/audit"
	"github.com/tomtom215/socialpulse/internal/dataset"
	"github.com/tomtom215/socialpulse/internal/logging"
	"github.com/tomtom215/socialpulse/internal/models"
)

// Brands lists the tracked brands.
func (h *Handler) Brands(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, dataset.Brands(), time.Now(), false)
}

// Brand returns one brand, addressed by slug or numeric ID.
func (h *Handler) Brand(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimSpace(chi.URLParam(r, "brandId"))

	var (
		brand models.Brand
		ok    bool
	)
	if id, err := strconv.Atoi(ref); err == nil {
		brand, ok = dataset.BrandByID(id)
	} else {
		brand, ok = dataset.BrandBySlug(ref)
	}
	if !ok {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Brand not found", nil)
		return
	}
	respondData(w, r, brand, time.Now(), false)
}

// Summary returns per-platform engagement totals, recomputed on every request.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseBrandQuery(w, r)
	if !ok {
		return
	}
	h.executeFresh(w, r, "summary", func(ctx context.Context) (interface{}, error) {
		return h.analytics.Summary(ctx, q.analytics()), nil
	})
}

// Topics returns the key topics by sentiment, recomputed on every request.
func (h *Handler) Topics(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseBrandQuery(w, r)
	if !ok {
		return
	}
	h.executeFresh(w, r, "topics", func(ctx context.Context) (interface{}, error) {
		return h.analytics.Topics(ctx, q.analytics()), nil
	})
}

// Metrics returns the headline metrics for one platform or all of them.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseBrandQuery(w, r)
	if !ok {
		return
	}
	h.executeCached(w, r, "metrics", q, func(ctx context.Context) (interface{}, error) {
		return h.analytics.Metrics(ctx, q.analytics()), nil
	})
}

// Frequency returns the number of posts on each calendar day.
func (h *Handler) Frequency(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseBrandQuery(w, r)
	if !ok {
		return
	}
	h.executeCached(w, r, "frequency", q, func(ctx context.Context) (interface{}, error) {
		return h.analytics.Frequency(ctx, q.analytics()), nil
	})
}

// EngagementOverTime returns the bucketed engagement chart.
func (h *Handler) EngagementOverTime(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseBrandQuery(w, r)
	if !ok {
		return
	}
	h.executeCached(w, r, "engagement", q, func(ctx context.Context) (interface{}, error) {
		return h.analytics.EngagementOverTime(ctx, q.analytics()), nil
	})
}

// Content returns the top posts by engagement.
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseBrandQuery(w, r)
	if !ok {
		return
	}
	h.executeCached(w, r, "content", q, func(ctx context.Context) (interface{}, error) {
		return h.analytics.TopContent(ctx, q.analytics(), q.Limit), nil
	})
}

// Hashtags returns the brand's most used hashtags.
func (h *Handler) Hashtags(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseBrandQuery(w, r)
	if !ok {
		return
	}
	h.executeCached(w, r, "hashtags", q, func(ctx context.Context) (interface{}, error) {
		return h.analytics.BrandHashtags(ctx, q.analytics(), q.Limit), nil
	})
}

// Demographics returns the audience age distribution.
func (h *Handler) Demographics(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseBrandQuery(w, r)
	if !ok {
		return
	}
	h.executeCached(w, r, "demographics", q, func(ctx context.Context) (interface{}, error) {
		return h.analytics.Demographics(ctx, q.analytics()), nil
	})
}

// ContentStrategy returns posting cadence and content-type mix.
func (h *Handler) ContentStrategy(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseBrandQuery(w, r)
	if !ok {
		return
	}
	h.executeCached(w, r, "content-strategy", q, func(ctx context.Context) (interface{}, error) {
		return h.analytics.ContentStrategy(ctx, q.analytics()), nil
	})
}

// Sentiment returns cached per-post sentiment records. It bypasses the
// response cache since the records already come from the sentiment cache.
func (h *Handler) Sentiment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q, ok := h.parseBrandQuery(w, r)
	if !ok {
		return
	}
	if h.sentiment == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUnavailable, "Sentiment analysis is disabled", nil)
		return
	}

	records := h.sentiment.Records(r.Context(), q.BrandID, q.Platform, q.Range)
	if records == nil {
		records = []models.SentimentRecord{}
	}
	respondData(w, r, records, start, false)
}

// ExtractSentiment rebuilds the sentiment cache for every brand. The brand in
// the path only scopes authorization and logging.
func (h *Handler) ExtractSentiment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseBrandID(r)
	if err != nil {
		respondBrandError(w, err)
		return
	}
	if h.sentiment == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUnavailable, "Sentiment analysis is disabled", nil)
		return
	}

	result, err := h.sentiment.Refresh(r.Context())
	if err != nil {
		h.audit.Record(r, audit.EventTypeSentimentRefresh, audit.OutcomeFailure, actorFromClaims(r), "Sentiment extraction failed", nil)
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to extract sentiment", err)
		return
	}
	h.ClearCache()
	h.audit.Record(r, audit.EventTypeSentimentRefresh, audit.OutcomeSuccess, actorFromClaims(r), "Sentiment extraction complete",
		map[string]interface{}{"brandId": id, "records": result.Records})

	logging.Ctx(r.Context()).Info().
		Int("brand_id", id).
		Int("records", result.Records).
		Msg("Sentiment extraction complete")
	respondData(w, r, result, start, false)
}

// AudienceOverlap compares the keyword audiences of two brands.
func (h *Handler) AudienceOverlap(w http.ResponseWriter, r *http.Request) {
	req := OverlapRequest{
		Brand1ID:      getIntParam(r, "brand1Id", 1),
		Brand2ID:      getIntParam(r, "brand2Id", 2),
		FilterRequest: parseFilterRequest(r),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	for _, id := range []int{req.Brand1ID, req.Brand2ID} {
		if _, ok := dataset.BrandByID(id); !ok {
			respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Brand not found", nil)
			return
		}
	}

	platform, rng, ok := h.resolveFilter(w, &req.FilterRequest)
	if !ok {
		return
	}

	params := struct {
		Brand1ID int
		Brand2ID int
		Platform models.Platform
		Range    analytics.DateRange
	}{req.Brand1ID, req.Brand2ID, platform, rng}
	h.executeCached(w, r, "audience-overlap", params, func(ctx context.Context) (interface{}, error) {
		return h.analytics.AudienceOverlap(ctx, req.Brand1ID, req.Brand2ID, platform, rng), nil
	})
}

// IndustryHashtags returns hashtag usage across every brand.
func (h *Handler) IndustryHashtags(w http.ResponseWriter, r *http.Request) {
	h.executeCached(w, r, "industry-hashtags", nil, func(ctx context.Context) (interface{}, error) {
		return h.analytics.IndustryHashtags(ctx), nil
	})
}

// HashtagSuggestions suggests hashtags for a brand name. An empty name
// yields an empty list.
func (h *Handler) HashtagSuggestions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := strings.TrimSpace(r.URL.Query().Get("brand"))
	if len(name) > 100 {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidParameter, "brand must be at most 100 characters", nil)
		return
	}
	if name == "" {
		respondData(w, r, []models.HashtagSuggestion{}, start, false)
		return
	}
	respondData(w, r, h.analytics.HashtagSuggestions(r.Context(), name), start, false)
}
