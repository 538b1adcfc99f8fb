// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/socialpulse/internal/analytics"
	"github.com/tomtom215/socialpulse/internal/dataset"
	"github.com/tomtom215/socialpulse/internal/models"
)

// Default and maximum list sizes for content and hashtag endpoints.
const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// FilterRequest holds the common dashboard query parameters.
type FilterRequest struct {
	Platform  string `json:"platform" validate:"omitempty,platform"`
	DateRange string `json:"dateRange" validate:"omitempty,max=20"`
	StartDate string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Limit     int    `json:"limit" validate:"min=1,max=100"`
}

// OverlapRequest holds the audience-overlap query parameters.
type OverlapRequest struct {
	Brand1ID int `json:"brand1Id" validate:"min=1"`
	Brand2ID int `json:"brand2Id" validate:"min=1"`
	FilterRequest
}

// brandQuery is a validated, resolved dashboard request. It is also the
// cache key input, so it holds only normalised values.
type brandQuery struct {
	BrandID  int                 `json:"brandId"`
	Platform models.Platform     `json:"platform"`
	Range    analytics.DateRange `json:"range"`
	Limit    int                 `json:"limit"`
}

func (q brandQuery) analytics() analytics.Query {
	return analytics.Query{BrandID: q.BrandID, Platform: q.Platform, Range: q.Range}
}

var (
	errBadBrandID    = errors.New("brandId must be a positive integer")
	errBrandNotFound = errors.New("brand not found")
)

func parseFilterRequest(r *http.Request) FilterRequest {
	q := r.URL.Query()
	return FilterRequest{
		Platform:  strings.TrimSpace(q.Get("platform")),
		DateRange: strings.TrimSpace(q.Get("dateRange")),
		StartDate: strings.TrimSpace(q.Get("startDate")),
		EndDate:   strings.TrimSpace(q.Get("endDate")),
		Limit:     getIntParam(r, "limit", defaultListLimit),
	}
}

// resolveFilter validates the filter and resolves it into a platform and range.
func (h *Handler) resolveFilter(w http.ResponseWriter, f *FilterRequest) (models.Platform, analytics.DateRange, bool) {
	if apiErr := validateRequest(f); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return "", analytics.DateRange{}, false
	}

	platform, _ := models.ParsePlatform(f.Platform)
	rng, err := h.analytics.Range(f.DateRange, f.StartDate, f.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidParameter, err.Error(), nil)
		return "", analytics.DateRange{}, false
	}
	return platform, rng, true
}

// parseBrandID reads {brandId} and checks that the brand exists.
func parseBrandID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "brandId")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errBadBrandID
	}
	if _, ok := dataset.BrandByID(id); !ok {
		return 0, errBrandNotFound
	}
	return id, nil
}

func respondBrandError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBrandNotFound) {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Brand not found", nil)
		return
	}
	respondError(w, http.StatusBadRequest, models.ErrCodeInvalidParameter, err.Error(), nil)
}

// parseBrandQuery parses and validates a per-brand dashboard request,
// writing the error response itself when it fails.
func (h *Handler) parseBrandQuery(w http.ResponseWriter, r *http.Request) (brandQuery, bool) {
	id, err := parseBrandID(r)
	if err != nil {
		respondBrandError(w, err)
		return brandQuery{}, false
	}

	f := parseFilterRequest(r)
	platform, rng, ok := h.resolveFilter(w, &f)
	if !ok {
		return brandQuery{}, false
	}

	return brandQuery{BrandID: id, Platform: platform, Range: rng, Limit: f.Limit}, true
}
