// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/socialpulse/internal/analytics"
	"github.com/tomtom215/socialpulse/internal/audit"
	"github.com/tomtom215/socialpulse/internal/auth"
	"github.com/tomtom215/socialpulse/internal/cache"
	"github.com/tomtom215/socialpulse/internal/models"
	"github.com/tomtom215/socialpulse/internal/onboarding"
)

// SentimentStore serves cached sentiment records and rebuilds them on demand.
// *sentiment.Analyzer is the production implementation.
type SentimentStore interface {
	Records(ctx context.Context, brandID int, platform models.Platform, r analytics.DateRange) []models.SentimentRecord
	Refresh(ctx context.Context) (models.ExtractResult, error)
}

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// HandlerDeps wires the handler to its collaborators.
type HandlerDeps struct {
	Analytics  *analytics.Service
	Sentiment  SentimentStore
	Users      *auth.UserStore
	JWT        *auth.JWTManager
	Session    *auth.Middleware
	Lockout    *auth.Lockout
	Onboarding *onboarding.Service
	Cache      *cache.Cache
	Audit      *audit.Logger
	Version    string

	// DataVersion keys cached chart responses; nil treats the data as fixed.
	DataVersion DataVersion

	// Readiness maps dependency names to their probes.
	Readiness map[string]ReadinessCheck
}

// Handler implements every HTTP endpoint.
type Handler struct {
	analytics   *analytics.Service
	sentiment   SentimentStore
	users       *auth.UserStore
	jwt         *auth.JWTManager
	session     *auth.Middleware
	lockout     *auth.Lockout
	onboarding  *onboarding.Service
	cache       *cache.Cache
	dataVersion DataVersion
	audit       *audit.Logger
	version     string
	readiness   map[string]ReadinessCheck
	startTime   time.Time
}

// NewHandler creates a handler. A nil Lockout gets the default policy.
func NewHandler(deps HandlerDeps) *Handler {
	lockout := deps.Lockout
	if lockout == nil {
		lockout = auth.NewLockout(auth.DefaultLockoutConfig())
	}
	return &Handler{
		analytics:   deps.Analytics,
		sentiment:   deps.Sentiment,
		users:       deps.Users,
		jwt:         deps.JWT,
		session:     deps.Session,
		lockout:     lockout,
		onboarding:  deps.Onboarding,
		cache:       deps.Cache,
		dataVersion: deps.DataVersion,
		audit:       deps.Audit,
		version:     deps.Version,
		readiness:   deps.Readiness,
		startTime:   time.Now(),
	}
}

// ClearCache drops every cached response. Called after derived data is rebuilt.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
	}
}

// actorFromClaims identifies the authenticated caller for the audit trail.
func actorFromClaims(r *http.Request) audit.Actor {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return audit.Actor{}
	}
	return audit.Actor{ID: claims.UserID(), Name: claims.Username, Role: claims.Role}
}

func actorFromUser(user *models.User) audit.Actor {
	return audit.Actor{ID: user.ID, Name: user.Username, Role: user.Role}
}
