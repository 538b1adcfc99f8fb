// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/socialpulse/internal/auth"
	"github.com/tomtom215/socialpulse/internal/authz"
	"github.com/tomtom215/socialpulse/internal/middleware"
	"github.com/tomtom215/socialpulse/internal/models"
)

// compressionLevel is the gzip level for JSON responses.
const compressionLevel = 5

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	authn         *auth.Middleware
	authz         *authz.Middleware
}

// NewRouter creates a router. authz may be nil, in which case every
// authenticated user may call every endpoint.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, authn *auth.Middleware, authzMW *authz.Middleware) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		authn:         authn,
		authz:         authzMW,
	}
}

func (router *Router) authorize(next http.Handler) http.Handler {
	if router.authz == nil {
		return next
	}
	return router.authz.AuthorizeRequest(next)
}

// SetupChi builds the HTTP handler.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, outermost first.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer preflight
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimiddleware.Compress(compressionLevel, "application/json"))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	// Probes and metrics are public.
	r.Route("/api/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())

	// Credential endpoints.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitLogin())
		r.Post("/api/register", router.handler.Register)
		r.Post("/api/login", router.handler.Login)
	})
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("api"))
		r.Get("/api/logout", router.handler.Logout)
		r.Post("/api/logout", router.handler.Logout)
	})

	// Everything else requires a session.
	r.Group(func(r chi.Router) {
		r.Use(router.authn.Authenticate)
		r.Use(router.authorize)

		r.With(router.chiMiddleware.RateLimit("api")).Get("/api/auth/user", router.handler.CurrentUser)

		r.Route("/api/user/onboarding", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit("api"))
			r.Get("/", router.handler.OnboardingStatus)
			r.Post("/", router.handler.CompleteOnboarding)
			r.Delete("/", router.handler.ResetOnboarding)
		})

		r.With(router.chiMiddleware.RateLimit("api")).Get("/api/admin/audit", router.handler.AuditEvents)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitAnalytics())

			r.Get("/api/brands", router.handler.Brands)
			r.Get("/api/brands/audience-overlap", router.handler.AudienceOverlap)
			r.Route("/api/brands/{brandId}", func(r chi.Router) {
				r.Get("/", router.handler.Brand)
				r.Get("/summary", router.handler.Summary)
				r.Get("/topics", router.handler.Topics)
				r.Get("/metrics", router.handler.Metrics)
				r.Get("/frequency", router.handler.Frequency)
				r.Get("/content", router.handler.Content)
				r.Get("/hashtags", router.handler.Hashtags)
				r.Get("/demographics", router.handler.Demographics)
				r.Get("/sentiment", router.handler.Sentiment)
				r.Post("/sentiment/extract", router.handler.ExtractSentiment)
				r.Get("/content-strategy", router.handler.ContentStrategy)
				r.Get("/engagement-over-time", router.handler.EngagementOverTime)
			})

			r.Get("/api/hashtags/industry", router.handler.IndustryHashtags)
			r.Get("/api/hashtags/suggestions", router.handler.HashtagSuggestions)
		})
	})

	return r
}
