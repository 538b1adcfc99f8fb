// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/socialpulse/internal/config"
	"github.com/tomtom215/socialpulse/internal/metrics"
	"github.com/tomtom215/socialpulse/internal/models"
)

// ChiMiddlewareConfig holds the CORS policy and per-IP request budgets.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins   []string
	CORSAllowedMethods   []string
	CORSAllowedHeaders   []string
	CORSExposedHeaders   []string
	CORSAllowCredentials bool
	CORSMaxAge           int // seconds

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// NewChiMiddlewareConfig derives middleware settings from the security
// configuration. Credentials are allowed for explicit origins only, since
// browsers reject credentialed wildcard responses.
func NewChiMiddlewareConfig(cfg *config.SecurityConfig) *ChiMiddlewareConfig {
	allowCredentials := len(cfg.CORSOrigins) > 0 && !slices.Contains(cfg.CORSOrigins, "*")

	reqs, window := cfg.RateLimitReqs, cfg.RateLimitWindow
	if reqs <= 0 {
		reqs = RateLimitAPI.Requests
	}
	if window <= 0 {
		window = RateLimitAPI.Window
	}

	return &ChiMiddlewareConfig{
		CORSAllowedOrigins:   cfg.CORSOrigins,
		CORSAllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		CORSAllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID", "If-None-Match"},
		CORSExposedHeaders:   []string{"X-Request-ID", "ETag"},
		CORSAllowCredentials: allowCredentials,
		CORSMaxAge:           86400,

		RateLimitRequests: reqs,
		RateLimitWindow:   window,
		RateLimitDisabled: cfg.RateLimitDisabled,
	}
}

// ChiMiddleware hands out the CORS handler and rate limiters used by the router.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware builds the CORS handler once; limiters are built per route.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	return &ChiMiddleware{
		config: config,
		cors: cors.Handler(cors.Options{
			AllowedOrigins:   config.CORSAllowedOrigins,
			AllowedMethods:   config.CORSAllowedMethods,
			AllowedHeaders:   config.CORSAllowedHeaders,
			ExposedHeaders:   config.CORSExposedHeaders,
			AllowCredentials: config.CORSAllowCredentials,
			MaxAge:           config.CORSMaxAge,
		}),
	}
}

// CORS returns the go-chi/cors handler.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimitConfig defines rate limit parameters for specific endpoints.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Endpoint-specific rate limits.
var (
	// RateLimitLogin is strict for credential endpoints.
	RateLimitLogin = RateLimitConfig{Requests: 5, Window: 5 * time.Minute}

	// RateLimitAnalytics is permissive: a dashboard page loads many charts at once.
	RateLimitAnalytics = RateLimitConfig{Requests: 1000, Window: time.Minute}

	// RateLimitHealth leaves room for frequent probes.
	RateLimitHealth = RateLimitConfig{Requests: 1000, Window: time.Minute}

	// RateLimitAPI applies when RATE_LIMIT_REQUESTS is unset.
	RateLimitAPI = RateLimitConfig{Requests: 100, Window: time.Minute}
)

func passthrough(next http.Handler) http.Handler { return next }

// RateLimit applies the configured per-IP limit.
func (m *ChiMiddleware) RateLimit(endpoint string) func(http.Handler) http.Handler {
	return m.RateLimitCustom(endpoint, RateLimitConfig{
		Requests: m.config.RateLimitRequests,
		Window:   m.config.RateLimitWindow,
	})
}

// RateLimitCustom returns a per-IP limiter with a fixed budget. Rejections
// use the error envelope and are counted per endpoint group.
func (m *ChiMiddleware) RateLimitCustom(endpoint string, limit RateLimitConfig) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return passthrough
	}

	return httprate.Limit(
		limit.Requests,
		limit.Window,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			metrics.RecordRateLimitHit(endpoint)
			respondError(w, http.StatusTooManyRequests, models.ErrCodeTooManyRequests, "Too many requests, please retry later", nil)
		}),
	)
}

// RateLimitLogin returns the credential-endpoint limiter.
func (m *ChiMiddleware) RateLimitLogin() func(http.Handler) http.Handler {
	return m.RateLimitCustom("login", RateLimitLogin)
}

// RateLimitAnalytics returns the dashboard-read limiter.
func (m *ChiMiddleware) RateLimitAnalytics() func(http.Handler) http.Handler {
	return m.RateLimitCustom("analytics", RateLimitAnalytics)
}

// RateLimitHealth returns the probe limiter.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	return m.RateLimitCustom("health", RateLimitHealth)
}
