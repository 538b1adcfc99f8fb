// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/socialpulse/internal/config"
	"github.com/tomtom215/socialpulse/internal/logging"
	"github.com/tomtom215/socialpulse/internal/models"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// AuthModeNone disables token checks.
const AuthModeNone = "none"

type contextKey string

// ClaimsContextKey is the context key for authenticated claims.
const ClaimsContextKey contextKey = "claims"

// devClaims are attached to every request when AUTH_MODE=none.
var devClaims = Claims{
	Username: "developer",
	Role:     models.RoleAdmin,
	RegisteredClaims: jwt.RegisteredClaims{
		Subject: "local-dev",
	},
}

// Middleware authenticates requests and manages the session cookie.
type Middleware struct {
	jwtManager   *JWTManager
	authMode     string
	cookieSecure bool
}

// NewMiddleware creates the authentication middleware. jwtManager may be
// nil when the auth mode is "none".
func NewMiddleware(jwtManager *JWTManager, cfg *config.SecurityConfig) *Middleware {
	return &Middleware{
		jwtManager:   jwtManager,
		authMode:     cfg.AuthMode,
		cookieSecure: cfg.CookieSecure,
	}
}

// Authenticate rejects requests without a valid token and stores the claims
// in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.authMode == AuthModeNone {
			claims := devClaims
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), &claims)))
			return
		}

		token := TokenFromRequest(r)
		if token == "" {
			WriteError(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if m.jwtManager == nil {
			WriteError(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "Authentication unavailable")
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Rejected session token")
			WriteError(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func withClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, ClaimsContextKey, claims)
	return logging.ContextWithUserID(ctx, claims.UserID())
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

// TokenFromRequest reads the session cookie, then the Authorization header.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// SetSessionCookie stores the token in an HTTP-only cookie.
func (m *Middleware) SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func (m *Middleware) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// WriteError writes an error envelope. It is shared by the auth and authz
// middleware, which run before the API response helpers.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode error response")
	}
}
