// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/socialpulse/internal/audit"
	"github.com/tomtom215/socialpulse/internal/auth"
	"github.com/tomtom215/socialpulse/internal/logging"
	"github.com/tomtom215/socialpulse/internal/models"
)

// startSession issues a token for the user and sets the session cookie.
// Without a JWT manager (auth mode none) no cookie is set.
func (h *Handler) startSession(w http.ResponseWriter, user *models.User) error {
	if h.jwt == nil || h.session == nil {
		return nil
	}
	token, err := h.jwt.GenerateToken(user)
	if err != nil {
		return err
	}
	h.session.SetSessionCookie(w, token, h.jwt.Timeout())
	return nil
}

// Register creates a viewer account and logs it in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.users == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUnavailable, "User store not available", nil)
		return
	}

	var req models.RegisterRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Invalid request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Password, models.RoleViewer)
	if errors.Is(err, auth.ErrUserExists) {
		respondError(w, http.StatusConflict, models.ErrCodeConflict, "Username already taken", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to register user", err)
		return
	}

	if err := h.startSession(w, user); err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to create session", err)
		return
	}

	h.audit.Record(r, audit.EventTypeUserCreated, audit.OutcomeSuccess, actorFromUser(user), "Account registered", nil)
	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("User registered")
	respondData(w, r, user, start, false)
}

// Login verifies credentials, applying per-username lockout, and sets the
// session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.users == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUnavailable, "User store not available", nil)
		return
	}

	var req models.LoginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Invalid request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	attempted := audit.Actor{Name: req.Username}
	if locked, remaining := h.lockout.Locked(req.Username); locked {
		h.audit.Record(r, audit.EventTypeAuthFailure, audit.OutcomeFailure, attempted, "Login rejected, account locked", nil)
		respondLocked(w, remaining)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		if locked, remaining := h.lockout.RecordFailure(req.Username); locked {
			h.audit.Record(r, audit.EventTypeAuthLockout, audit.OutcomeFailure, attempted, "Account locked after failed logins",
				map[string]interface{}{"lockedForSeconds": int(math.Ceil(remaining.Seconds()))})
			respondLocked(w, remaining)
			return
		}
		h.audit.Record(r, audit.EventTypeAuthFailure, audit.OutcomeFailure, attempted, "Invalid credentials", nil)
		respondError(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "Invalid username or password", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to authenticate", err)
		return
	}
	h.lockout.RecordSuccess(req.Username)

	if err := h.startSession(w, user); err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to create session", err)
		return
	}

	h.audit.Record(r, audit.EventTypeAuthSuccess, audit.OutcomeSuccess, actorFromUser(user), "Logged in", nil)
	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("User logged in")
	respondData(w, r, user, start, false)
}

func respondLocked(w http.ResponseWriter, remaining time.Duration) {
	w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(remaining.Seconds()))))
	respondError(w, http.StatusLocked, models.ErrCodeLocked,
		"Too many failed login attempts, try again later", nil)
}

// Logout clears the session cookie. It succeeds without a session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if actor, ok := h.sessionActor(r); ok {
		h.audit.Record(r, audit.EventTypeLogout, audit.OutcomeSuccess, actor, "Logged out", nil)
	}
	if h.session != nil {
		h.session.ClearSessionCookie(w)
	}
	respondData(w, r, map[string]bool{"loggedOut": true}, time.Now(), false)
}

// CurrentUser returns the authenticated user.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "Authentication required", nil)
		return
	}

	if h.users != nil {
		user, err := h.users.GetByID(r.Context(), claims.UserID())
		if err == nil {
			respondData(w, r, user, start, false)
			return
		}
		if !errors.Is(err, auth.ErrUserNotFound) {
			respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to load user", err)
			return
		}
	}

	// Auth mode none has no stored user.
	respondData(w, r, &models.User{
		ID:       claims.UserID(),
		Username: claims.Username,
		Role:     claims.Role,
	}, start, false)
}

// sessionActor identifies the caller of an unauthenticated route from its
// session token, if it carries a valid one.
func (h *Handler) sessionActor(r *http.Request) (audit.Actor, bool) {
	if h.jwt == nil {
		return audit.Actor{}, false
	}
	token := auth.TokenFromRequest(r)
	if token == "" {
		return audit.Actor{}, false
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		return audit.Actor{}, false
	}
	return audit.Actor{ID: claims.UserID(), Name: claims.Username, Role: claims.Role}, true
}
