// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/socialpulse/internal/audit"
	"github.com/tomtom215/socialpulse/internal/auth"
	"github.com/tomtom215/socialpulse/internal/models"
	"github.com/tomtom215/socialpulse/internal/onboarding"
)

// onboardingUser returns the caller's user ID, writing the error response
// when there is none.
func (h *Handler) onboardingUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	if h.onboarding == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUnavailable, "Onboarding store not available", nil)
		return "", false
	}
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || claims.UserID() == "" {
		respondError(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "Authentication required", nil)
		return "", false
	}
	return claims.UserID(), true
}

func respondOnboardingError(w http.ResponseWriter, err error) {
	if errors.Is(err, onboarding.ErrUserRequired) {
		respondError(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "Authentication required", nil)
		return
	}
	respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Onboarding store error", err)
}

// OnboardingStatus reports whether the caller still has to onboard.
func (h *Handler) OnboardingStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := h.onboardingUser(w, r)
	if !ok {
		return
	}
	status, err := h.onboarding.Status(r.Context(), userID)
	if err != nil {
		respondOnboardingError(w, err)
		return
	}
	respondData(w, r, status, start, false)
}

// CompleteOnboarding saves the caller's preferences and closes the gate.
func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := h.onboardingUser(w, r)
	if !ok {
		return
	}

	var prefs models.OnboardingPreferences
	if err := decodeJSONBody(w, r, &prefs); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Invalid request body", nil)
		return
	}
	if apiErr := validateRequest(&prefs); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	status, err := h.onboarding.Complete(r.Context(), userID, prefs)
	if err != nil {
		respondOnboardingError(w, err)
		return
	}
	h.audit.Record(r, audit.EventTypeOnboardingCompleted, audit.OutcomeSuccess, actorFromClaims(r), "Onboarding completed", nil)
	respondData(w, r, status, start, false)
}

// ResetOnboarding reopens the gate for the caller.
func (h *Handler) ResetOnboarding(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := h.onboardingUser(w, r)
	if !ok {
		return
	}
	status, err := h.onboarding.Reset(r.Context(), userID)
	if err != nil {
		respondOnboardingError(w, err)
		return
	}
	h.audit.Record(r, audit.EventTypeOnboardingReset, audit.OutcomeSuccess, actorFromClaims(r), "Onboarding reset", nil)
	respondData(w, r, status, start, false)
}
