// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package onboarding

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/socialpulse/internal/logging"
	"github.com/tomtom215/socialpulse/internal/models"
)

// PreferencesKeyFor returns the store key holding userID's onboarding answers.
func PreferencesKeyFor(userID string) string {
	return "onboarding_preferences_" + userID
}

// Service runs the gate for HTTP requests and keeps the answers users give
// during onboarding.
type Service struct {
	store KVStore
}

// NewService creates a Service over store.
func NewService(store KVStore) *Service {
	return &Service{store: store}
}

func (s *Service) gate(ctx context.Context, userID string) (*Gate, error) {
	g := NewGate(s.store)
	if err := g.Init(ctx, userID); err != nil {
		return nil, err
	}
	return g, nil
}

// Status reports the gate for userID along with any saved preferences.
func (s *Service) Status(ctx context.Context, userID string) (models.OnboardingStatus, error) {
	g, err := s.gate(ctx, userID)
	if err != nil {
		return models.OnboardingStatus{}, err
	}
	status := statusOf(g)
	if g.State() == StateUnknown {
		return status, nil
	}

	prefs, err := s.preferences(ctx, userID)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("Ignoring unreadable onboarding preferences")
	}
	status.Preferences = prefs
	return status, nil
}

// Complete stores prefs and marks onboarding as finished.
func (s *Service) Complete(ctx context.Context, userID string, prefs models.OnboardingPreferences) (models.OnboardingStatus, error) {
	g, err := s.gate(ctx, userID)
	if err != nil {
		return models.OnboardingStatus{}, err
	}
	if g.State() == StateUnknown {
		return models.OnboardingStatus{}, ErrUserRequired
	}

	data, err := json.Marshal(prefs)
	if err != nil {
		return models.OnboardingStatus{}, fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.store.Set(ctx, PreferencesKeyFor(userID), string(data)); err != nil {
		return models.OnboardingStatus{}, fmt.Errorf("save preferences: %w", err)
	}
	if err := g.Complete(ctx); err != nil {
		return models.OnboardingStatus{}, err
	}

	logging.Ctx(ctx).Info().
		Str("user_id", userID).
		Str("brand", prefs.BrandName).
		Int("hashtags", len(prefs.Hashtags)).
		Int("competitors", len(prefs.Competitors)).
		Strs("platforms", prefs.Platforms).
		Msg("Onboarding completed")

	status := statusOf(g)
	status.Preferences = &prefs
	return status, nil
}

// Reset clears the completion flag. Saved preferences are kept so the flow
// can be pre-filled next time.
func (s *Service) Reset(ctx context.Context, userID string) (models.OnboardingStatus, error) {
	g, err := s.gate(ctx, userID)
	if err != nil {
		return models.OnboardingStatus{}, err
	}
	if err := g.Reset(ctx); err != nil {
		return models.OnboardingStatus{}, err
	}
	return statusOf(g), nil
}

func (s *Service) preferences(ctx context.Context, userID string) (*models.OnboardingPreferences, error) {
	raw, ok, err := s.store.Get(ctx, PreferencesKeyFor(userID))
	if err != nil || !ok {
		return nil, err
	}
	var prefs models.OnboardingPreferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return &prefs, nil
}

func statusOf(g *Gate) models.OnboardingStatus {
	return models.OnboardingStatus{
		UserID:                 g.UserID(),
		State:                  string(g.State()),
		HasCompletedOnboarding: g.HasCompletedOnboarding(),
		ShowOnboarding:         g.ShowOnboarding(),
	}
}
