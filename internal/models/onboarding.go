// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package models

// OnboardingPreferences is what a user chose while onboarding.
type OnboardingPreferences struct {
	BrandName   string   `json:"brandName" validate:"required,min=1,max=100"`
	Hashtags    []string `json:"hashtags" validate:"max=50,dive,required,max=100"`
	Competitors []string `json:"competitors" validate:"max=20,dive,required,max=100"`
	Platforms   []string `json:"platforms" validate:"required,min=1,dive,oneof=instagram tiktok youtube facebook twitter"`
}

// OnboardingStatus is the gate's view for one user.
type OnboardingStatus struct {
	UserID                 string                 `json:"userId"`
	State                  string                 `json:"state"`
	HasCompletedOnboarding bool                   `json:"hasCompletedOnboarding"`
	ShowOnboarding         bool                   `json:"showOnboarding"`
	Preferences            *OnboardingPreferences `json:"preferences,omitempty"`
}
