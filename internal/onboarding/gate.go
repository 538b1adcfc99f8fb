// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package onboarding

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/socialpulse/internal/metrics"
)

// CompletedValue is the stored value marking onboarding as finished.
const CompletedValue = "true"

// ErrUserRequired is returned when a transition is attempted without a user.
var ErrUserRequired = errors.New("onboarding: no authenticated user")

// KeyFor returns the store key holding userID's completion flag.
func KeyFor(userID string) string {
	return "onboarding_completed_" + userID
}

// State of the gate for the current user.
type State string

const (
	// StateUnknown means no user is authenticated; the gate is not evaluated.
	StateUnknown State = "unknown"
	// StateNeedsOnboarding means the user has no completion flag.
	StateNeedsOnboarding State = "needs_onboarding"
	// StateCompleted means the completion flag is set.
	StateCompleted State = "completed"
)

// Gate decides whether to show onboarding to one user. A Gate is not safe for
// concurrent use; create one per request or session.
type Gate struct {
	store  KVStore
	userID string
	state  State
}

// NewGate returns a gate in StateUnknown.
func NewGate(store KVStore) *Gate {
	return &Gate{store: store, state: StateUnknown}
}

// Init derives the state for userID from the store. An empty userID resets
// the gate to StateUnknown. On a store error the gate is left unknown.
func (g *Gate) Init(ctx context.Context, userID string) error {
	g.userID = userID
	g.state = StateUnknown
	if userID == "" {
		return nil
	}

	v, ok, err := g.store.Get(ctx, KeyFor(userID))
	if err != nil {
		return fmt.Errorf("read onboarding flag: %w", err)
	}
	if ok && v == CompletedValue {
		g.state = StateCompleted
	} else {
		g.state = StateNeedsOnboarding
	}
	return nil
}

// Complete persists the completion flag. Completing twice is a no-op.
func (g *Gate) Complete(ctx context.Context) error {
	if g.state == StateUnknown {
		return ErrUserRequired
	}
	if err := g.store.Set(ctx, KeyFor(g.userID), CompletedValue); err != nil {
		return fmt.Errorf("save onboarding flag: %w", err)
	}
	if g.state != StateCompleted {
		metrics.RecordOnboardingTransition("complete")
	}
	g.state = StateCompleted
	return nil
}

// Reset clears the completion flag so onboarding is shown again.
func (g *Gate) Reset(ctx context.Context) error {
	if g.state == StateUnknown {
		return ErrUserRequired
	}
	if err := g.store.Delete(ctx, KeyFor(g.userID)); err != nil {
		return fmt.Errorf("clear onboarding flag: %w", err)
	}
	if g.state != StateNeedsOnboarding {
		metrics.RecordOnboardingTransition("reset")
	}
	g.state = StateNeedsOnboarding
	return nil
}

// State returns the current state.
func (g *Gate) State() State { return g.state }

// UserID returns the user the gate was initialised for.
func (g *Gate) UserID() string { return g.userID }

// HasCompletedOnboarding reports whether the flag is set.
func (g *Gate) HasCompletedOnboarding() bool { return g.state == StateCompleted }

// ShowOnboarding reports whether the onboarding flow should be displayed.
// It is false while no user is known.
func (g *Gate) ShowOnboarding() bool { return g.state == StateNeedsOnboarding }
