// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package auth

import (
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/socialpulse/internal/logging"
)

// LockoutConfig holds configuration for failed-login lockout.
type LockoutConfig struct {
	// MaxAttempts is the number of failed attempts before lockout.
	MaxAttempts int

	// LockoutDuration is the base lockout period.
	LockoutDuration time.Duration

	// MaxLockoutDuration caps the doubled period for repeat offenders.
	MaxLockoutDuration time.Duration
}

// DefaultLockoutConfig returns sensible defaults.
func DefaultLockoutConfig() LockoutConfig {
	return LockoutConfig{
		MaxAttempts:        5,
		LockoutDuration:    15 * time.Minute,
		MaxLockoutDuration: 24 * time.Hour,
	}
}

type lockoutEntry struct {
	failedAttempts int
	lockoutCount   int
	lockedUntil    time.Time
}

// Lockout tracks failed logins per username in memory.
type Lockout struct {
	cfg     LockoutConfig
	mu      sync.Mutex
	entries map[string]*lockoutEntry
	now     func() time.Time
}

// NewLockout creates a lockout tracker. Zero fields take defaults.
func NewLockout(cfg LockoutConfig) *Lockout {
	def := DefaultLockoutConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = def.LockoutDuration
	}
	if cfg.MaxLockoutDuration < cfg.LockoutDuration {
		cfg.MaxLockoutDuration = def.MaxLockoutDuration
	}
	return &Lockout{
		cfg:     cfg,
		entries: make(map[string]*lockoutEntry),
		now:     time.Now,
	}
}

// lockoutDuration doubles the base period for each previous lockout.
func (l *Lockout) lockoutDuration(lockoutCount int) time.Duration {
	d := l.cfg.LockoutDuration
	for i := 0; i < lockoutCount && d < l.cfg.MaxLockoutDuration; i++ {
		d *= 2
	}
	if d > l.cfg.MaxLockoutDuration {
		return l.cfg.MaxLockoutDuration
	}
	return d
}

// Locked reports whether the username is locked and for how much longer.
func (l *Lockout) Locked(username string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[strings.ToLower(username)]
	if !ok {
		return false, 0
	}
	remaining := e.lockedUntil.Sub(l.now())
	if remaining <= 0 {
		return false, 0
	}
	return true, remaining
}

// RecordFailure counts a failed attempt and returns whether it triggered
// or extended a lockout.
func (l *Lockout) RecordFailure(username string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := strings.ToLower(username)
	e, ok := l.entries[key]
	if !ok {
		e = &lockoutEntry{}
		l.entries[key] = e
	}

	now := l.now()
	if now.Before(e.lockedUntil) {
		return true, e.lockedUntil.Sub(now)
	}

	e.failedAttempts++
	if e.failedAttempts < l.cfg.MaxAttempts {
		return false, 0
	}

	d := l.lockoutDuration(e.lockoutCount)
	e.lockedUntil = now.Add(d)
	e.lockoutCount++
	e.failedAttempts = 0

	logging.Warn().
		Str("username", username).
		Dur("duration", d).
		Int("lockout_count", e.lockoutCount).
		Msg("Account locked")

	return true, d
}

// RecordSuccess clears the tracking state for the username.
func (l *Lockout) RecordSuccess(username string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, strings.ToLower(username))
}
