// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package auth

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLockout(maxAttempts int) (*Lockout, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 5, 29, 12, 0, 0, 0, time.UTC)}
	l := NewLockout(LockoutConfig{
		MaxAttempts:        maxAttempts,
		LockoutDuration:    time.Minute,
		MaxLockoutDuration: 3 * time.Minute,
	})
	l.now = clock.now
	return l, clock
}

func TestLockoutLocksAfterMaxAttempts(t *testing.T) {
	l, clock := newTestLockout(3)

	for i := 1; i < 3; i++ {
		if locked, _ := l.RecordFailure("analyst"); locked {
			t.Fatalf("locked after %d failures, want 3", i)
		}
	}
	locked, d := l.RecordFailure("Analyst")
	if !locked || d != time.Minute {
		t.Fatalf("RecordFailure() = %v, %v; want true, 1m", locked, d)
	}

	if locked, remaining := l.Locked("ANALYST"); !locked || remaining != time.Minute {
		t.Errorf("Locked() = %v, %v; want true, 1m", locked, remaining)
	}

	clock.t = clock.t.Add(61 * time.Second)
	if locked, _ := l.Locked("analyst"); locked {
		t.Error("Locked() still true after the lockout expired")
	}
}

func TestLockoutBackoffIsCapped(t *testing.T) {
	l, clock := newTestLockout(1)

	want := []time.Duration{time.Minute, 2 * time.Minute, 3 * time.Minute, 3 * time.Minute}
	for i, w := range want {
		locked, d := l.RecordFailure("analyst")
		if !locked || d != w {
			t.Fatalf("lockout %d = %v, %v; want true, %v", i+1, locked, d, w)
		}
		clock.t = clock.t.Add(d)
	}
}

func TestLockoutFailureWhileLocked(t *testing.T) {
	l, clock := newTestLockout(1)
	l.RecordFailure("analyst")

	clock.t = clock.t.Add(20 * time.Second)
	locked, remaining := l.RecordFailure("analyst")
	if !locked || remaining != 40*time.Second {
		t.Errorf("RecordFailure() while locked = %v, %v; want true, 40s", locked, remaining)
	}
}

func TestLockoutSuccessClears(t *testing.T) {
	l, _ := newTestLockout(2)
	l.RecordFailure("analyst")
	l.RecordSuccess("analyst")

	if locked, _ := l.RecordFailure("analyst"); locked {
		t.Error("counter not reset by RecordSuccess")
	}
}

func TestNewLockoutDefaults(t *testing.T) {
	l := NewLockout(LockoutConfig{})
	def := DefaultLockoutConfig()
	if l.cfg != def {
		t.Errorf("cfg = %+v, want %+v", l.cfg, def)
	}
}
