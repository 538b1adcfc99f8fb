// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package audit

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// DefaultMaxEvents bounds the memory store.
const DefaultMaxEvents = 10000

// MemoryStore keeps recent events in arrival order. Once capacity is reached
// the oldest tenth is discarded to make room.
type MemoryStore struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
}

// NewMemoryStore creates a store for at most capacity events; a
// non-positive capacity takes DefaultMaxEvents.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMaxEvents
	}
	return &MemoryStore{events: make([]Event, 0, capacity), capacity: capacity}
}

func (s *MemoryStore) Save(_ context.Context, event *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.events) >= s.capacity {
		s.events = slices.Delete(s.events, 0, max(s.capacity/10, 1))
	}
	s.events = append(s.events, *event)
	return nil
}

// Query returns matching events, newest first, never nil.
func (s *MemoryStore) Query(_ context.Context, filter QueryFilter) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Event{}
	for i := len(s.events) - 1; i >= 0; i-- {
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
		if filter.admits(&s.events[i]) {
			out = append(out, s.events[i])
		}
	}
	return out, nil
}

// admits reports whether e passes every criterion set on f.
func (f *QueryFilter) admits(e *Event) bool {
	switch {
	case len(f.Types) > 0 && !slices.Contains(f.Types, e.Type):
		return false
	case f.Outcome != "" && e.Outcome != f.Outcome:
		return false
	case f.ActorName != "" && !strings.EqualFold(e.Actor.Name, f.ActorName):
		return false
	case !f.Since.IsZero() && e.Timestamp.Before(f.Since):
		return false
	}
	return true
}

// Delete drops events stamped before olderThan.
func (s *MemoryStore) Delete(_ context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.events)
	s.events = slices.DeleteFunc(s.events, func(e Event) bool {
		return e.Timestamp.Before(olderThan)
	})
	return int64(before - len(s.events)), nil
}

// Len returns the number of stored events.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
