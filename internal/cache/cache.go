// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/socialpulse/internal/metrics"
)

// DefaultCleanupInterval is the longest Serve waits between sweeps. Caches
// with a shorter TTL sweep once per TTL.
const DefaultCleanupInterval = 5 * time.Minute

type entry struct {
	value   interface{}
	expires time.Time
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Cache is a concurrency-safe map of rendered responses with per-entry expiry.
type Cache struct {
	name string
	ttl  time.Duration
	now  func() time.Time

	hits   atomic.Int64
	misses atomic.Int64

	mu          sync.RWMutex
	entries     map[string]entry
	evictions   int64
	lastCleanup time.Time
}

// New creates a cache whose entries live for ttl. The name labels the
// hit and miss metrics.
func New(name string, ttl time.Duration) *Cache {
	return &Cache{
		name:        name,
		ttl:         ttl,
		now:         time.Now,
		entries:     make(map[string]entry),
		lastCleanup: time.Now(),
	}
}

// Get returns the value stored under key unless it has expired. An expired
// entry is evicted on the spot.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && !c.now().After(e.expires) {
		c.hits.Add(1)
		metrics.RecordCacheHit(c.name)
		return e.value, true
	}

	if ok {
		c.mu.Lock()
		// A concurrent Set may have replaced the stale entry.
		if cur, still := c.entries[key]; still && c.now().After(cur.expires) {
			delete(c.entries, key)
			c.evictions++
		}
		c.mu.Unlock()
	}
	c.misses.Add(1)
	metrics.RecordCacheMiss(c.name)
	return nil, false
}

// Set stores value for the cache's TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value for ttl.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expires: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Delete evicts key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.evictions++
	}
}

// Clear evicts everything. Handlers call it after derived data is rebuilt.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictions += int64(len(c.entries))
	c.entries = make(map[string]entry)
}

// GetStats returns a snapshot of the counters.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions,
		TotalKeys:   int64(len(c.entries)),
		LastCleanup: c.lastCleanup,
	}
}

// HitRate is hits as a percentage of lookups, or 0 before the first lookup.
func (c *Cache) HitRate() float64 {
	hits, misses := c.hits.Load(), c.misses.Load()
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) * 100 / float64(hits+misses)
}

func (c *Cache) sweepInterval() time.Duration {
	if c.ttl > 0 && c.ttl < DefaultCleanupInterval {
		return c.ttl
	}
	return DefaultCleanupInterval
}

// Serve sweeps expired entries until ctx is canceled. It implements
// suture.Service.
func (c *Cache) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.sweepInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// String names the service in supervisor logs.
func (c *Cache) String() string {
	return "cache-janitor-" + c.name
}

func (c *Cache) cleanup() {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, key)
			c.evictions++
		}
	}
	c.lastCleanup = now
}

// GenerateKey builds "<name>:<hash>" where the hash covers the JSON encoding
// of params. Params that cannot be encoded fall back to their %v form.
func GenerateKey(name string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", name, params)
	}
	sum := sha256.Sum256(data)
	return name + ":" + hex.EncodeToString(sum[:16])
}
