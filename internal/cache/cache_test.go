// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/socialpulse/internal/metrics"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestCache(ttl time.Duration) (*Cache, *testClock) {
	clock := &testClock{t: time.Date(2025, 5, 29, 0, 0, 0, 0, time.UTC)}
	c := New("test", ttl)
	c.now = clock.now
	return c, clock
}

func TestCacheBasicOperations(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Fatal("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, exists := c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.TotalKeys != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 key", stats)
	}
	if rate := c.HitRate(); rate != 50 {
		t.Errorf("HitRate() = %v, want 50", rate)
	}
}

func TestCacheExpiration(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.Set("key1", "value1")
	c.SetWithTTL("key2", "value2", time.Hour)

	clock.advance(2 * time.Minute)

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
	if _, exists := c.Get("key2"); !exists {
		t.Error("Expected key2 to outlive the default TTL")
	}
	if stats := c.GetStats(); stats.Evictions != 1 || stats.TotalKeys != 1 {
		t.Errorf("stats = %+v, want 1 eviction, 1 key", stats)
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key3", "value3")

	c.Delete("key1")
	c.Delete("missing")
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}

	c.Clear()
	if _, exists := c.Get("key2"); exists {
		t.Error("Expected key2 to be cleared")
	}
	stats := c.GetStats()
	if stats.Evictions != 3 || stats.TotalKeys != 0 {
		t.Errorf("stats = %+v, want 3 evictions, 0 keys", stats)
	}
}

func TestCacheCleanup(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.Set("old", 1)
	clock.advance(30 * time.Second)
	c.Set("new", 2)
	clock.advance(45 * time.Second)

	c.cleanup()

	stats := c.GetStats()
	if stats.TotalKeys != 1 {
		t.Errorf("TotalKeys = %d, want 1", stats.TotalKeys)
	}
	if !stats.LastCleanup.Equal(clock.now()) {
		t.Errorf("LastCleanup = %v, want %v", stats.LastCleanup, clock.now())
	}
	if _, ok := c.Get("new"); !ok {
		t.Error("unexpired entry removed by cleanup")
	}
}

func TestCacheServeStopsOnCancel(t *testing.T) {
	c := New("serve", time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
	if c.String() != "cache-janitor-serve" {
		t.Errorf("String() = %q", c.String())
	}
}

func TestCacheMetrics(t *testing.T) {
	c := New("metrics-test", time.Minute)
	hits := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("metrics-test"))
	misses := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("metrics-test"))

	c.Set("k", "v")
	c.Get("k")
	c.Get("k")
	c.Get("absent")

	if got := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("metrics-test")) - hits; got != 2 {
		t.Errorf("hit delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("metrics-test")) - misses; got != 1 {
		t.Errorf("miss delta = %v, want 1", got)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New("concurrent", time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key%d", n%5)
			c.Set(key, n)
			c.Get(key)
			if n%7 == 0 {
				c.Delete(key)
			}
		}(i)
	}
	wg.Wait()
}

func TestGenerateKey(t *testing.T) {
	type params struct {
		BrandID  string
		Platform string
	}

	a := GenerateKey("summary", params{"1", "all"})
	b := GenerateKey("summary", params{"1", "all"})
	c := GenerateKey("summary", params{"2", "all"})
	d := GenerateKey("topics", params{"1", "all"})

	if a != b {
		t.Error("identical params should produce identical keys")
	}
	if a == c || a == d {
		t.Error("different params or methods should produce different keys")
	}
	if len(a) != len("summary:")+32 {
		t.Errorf("key %q has unexpected length", a)
	}

	if got := GenerateKey("bad", make(chan int)); got[:4] != "bad:" {
		t.Errorf("fallback key %q should keep the method prefix", got)
	}
}

func TestSweepInterval(t *testing.T) {
	tests := []struct {
		ttl  time.Duration
		want time.Duration
	}{
		{time.Minute, time.Minute},
		{time.Hour, DefaultCleanupInterval},
		{0, DefaultCleanupInterval},
	}
	for _, tt := range tests {
		if got := New("sweep", tt.ttl).sweepInterval(); got != tt.want {
			t.Errorf("sweepInterval(ttl=%v) = %v, want %v", tt.ttl, got, tt.want)
		}
	}
}
