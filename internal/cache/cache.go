// Package cache provides an in-process TTL cache keyed by string.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	timestamp time.Time
}

// TTLCache stores values for a fixed time-to-live. It is safe for concurrent use.
//
// An entry is served while now - timestamp < ttl. When maxEntries is positive
// and the cache is full, Put evicts expired entries first and then the oldest one.
type TTLCache[V any] struct {
	mu         sync.Mutex
	entries    map[string]entry[V]
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	observe    func(hit bool)
}

// Option configures a TTLCache.
type Option func(*options)

type options struct {
	maxEntries int
	now        func() time.Time
	observe    func(hit bool)
}

// WithMaxEntries bounds the number of stored entries. Zero means unbounded.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		o.maxEntries = n
	}
}

// WithClock replaces time.Now as the cache clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithObserver registers a function called after every Get with whether it hit.
// It runs outside the cache lock.
func WithObserver(observe func(hit bool)) Option {
	return func(o *options) {
		o.observe = observe
	}
}

// New creates a TTLCache with the given time-to-live.
func New[V any](ttl time.Duration, opts ...Option) *TTLCache[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &TTLCache[V]{
		entries:    make(map[string]entry[V]),
		ttl:        ttl,
		maxEntries: o.maxEntries,
		now:        o.now,
		observe:    o.observe,
	}
}

// Get returns the value stored under key if it has not expired.
// An expired entry is removed.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	value, hit := c.get(key)
	if c.observe != nil {
		c.observe(hit)
	}
	return value, hit
}

func (c *TTLCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.fresh(e, c.now()) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores value under key with the current timestamp.
func (c *TTLCache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictExpired(now)
		if len(c.entries) >= c.maxEntries {
			c.evictOldest()
		}
	}
	c.entries[key] = entry[V]{value: value, timestamp: now}
}

// EvictExpired removes every expired entry and returns how many were removed.
func (c *TTLCache[V]) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictExpired(c.now())
}

// Len returns the number of stored entries, expired ones included.
func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Run evicts expired entries every interval until ctx is done.
func (c *TTLCache[V]) Run(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.EvictExpired(); n > 0 {
				logger.Debug("cache entries evicted",
					slog.Int("evicted", n),
					slog.Int("remaining", c.Len()),
				)
			}
		}
	}
}

func (c *TTLCache[V]) fresh(e entry[V], now time.Time) bool {
	return now.Sub(e.timestamp) < c.ttl
}

func (c *TTLCache[V]) evictExpired(now time.Time) int {
	removed := 0
	for key, e := range c.entries {
		if !c.fresh(e, now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *TTLCache[V]) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, e := range c.entries {
		if !found || e.timestamp.Before(oldest) {
			oldestKey, oldest, found = key, e.timestamp, true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}
