package cache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestTTLCache_GetPut(t *testing.T) {
	t.Run("hit within ttl", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1000, 0)}
		c := New[string](5*time.Minute, WithClock(clock.Now))

		c.Put("k", "v")
		clock.Advance(5*time.Minute - time.Millisecond)

		v, ok := c.Get("k")
		assert.True(t, ok)
		assert.Equal(t, "v", v)
	})

	t.Run("miss at exactly ttl", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1000, 0)}
		c := New[string](5*time.Minute, WithClock(clock.Now))

		c.Put("k", "v")
		clock.Advance(5 * time.Minute)

		_, ok := c.Get("k")
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("miss for unknown key", func(t *testing.T) {
		c := New[int](time.Minute)
		v, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Zero(t, v)
	})

	t.Run("put refreshes timestamp", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1000, 0)}
		c := New[string](time.Minute, WithClock(clock.Now))

		c.Put("k", "old")
		clock.Advance(50 * time.Second)
		c.Put("k", "new")
		clock.Advance(50 * time.Second)

		v, ok := c.Get("k")
		assert.True(t, ok)
		assert.Equal(t, "new", v)
	})

	t.Run("returns the stored pointer", func(t *testing.T) {
		c := New[*struct{ n int }](time.Minute)
		stored := &struct{ n int }{n: 1}
		c.Put("k", stored)

		got, ok := c.Get("k")
		assert.True(t, ok)
		assert.Same(t, stored, got)
	})
}

func TestTTLCache_EvictExpired(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := New[int](time.Minute, WithClock(clock.Now))

	c.Put("a", 1)
	clock.Advance(30 * time.Second)
	c.Put("b", 2)
	clock.Advance(31 * time.Second)

	assert.Equal(t, 1, c.EvictExpired())
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("b")
	assert.True(t, ok)
}

func TestTTLCache_MaxEntries(t *testing.T) {
	t.Run("evicts oldest when full", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1000, 0)}
		c := New[int](time.Hour, WithClock(clock.Now), WithMaxEntries(2))

		c.Put("a", 1)
		clock.Advance(time.Second)
		c.Put("b", 2)
		clock.Advance(time.Second)
		c.Put("c", 3)

		assert.Equal(t, 2, c.Len())
		_, ok := c.Get("a")
		assert.False(t, ok)
		_, ok = c.Get("c")
		assert.True(t, ok)
	})

	t.Run("prefers expired entries", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1000, 0)}
		c := New[int](time.Minute, WithClock(clock.Now), WithMaxEntries(2))

		c.Put("a", 1)
		clock.Advance(2 * time.Minute)
		c.Put("b", 2)
		c.Put("c", 3)

		assert.Equal(t, 2, c.Len())
		_, ok := c.Get("b")
		assert.True(t, ok)
	})

	t.Run("replacing a key does not evict", func(t *testing.T) {
		c := New[int](time.Hour, WithMaxEntries(1))
		c.Put("a", 1)
		c.Put("a", 2)

		v, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, v)
	})
}

func TestTTLCache_Observer(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	var hits, misses int
	c := New[string](time.Minute, WithClock(clock.Now), WithObserver(func(hit bool) {
		if hit {
			hits++
		} else {
			misses++
		}
	}))

	c.Get("k")
	c.Put("k", "v")
	c.Get("k")
	clock.Advance(time.Minute)
	c.Get("k")

	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
}

func TestTTLCache_Concurrent(t *testing.T) {
	c := New[int](time.Minute, WithMaxEntries(16))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%8)
			c.Put(key, i)
			c.Get(key)
			c.EvictExpired()
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 16)
}

func TestTTLCache_Run(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := New[string](time.Minute, WithClock(clock.Now))
	c.Put("old", "v")
	clock.Advance(2 * time.Minute)
	c.Put("new", "v")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx, 5*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
		close(done)
	}()

	assert.Eventually(t, func() bool { return c.Len() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	_, ok := c.Get("new")
	assert.True(t, ok)
}
