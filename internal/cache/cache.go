// Package cache holds server-fetched collections keyed by logical name, kept
// fresh by per-resource polling and manual invalidation after mutations.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

var ErrUnknownCollection = errors.New("unknown collection")

// FetchFunc loads the current remote state of a collection.
type FetchFunc func(ctx context.Context) (interface{}, error)

type collection struct {
	name      string
	interval  time.Duration
	fetch     FetchFunc
	value     interface{}
	seq       uint64 // last refresh sequence handed out
	applied   uint64 // sequence of the value currently held
	fetchedAt time.Time
}

// Cache is the remote-collection cache. Each refresh carries a monotonic
// sequence number; a refresh that resolves after a newer one has been applied
// is discarded, so a superseded in-flight request can never overwrite newer
// state.
type Cache struct {
	mu          sync.RWMutex
	collections map[string]*collection
	subscribers []func(name string)
}

func New() *Cache {
	return &Cache{collections: map[string]*collection{}}
}

// Register adds a named collection with its polling interval.
func (c *Cache) Register(name string, interval time.Duration, fetch FetchFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collections[name] = &collection{name: name, interval: interval, fetch: fetch}
}

// Get returns the last-known value of a collection. It may be stale or nil if
// no refresh has succeeded yet; callers render what they have.
func (c *Cache) Get(name string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	col, ok := c.collections[name]
	if !ok || col.applied == 0 {
		return nil, false
	}
	return col.value, true
}

// Subscribe registers a callback invoked after every applied update.
func (c *Cache) Subscribe(fn func(name string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Refresh fetches a collection once. On fetch failure the last-known value is
// kept and the error returned; on a fenced (superseded) completion the result
// is dropped silently.
func (c *Cache) Refresh(ctx context.Context, name string) error {
	c.mu.Lock()
	col, ok := c.collections[name]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	col.seq++
	seq := col.seq
	fetch := col.fetch
	c.mu.Unlock()

	value, err := fetch(ctx)
	if err != nil {
		log.Printf("failed to load %s, keeping last-known data: %v", name, err)
		return fmt.Errorf("failed to load %s: %w", name, err)
	}

	c.mu.Lock()
	if seq <= col.applied {
		// A newer refresh already landed; this result is stale.
		c.mu.Unlock()
		return nil
	}
	col.value = value
	col.applied = seq
	col.fetchedAt = time.Now()
	subscribers := make([]func(string), len(c.subscribers))
	copy(subscribers, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subscribers {
		fn(name)
	}
	return nil
}

// Invalidate forces an immediate refetch, used after every acknowledged
// mutation.
func (c *Cache) Invalidate(ctx context.Context, name string) error {
	return c.Refresh(ctx, name)
}

// Start launches one polling loop per registered collection and blocks until
// ctx is cancelled.
func (c *Cache) Start(ctx context.Context) {
	c.mu.RLock()
	names := make([]string, 0, len(c.collections))
	intervals := make([]time.Duration, 0, len(c.collections))
	for name, col := range c.collections {
		names = append(names, name)
		intervals = append(intervals, col.interval)
	}
	c.mu.RUnlock()

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(name string, interval time.Duration) {
			defer wg.Done()
			c.poll(ctx, name, interval)
		}(name, intervals[i])
	}
	wg.Wait()
}

func (c *Cache) poll(ctx context.Context, name string, interval time.Duration) {
	if err := c.Refresh(ctx, name); err != nil {
		log.Printf("initial refresh of %s failed: %v", name, err)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Refresh(ctx, name)
		}
	}
}
