// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/listenwell/internal/metrics"
)

// Entry represents a cached item with expiration
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Cache is a thread-safe in-memory cache with a single TTL. Expired entries
// are dropped lazily on Get and by a background sweep until Close.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time

	// flight collapses concurrent misses on one key into one compute.
	flight singleflight.Group

	statsMu sync.Mutex
	stats   Stats

	stop      chan struct{}
	closeOnce sync.Once
}

// Stats tracks cache performance metrics
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a cache whose entries live for ttl. The sweep runs every ttl,
// but never more often than once a second.
//
// Example:
//
//	c := cache.New(30 * time.Second)
//	defer c.Close()
//	stats, _, err := c.Do("stats", cache.GenerateKey("stats", params), compute)
func New(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	c.stats.LastCleanup = c.now()

	interval := ttl
	if interval < time.Second {
		interval = time.Second
	}
	go c.cleanupLoop(interval)

	return c
}

// Close stops the background sweep. The cache stays usable.
func (c *Cache) Close() {
	c.closeOnce.Do(func() { close(c.stop) })
}

// TTL returns the entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get retrieves a value, treating an expired entry as a miss and removing it.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.record(func(s *Stats) { s.Misses++ })
		return nil, false
	}

	if c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		// Only drop the entry if nobody refreshed it meanwhile.
		if current, ok := c.entries[key]; ok && current.ExpiresAt.Equal(entry.ExpiresAt) {
			delete(c.entries, key)
		}
		keys := int64(len(c.entries))
		c.mu.Unlock()
		c.record(func(s *Stats) {
			s.Misses++
			s.Evictions++
			s.TotalKeys = keys
		})
		return nil, false
	}

	c.record(func(s *Stats) { s.Hits++ })
	return entry.Data, true
}

// Set stores a value with the cache TTL, overwriting any existing entry.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = Entry{
		Data:      value,
		ExpiresAt: c.now().Add(c.ttl),
	}
	keys := int64(len(c.entries))
	c.mu.Unlock()

	c.record(func(s *Stats) { s.TotalKeys = keys })
}

// Delete removes a key from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	keys := int64(len(c.entries))
	c.mu.Unlock()

	c.record(func(s *Stats) {
		if existed {
			s.Evictions++
		}
		s.TotalKeys = keys
	})
}

// Do returns the cached value for key or computes, stores and returns it.
// view labels the hit/miss metrics. Errors are returned and never cached.
// Concurrent misses on the same key share one compute call and its result.
func (c *Cache) Do(view, key string, compute func() (interface{}, error)) (value interface{}, cached bool, err error) {
	if v, ok := c.Get(key); ok {
		metrics.RecordCacheLookup(view, true)
		return v, true, nil
	}
	metrics.RecordCacheLookup(view, false)

	v, err, _ := c.flight.Do(key, func() (interface{}, error) {
		// A flight that finished between Get and here already stored the value.
		if v, ok := c.fresh(key); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v, false, nil
}

// fresh looks key up without touching the statistics.
func (c *Cache) fresh(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Data, true
}

// GetStats returns a copy of the statistics.
func (c *Cache) GetStats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// HitRate returns hits as a percentage of lookups, or 0 with no lookups.
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

func (c *Cache) record(update func(*Stats)) {
	c.statsMu.Lock()
	update(&c.stats)
	c.statsMu.Unlock()
}

func (c *Cache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

// cleanup removes every expired entry.
func (c *Cache) cleanup() {
	now := c.now()
	c.mu.Lock()
	evictions := int64(0)
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evictions++
		}
	}
	keys := int64(len(c.entries))
	c.mu.Unlock()

	c.record(func(s *Stats) {
		s.Evictions += evictions
		s.TotalKeys = keys
		s.LastCleanup = now
	})
}

// GenerateKey builds a compact key from a view name and its parameters.
// Equal parameters always produce equal keys.
func GenerateKey(view string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", view, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", view, hash[:16])
}
