// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/wneessen/geokit/geo"
)

type cacheKey struct {
	Provider string
	Query    string
}

type cacheEntry struct {
	Location geo.Location
	Expiry   time.Time
}

// Cache is a Geocoder decorator that remembers results for a while. Successful
// lookups live for the hit TTL, failed lookups for the miss TTL. Failures caused by
// a cancelled or expired context are never cached.
type Cache struct {
	coder   Geocoder
	ttlHit  time.Duration
	ttlMiss time.Duration
	clock   clockwork.Clock

	mu    sync.RWMutex
	cache map[cacheKey]cacheEntry
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock replaces the clock the Cache uses to expire entries.
func WithClock(clock clockwork.Clock) CacheOption {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewCache wraps coder with a TTL cache. A non-positive TTL disables caching for the
// corresponding outcome.
func NewCache(coder Geocoder, ttlHit, ttlMiss time.Duration, opts ...CacheOption) *Cache {
	cache := &Cache{
		coder:   coder,
		ttlHit:  ttlHit,
		ttlMiss: ttlMiss,
		clock:   clockwork.NewRealClock(),
		cache:   make(map[cacheKey]cacheEntry),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// Name implements Geocoder.
func (c *Cache) Name() string {
	return "cache(" + c.coder.Name() + ")"
}

// Geocode implements Geocoder. Cached copies are returned with CacheHit set.
func (c *Cache) Geocode(ctx context.Context, query string) geo.Location {
	key := newKey(c.coder.Name(), query)

	c.mu.RLock()
	entry, ok := c.cache[key]
	if ok && c.clock.Now().Before(entry.Expiry) {
		location := entry.Location
		c.mu.RUnlock()
		location.CacheHit = true
		return location
	}
	c.mu.RUnlock()

	location := c.coder.Geocode(ctx, query)
	if errors.Is(location.Err, context.Canceled) || errors.Is(location.Err, context.DeadlineExceeded) {
		return location
	}

	ttl := c.ttlHit
	if !location.Success {
		ttl = c.ttlMiss
	}
	if ttl <= 0 {
		return location
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheEntry{
		Location: location,
		Expiry:   c.clock.Now().Add(ttl),
	}

	return location
}

// Len returns the number of entries held, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Prune removes all expired entries and returns how many were removed.
func (c *Cache) Prune() int {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.cache {
		if !now.Before(entry.Expiry) {
			delete(c.cache, key)
			removed++
		}
	}
	return removed
}

// normalizeQuery folds case and whitespace so trivially different spellings of the
// same query share an entry.
func normalizeQuery(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func newKey(provider, query string) cacheKey {
	return cacheKey{
		Provider: provider,
		Query:    normalizeQuery(query),
	}
}
