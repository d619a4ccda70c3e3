// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// memoryEntry is a cached fragment and the moment it stops being valid.
type memoryEntry struct {
	html    []byte
	expires time.Time
}

// MemoryFragmentCache is a concurrency-safe in-process fragment cache,
// used when no Valkey server is reachable. Expired entries are dropped
// lazily on read.
type MemoryFragmentCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryFragmentCache creates an empty cache. A nil now uses time.Now.
func NewMemoryFragmentCache(now func() time.Time) *MemoryFragmentCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryFragmentCache{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

// Get returns a cached fragment that has not expired.
func (c *MemoryFragmentCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expires) {
		c.mu.Lock()
		// Another writer may have refreshed the entry in the meantime.
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expires) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		slog.Debug("fragment expired", "key", key)
		return nil, false
	}
	return e.html, true
}

// Set stores a fragment for ttl. A ttl of zero or less stores nothing.
func (c *MemoryFragmentCache) Set(_ context.Context, key string, html []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{html: html, expires: c.now().Add(ttl)}
}
