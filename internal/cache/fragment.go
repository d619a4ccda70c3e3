// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// fragment.go provides a Valkey-backed cache for rendered HTML fragments
// such as sidebar widgets. Each entry carries its own lifetime, chosen by
// the widget that stores it.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// fragmentKeyPrefix is the Valkey key prefix for cached fragments.
const fragmentKeyPrefix = "fragment:"

// FragmentCache stores rendered fragments in Valkey.
type FragmentCache struct {
	client *redis.Client
}

// NewFragmentCache creates a fragment cache backed by the given Valkey client.
func NewFragmentCache(client *redis.Client) *FragmentCache {
	return &FragmentCache{client: client}
}

// Get returns a cached fragment. Backend errors are logged and reported as a miss.
func (fc *FragmentCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := fc.client.Get(ctx, fragmentKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		slog.Debug("fragment cache miss", "key", key)
		return nil, false
	}
	if err != nil {
		slog.Warn("fragment cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("fragment cache hit", "key", key)
	return val, true
}

// Set stores a fragment for ttl. A ttl of zero or less stores nothing.
func (fc *FragmentCache) Set(ctx context.Context, key string, html []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := fc.client.Set(ctx, fragmentKeyPrefix+key, html, ttl).Err(); err != nil {
		slog.Warn("fragment cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single fragment.
func (fc *FragmentCache) Invalidate(ctx context.Context, key string) {
	if err := fc.client.Del(ctx, fragmentKeyPrefix+key).Err(); err != nil {
		slog.Warn("fragment cache invalidate error", "key", key, "error", err)
		return
	}
	slog.Debug("fragment cache invalidated", "key", key)
}

// InvalidateAll removes every cached fragment by scanning for the prefix.
func (fc *FragmentCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := fc.client.Scan(ctx, cursor, fragmentKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("fragment cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := fc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("fragment cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("fragment cache fully cleared", "deleted", deleted)
	}
}
