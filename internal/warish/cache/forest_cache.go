// Package cache provides a Redis-backed cache of assembled forests. The
// store remains the source of truth: every mutation invalidates the owning
// application's entry, and a cold or unreachable cache only costs a re-read.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"warishd/internal/warish/forest"
	"warishd/pkg/domain"
)

// ForestCache caches the assembled forest per application with a TTL. A nil
// *ForestCache is valid and disables caching, so callers need no nil checks
// at every site.
type ForestCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New constructs a forest cache. Returns nil (caching disabled) when the
// client is nil.
func New(client *redis.Client, ttl time.Duration) *ForestCache {
	if client == nil {
		return nil
	}
	return &ForestCache{client: client, ttl: ttl}
}

func key(applicationID domain.ApplicationID) string {
	return "warish:forest:" + applicationID.String()
}

// Get returns the cached forest for an application, or (nil, nil) on a miss.
func (c *ForestCache) Get(ctx context.Context, applicationID domain.ApplicationID) (*forest.Forest, error) {
	if c == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, key(applicationID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("forest cache get: %w", err)
	}
	var f forest.Forest
	if err := json.Unmarshal(raw, &f); err != nil {
		// A corrupt entry is a miss, not a failure.
		return nil, nil
	}
	return &f, nil
}

// Put stores the assembled forest for an application.
func (c *ForestCache) Put(ctx context.Context, applicationID domain.ApplicationID, f *forest.Forest) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("forest cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, key(applicationID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("forest cache put: %w", err)
	}
	return nil
}

// Invalidate drops the cached forest for an application. Called after every
// mutation so readers never observe a stale tree past the current request.
func (c *ForestCache) Invalidate(ctx context.Context, applicationID domain.ApplicationID) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, key(applicationID)).Err(); err != nil {
		return fmt.Errorf("forest cache invalidate: %w", err)
	}
	return nil
}
