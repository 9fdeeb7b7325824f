// Package cache keeps short-lived Redis copies of derived availability.
// The ticket ledger stays the source of truth: every entry here can be
// dropped and rebuilt from it, so the TTL is short and invalidation is
// best-effort.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"event-management/models"

	"github.com/redis/go-redis/v9"
)

type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &AvailabilityCache{client: client, ttl: ttl}
}

func key(eventID string) string {
	return fmt.Sprintf("availability:%s", eventID)
}

// Get returns the cached availability, or (nil, nil) on a miss.
func (c *AvailabilityCache) Get(ctx context.Context, eventID string) (*models.Availability, error) {
	data, err := c.client.Get(ctx, key(eventID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var availability models.Availability
	if err := json.Unmarshal(data, &availability); err != nil {
		// A corrupt entry is just a miss; the next Set overwrites it.
		slog.Warn("dropping corrupt availability cache entry",
			"event_id", eventID, "error", err)
		return nil, nil
	}
	return &availability, nil
}

func (c *AvailabilityCache) Set(ctx context.Context, availability *models.Availability) error {
	data, err := json.Marshal(availability)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, key(availability.EventID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached entry after the ledger changed. Errors are
// logged, not returned: a stale entry ages out within the TTL anyway.
func (c *AvailabilityCache) Invalidate(ctx context.Context, eventID string) {
	if err := c.client.Del(ctx, key(eventID)).Err(); err != nil {
		slog.Warn("availability cache invalidation failed",
			"event_id", eventID, "error", err)
	}
}
