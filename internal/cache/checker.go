package cache

import (
	"context"
	"log/slog"

	"event-management/models"
	"event-management/monitoring"
)

// Checker computes availability from the ledger.
type Checker interface {
	Check(ctx context.Context, eventID string) (*models.Availability, error)
}

// CachedChecker is a read-through wrapper: cache hit wins, a miss computes
// from the ledger and backfills. Cache failures degrade to a plain compute.
type CachedChecker struct {
	inner Checker
	cache *AvailabilityCache
}

func NewCachedChecker(inner Checker, cache *AvailabilityCache) *CachedChecker {
	return &CachedChecker{inner: inner, cache: cache}
}

func (c *CachedChecker) Check(ctx context.Context, eventID string) (*models.Availability, error) {
	cached, err := c.cache.Get(ctx, eventID)
	if err != nil {
		slog.Warn("availability cache read failed", "event_id", eventID, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	availability, err := c.inner.Check(ctx, eventID)
	if err != nil {
		return nil, err
	}
	monitoring.SetAvailableTickets(eventID, availability.Available)

	if err := c.cache.Set(ctx, availability); err != nil {
		slog.Warn("availability cache write failed", "event_id", eventID, "error", err)
	}
	return availability, nil
}
