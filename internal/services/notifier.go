package services

import (
	"context"

	"event-management/models"
)

// Notifier pushes realtime updates out of the purchase and cancellation
// flows. Implementations must be non-blocking best-effort; delivery failures
// never fail the operation.
type Notifier interface {
	AvailabilityChanged(ctx context.Context, eventID string, available int)
	PurchaseCompleted(ctx context.Context, ticket *models.Ticket)
	TicketRefunded(ctx context.Context, ticket *models.Ticket)
}

// AvailabilityInvalidator drops any cached availability snapshot for an
// event after its ledger changed.
type AvailabilityInvalidator interface {
	Invalidate(ctx context.Context, eventID string)
}

// NopNotifier is used when no realtime backend is configured.
type NopNotifier struct{}

func (NopNotifier) AvailabilityChanged(context.Context, string, int) {}
func (NopNotifier) PurchaseCompleted(context.Context, *models.Ticket) {}
func (NopNotifier) TicketRefunded(context.Context, *models.Ticket)    {}
