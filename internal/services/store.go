package services

import (
	"context"

	"event-management/models"
)

// EventSource is the read side of the events collection needed by the
// domain services.
type EventSource interface {
	EventByID(ctx context.Context, id string) (*models.Event, error)
}

// TicketFilter narrows ticket listings.
type TicketFilter struct {
	Status  string
	Page    int
	PerPage int
}

// TicketLedger is the append-mostly ticket store. Its paid subset is the
// source of truth for sold inventory.
type TicketLedger interface {
	// SoldQuantity sums quantity over paid tickets for the event.
	SoldQuantity(ctx context.Context, eventID string) (int, error)

	// CommitPaid atomically re-validates that sold+ticket.Quantity does not
	// exceed capacity and inserts the ticket with status paid, in one
	// serialized transaction. Returns status.ErrConflict when the insert
	// would break the capacity invariant; nothing is written in that case.
	CommitPaid(ctx context.Context, ticket *models.Ticket, capacity int) error

	// TicketByID loads one ticket.
	TicketByID(ctx context.Context, id string) (*models.Ticket, error)

	// TicketsByUser lists a user's tickets, newest first, with the total
	// count across all pages.
	TicketsByUser(ctx context.Context, userID string, filter TicketFilter) ([]models.Ticket, int, error)

	// MarkRefunded transitions a ticket from paid to refunded inside a
	// transaction. Returns status.ErrInvalidState when the ticket is not
	// currently paid, so a concurrent double-cancel loses cleanly.
	MarkRefunded(ctx context.Context, ticketID string) error
}
