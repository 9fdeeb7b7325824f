package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"event-management/internal/payments"
	"event-management/internal/status"
	"event-management/models"
	"event-management/monitoring"

	"github.com/shopspring/decimal"
)

// CancelRequest identifies the ticket to cancel and the actor. Admins may
// cancel any ticket; users only their own.
type CancelRequest struct {
	UserID   string
	IsAdmin  bool
	TicketID string
}

type CancelResult struct {
	TicketNumber string  `json:"ticket_number"`
	RefundAmount float64 `json:"refund_amount"`
}

// TicketService handles post-purchase ticket operations: cancellation with
// refund, and scoped reads.
type TicketService struct {
	events  EventSource
	tickets TicketLedger
	gateway payments.Gateway
	locks   *EventLocks

	notifier    Notifier
	invalidator AvailabilityInvalidator

	cancellationWindow time.Duration

	// now is swappable in tests.
	now func() time.Time
}

func NewTicketService(
	events EventSource,
	tickets TicketLedger,
	gateway payments.Gateway,
	locks *EventLocks,
	notifier Notifier,
	invalidator AvailabilityInvalidator,
	cancellationWindow time.Duration,
) *TicketService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &TicketService{
		events:             events,
		tickets:            tickets,
		gateway:            gateway,
		locks:              locks,
		notifier:           notifier,
		invalidator:        invalidator,
		cancellationWindow: cancellationWindow,
		now:                time.Now,
	}
}

// Cancel transitions a paid ticket to refunded and emits a refund
// instruction. Once refunded, the ticket's quantity drops out of the paid
// sum and its capacity returns to the pool.
func (s *TicketService) Cancel(ctx context.Context, req CancelRequest) (*CancelResult, error) {
	ticket, err := s.loadScoped(ctx, req.UserID, req.IsAdmin, req.TicketID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(ticket.EventID)
	defer unlock()

	if ticket.PaymentStatus != models.PaymentStatusPaid {
		return nil, fmt.Errorf("%w: only paid tickets can be cancelled", status.ErrInvalidState)
	}

	event, err := s.events.EventByID(ctx, ticket.EventID)
	if err != nil {
		return nil, err
	}

	if event.DateTime.Start.Sub(s.now()) < s.cancellationWindow {
		return nil, fmt.Errorf("%w: tickets can only be cancelled up to %v before the event",
			status.ErrInvalidState, s.cancellationWindow)
	}

	// Conditional transition: loses with InvalidState if another cancel of
	// the same ticket got there first.
	if err := s.tickets.MarkRefunded(ctx, ticket.ID); err != nil {
		return nil, err
	}

	amount := decimal.NewFromFloat(ticket.TotalAmount)
	if err := s.gateway.Refund(ctx, ticket.PaymentDetails.TransactionID, amount); err != nil {
		// The status transition already committed; the refund instruction
		// is retried out of band.
		slog.Error("refund instruction failed",
			"ticket_number", ticket.TicketNumber,
			"transaction_id", ticket.PaymentDetails.TransactionID,
			"error", err,
		)
	}

	monitoring.TrackRefund()
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, ticket.EventID)
	}

	sold, err := s.tickets.SoldQuantity(ctx, ticket.EventID)
	if err == nil {
		available := event.Capacity - sold
		monitoring.SetAvailableTickets(event.ID, available)
		s.notifier.AvailabilityChanged(ctx, event.ID, available)
	}
	ticket.PaymentStatus = models.PaymentStatusRefunded
	s.notifier.TicketRefunded(ctx, ticket)

	slog.Info("ticket refunded",
		"ticket_number", ticket.TicketNumber,
		"event_id", ticket.EventID,
		"refund_amount", ticket.TotalAmount,
	)

	return &CancelResult{
		TicketNumber: ticket.TicketNumber,
		RefundAmount: ticket.TotalAmount,
	}, nil
}

// TicketByID loads one ticket scoped to the requesting user.
func (s *TicketService) TicketByID(ctx context.Context, userID string, isAdmin bool, ticketID string) (*models.Ticket, error) {
	return s.loadScoped(ctx, userID, isAdmin, ticketID)
}

// MyTickets lists the user's tickets, newest first.
func (s *TicketService) MyTickets(ctx context.Context, userID string, filter TicketFilter) ([]models.Ticket, int, error) {
	if filter.Status != "" && !models.ValidPaymentStatus(filter.Status) {
		return nil, 0, fmt.Errorf("%w: unknown payment status %q", status.ErrInvalidInput, filter.Status)
	}
	return s.tickets.TicketsByUser(ctx, userID, filter)
}

func (s *TicketService) loadScoped(ctx context.Context, userID string, isAdmin bool, ticketID string) (*models.Ticket, error) {
	ticket, err := s.tickets.TicketByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && ticket.UserID != userID {
		return nil, fmt.Errorf("%w: ticket belongs to another user", status.ErrForbidden)
	}
	return ticket, nil
}
