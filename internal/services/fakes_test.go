package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"event-management/internal/payments"
	"event-management/internal/status"
	"event-management/models"

	"github.com/shopspring/decimal"
)

// In-memory doubles for the store and gateway, so the concurrency
// invariants can be exercised without a database.

type fakeEvents struct {
	mu     sync.Mutex
	events map[string]*models.Event
}

func newFakeEvents(events ...*models.Event) *fakeEvents {
	f := &fakeEvents{events: make(map[string]*models.Event)}
	for _, e := range events {
		f.events[e.ID] = e
	}
	return f
}

func (f *fakeEvents) EventByID(ctx context.Context, id string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return nil, fmt.Errorf("%w: event %s", status.ErrNotFound, id)
	}
	copied := *event
	return &copied, nil
}

type fakeLedger struct {
	mu      sync.Mutex
	tickets map[string]*models.Ticket
	seq     int

	// commitErr, when set, is returned by every CommitPaid call.
	commitErr error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{tickets: make(map[string]*models.Ticket)}
}

func (f *fakeLedger) SoldQuantity(ctx context.Context, eventID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.soldLocked(eventID), nil
}

func (f *fakeLedger) soldLocked(eventID string) int {
	sold := 0
	for _, t := range f.tickets {
		if t.EventID == eventID && t.PaymentStatus == models.PaymentStatusPaid {
			sold += t.Quantity
		}
	}
	return sold
}

func (f *fakeLedger) CommitPaid(ctx context.Context, ticket *models.Ticket, capacity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.commitErr != nil {
		return f.commitErr
	}

	sold := f.soldLocked(ticket.EventID)
	if sold+ticket.Quantity > capacity {
		return fmt.Errorf("%w: not enough tickets available, only %d left",
			status.ErrConflict, capacity-sold)
	}

	f.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", f.seq)
	ticket.PaymentStatus = models.PaymentStatusPaid
	copied := *ticket
	f.tickets[ticket.ID] = &copied
	return nil
}

func (f *fakeLedger) TicketByID(ctx context.Context, id string) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, fmt.Errorf("%w: ticket %s", status.ErrNotFound, id)
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeLedger) TicketsByUser(ctx context.Context, userID string, filter TicketFilter) ([]models.Ticket, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var tickets []models.Ticket
	for _, t := range f.tickets {
		if t.UserID != userID {
			continue
		}
		if filter.Status != "" && t.PaymentStatus != filter.Status {
			continue
		}
		tickets = append(tickets, *t)
	}
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].BookedAt.After(tickets[j].BookedAt)
	})
	return tickets, len(tickets), nil
}

func (f *fakeLedger) MarkRefunded(ctx context.Context, ticketID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ticket, ok := f.tickets[ticketID]
	if !ok {
		return fmt.Errorf("%w: ticket %s", status.ErrNotFound, ticketID)
	}
	if !models.CanTransition(ticket.PaymentStatus, models.PaymentStatusRefunded) {
		return fmt.Errorf("%w: ticket is %s, only paid tickets can be cancelled",
			status.ErrInvalidState, ticket.PaymentStatus)
	}
	ticket.PaymentStatus = models.PaymentStatusRefunded
	return nil
}

// seed inserts a ticket directly, bypassing the capacity check.
func (f *fakeLedger) seed(ticket *models.Ticket) *models.Ticket {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if ticket.ID == "" {
		ticket.ID = fmt.Sprintf("ticket-%d", f.seq)
	}
	copied := *ticket
	f.tickets[ticket.ID] = &copied
	return ticket
}

type fakeGateway struct {
	mu      sync.Mutex
	charges int
	refunds []string

	chargeErr error
}

func (f *fakeGateway) Charge(ctx context.Context, req *payments.ChargeRequest) (*payments.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.chargeErr != nil {
		return nil, f.chargeErr
	}

	f.charges++
	return &payments.Receipt{
		TransactionID: fmt.Sprintf("TX-%d", f.charges),
		Amount:        req.Amount,
		Method:        req.Method,
		ChargedAt:     time.Now(),
		CardLastFour:  req.CardLastFour,
	}, nil
}

func (f *fakeGateway) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refunds = append(f.refunds, transactionID)
	return nil
}

func (f *fakeGateway) chargeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.charges
}

func (f *fakeGateway) refunded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.refunds...)
}

type fakeInvalidator struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, eventID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, eventID)
}

func (f *fakeInvalidator) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func upcomingEvent(id string, capacity int, price float64) *models.Event {
	return &models.Event{
		ID:          id,
		Title:       "Go Conference",
		CategoryID:  "cat-1",
		Location:    models.Location{Venue: "Convention Center", City: "Berlin", Country: "Germany"},
		DateTime:    models.TimeRange{Start: time.Now().Add(72 * time.Hour), End: time.Now().Add(80 * time.Hour)},
		Capacity:    capacity,
		TicketPrice: price,
		Status:      models.EventStatusUpcoming,
	}
}
