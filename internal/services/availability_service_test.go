package services

import (
	"context"
	"testing"
	"time"

	"event-management/internal/status"
	"event-management/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityService_Check_NoSales(t *testing.T) {
	events := newFakeEvents(upcomingEvent("evt-1", 200, 15))
	service := NewAvailabilityService(events, newFakeLedger())

	availability, err := service.Check(context.Background(), "evt-1")

	require.NoError(t, err)
	assert.Equal(t, 200, availability.Capacity)
	assert.Equal(t, 0, availability.Sold)
	assert.Equal(t, 200, availability.Available)
	assert.True(t, availability.IsAvailable)
	assert.Equal(t, "Go Conference", availability.EventTitle)
}

func TestAvailabilityService_Check_UnknownEvent(t *testing.T) {
	service := NewAvailabilityService(newFakeEvents(), newFakeLedger())

	_, err := service.Check(context.Background(), "missing")
	require.ErrorIs(t, err, status.ErrNotFound)
}

func TestAvailabilityService_Check_IgnoresNonPaidTickets(t *testing.T) {
	events := newFakeEvents(upcomingEvent("evt-1", 100, 15))
	ledger := newFakeLedger()
	ledger.seed(&models.Ticket{EventID: "evt-1", UserID: "u1", Quantity: 10, PaymentStatus: models.PaymentStatusPaid})
	ledger.seed(&models.Ticket{EventID: "evt-1", UserID: "u2", Quantity: 5, PaymentStatus: models.PaymentStatusRefunded})
	ledger.seed(&models.Ticket{EventID: "evt-1", UserID: "u3", Quantity: 3, PaymentStatus: models.PaymentStatusPending})

	service := NewAvailabilityService(events, ledger)

	availability, err := service.Check(context.Background(), "evt-1")

	require.NoError(t, err)
	// Only the paid quantity counts toward sold.
	assert.Equal(t, 10, availability.Sold)
	assert.Equal(t, 90, availability.Available)
}

func TestAvailabilityService_Check_SoldOutEvent(t *testing.T) {
	events := newFakeEvents(upcomingEvent("evt-1", 20, 15))
	ledger := newFakeLedger()
	ledger.seed(&models.Ticket{EventID: "evt-1", UserID: "u1", Quantity: 20, PaymentStatus: models.PaymentStatusPaid})

	service := NewAvailabilityService(events, ledger)

	availability, err := service.Check(context.Background(), "evt-1")

	require.NoError(t, err)
	assert.Equal(t, 0, availability.Available)
	assert.False(t, availability.IsAvailable)
}

// Round trip: purchase then cancel returns the inventory to its starting
// point, all derived from the ledger.
func TestAvailability_PurchaseCancelRoundTrip(t *testing.T) {
	events := newFakeEvents(upcomingEvent("evt-1", 30, 10))
	ledger := newFakeLedger()
	gateway := &fakeGateway{}
	locks := NewEventLocks()

	availability := NewAvailabilityService(events, ledger)
	purchases := NewPurchaseService(events, ledger, gateway, locks, NopNotifier{}, &fakeInvalidator{}, 5*time.Second)
	tickets := NewTicketService(events, ledger, gateway, locks, NopNotifier{}, &fakeInvalidator{}, 24*time.Hour)

	before, err := availability.Check(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.Equal(t, 30, before.Available)

	result, err := purchases.Purchase(context.Background(), PurchaseRequest{
		UserID:   "user-1",
		EventID:  "evt-1",
		Quantity: 4,
	})
	require.NoError(t, err)

	during, err := availability.Check(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.Equal(t, 26, during.Available)

	_, err = tickets.Cancel(context.Background(), CancelRequest{
		UserID:   "user-1",
		TicketID: result.Ticket.ID,
	})
	require.NoError(t, err)

	after, err := availability.Check(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.Equal(t, 30, after.Available)
	assert.Equal(t, 0, after.Sold)
}
