package services

import (
	"context"

	"event-management/models"
)

// AvailabilityService derives remaining capacity for an event from the paid
// subset of the ticket ledger. The computation is read-only and is always
// performed against the ledger, never a stored counter.
type AvailabilityService struct {
	events  EventSource
	tickets TicketLedger
}

func NewAvailabilityService(events EventSource, tickets TicketLedger) *AvailabilityService {
	return &AvailabilityService{events: events, tickets: tickets}
}

// Check computes sold, available and the availability flag for one event.
// An event with no paid tickets reports sold = 0.
func (s *AvailabilityService) Check(ctx context.Context, eventID string) (*models.Availability, error) {
	event, err := s.events.EventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	sold, err := s.tickets.SoldQuantity(ctx, eventID)
	if err != nil {
		return nil, err
	}

	available := event.Capacity - sold
	return &models.Availability{
		EventID:     event.ID,
		EventTitle:  event.Title,
		Capacity:    event.Capacity,
		Sold:        sold,
		Available:   available,
		IsAvailable: available > 0,
	}, nil
}
