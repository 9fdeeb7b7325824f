package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"event-management/internal/payments"
	"event-management/internal/status"
	"event-management/models"
	"event-management/monitoring"
	"event-management/utils"

	"github.com/shopspring/decimal"
)

// PurchaseRequest carries everything needed for one purchase attempt. UserID
// comes from the resolved auth token, never from the request body.
type PurchaseRequest struct {
	UserID        string
	EventID       string
	Quantity      int
	PaymentMethod string
	CardLastFour  string
}

// EventSummary is the minimal event projection joined into a purchase
// response.
type EventSummary struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	Venue string    `json:"venue"`
}

// ReceiptSummary is the payment receipt returned to the buyer.
type ReceiptSummary struct {
	TransactionID string    `json:"transaction_id"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentMethod string    `json:"payment_method"`
}

type PurchaseResult struct {
	Ticket  models.Ticket  `json:"ticket"`
	Event   EventSummary   `json:"event"`
	Receipt ReceiptSummary `json:"receipt"`
}

// PurchaseService coordinates validation, availability checking, payment and
// the ticket commit as one all-or-nothing operation.
//
// The check-then-act race between the availability read and the ticket
// insert is closed twice over: a per-event lock serializes the whole
// check/charge/commit sequence in-process, and CommitPaid re-validates the
// capacity sum at insert time inside a serialized store transaction. The
// ledger stays the only source of truth for sold inventory.
type PurchaseService struct {
	events  EventSource
	tickets TicketLedger
	gateway payments.Gateway
	locks   *EventLocks

	notifier    Notifier
	invalidator AvailabilityInvalidator

	paymentTimeout time.Duration
}

func NewPurchaseService(
	events EventSource,
	tickets TicketLedger,
	gateway payments.Gateway,
	locks *EventLocks,
	notifier Notifier,
	invalidator AvailabilityInvalidator,
	paymentTimeout time.Duration,
) *PurchaseService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &PurchaseService{
		events:         events,
		tickets:        tickets,
		gateway:        gateway,
		locks:          locks,
		notifier:       notifier,
		invalidator:    invalidator,
		paymentTimeout: paymentTimeout,
	}
}

func (s *PurchaseService) Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error) {
	if req.Quantity < 1 {
		monitoring.TrackPurchase(monitoring.OutcomeInvalid)
		return nil, fmt.Errorf("%w: quantity must be at least 1", status.ErrInvalidInput)
	}
	if req.EventID == "" {
		monitoring.TrackPurchase(monitoring.OutcomeInvalid)
		return nil, fmt.Errorf("%w: event id is required", status.ErrInvalidInput)
	}

	unlock := s.locks.Lock(req.EventID)
	defer unlock()

	event, err := s.events.EventByID(ctx, req.EventID)
	if err != nil {
		monitoring.TrackPurchase(monitoring.OutcomeInvalid)
		return nil, err
	}

	if !event.Purchasable() {
		monitoring.TrackPurchase(monitoring.OutcomeInvalid)
		return nil, fmt.Errorf("%w: cannot purchase tickets for completed or cancelled events", status.ErrInvalidState)
	}

	// The gating read: recomputed synchronously right before the decision.
	sold, err := s.tickets.SoldQuantity(ctx, event.ID)
	if err != nil {
		monitoring.TrackPurchase(monitoring.OutcomeError)
		return nil, err
	}
	available := event.Capacity - sold
	if available < req.Quantity {
		monitoring.TrackPurchase(monitoring.OutcomeConflict)
		return nil, fmt.Errorf("%w: not enough tickets available, only %d left", status.ErrConflict, available)
	}

	totalAmount := decimal.NewFromFloat(event.TicketPrice).Mul(decimal.NewFromInt(int64(req.Quantity)))

	ticketNumber, err := utils.TicketNumber()
	if err != nil {
		monitoring.TrackPurchase(monitoring.OutcomeError)
		return nil, fmt.Errorf("generate ticket number: %w", err)
	}

	cardLastFour := req.CardLastFour
	if cardLastFour == "" {
		cardLastFour = "1234"
	}

	chargeCtx, cancel := context.WithTimeout(ctx, s.paymentTimeout)
	defer cancel()

	chargeStart := time.Now()
	receipt, err := s.gateway.Charge(chargeCtx, &payments.ChargeRequest{
		Amount:       totalAmount,
		Currency:     "USD",
		Method:       req.PaymentMethod,
		CardLastFour: cardLastFour,
		Reference:    ticketNumber,
	})
	monitoring.ObserveGatewayDuration(time.Since(chargeStart))
	if err != nil {
		monitoring.TrackPurchase(monitoring.OutcomePaymentDeclined)
		// No ticket row exists for a declined attempt.
		return nil, err
	}

	ticket := &models.Ticket{
		EventID:       event.ID,
		UserID:        req.UserID,
		TicketNumber:  ticketNumber,
		Quantity:      req.Quantity,
		TotalAmount:   totalAmount.InexactFloat64(),
		PaymentStatus: models.PaymentStatusPaid,
		PaymentMethod: req.PaymentMethod,
		PaymentDetails: models.PaymentDetails{
			TransactionID: receipt.TransactionID,
			PaymentDate:   receipt.ChargedAt,
			CardLastFour:  receipt.CardLastFour,
		},
		QRCode:   qrCodeURL(ticketNumber),
		BookedAt: time.Now(),
	}

	if err := s.tickets.CommitPaid(ctx, ticket, event.Capacity); err != nil {
		if errors.Is(err, status.ErrConflict) {
			// Someone else took the remaining units between our check and
			// the commit (other process, or a store-level race). Void the
			// charge so the attempt is all-or-nothing.
			if refundErr := s.gateway.Refund(ctx, receipt.TransactionID, totalAmount); refundErr != nil {
				slog.Error("failed to void charge after conflict",
					"transaction_id", receipt.TransactionID, "error", refundErr)
			}
			monitoring.TrackPurchase(monitoring.OutcomeConflict)
			return nil, err
		}
		monitoring.TrackPurchase(monitoring.OutcomeError)
		return nil, err
	}

	remaining := available - req.Quantity
	monitoring.TrackPurchase(monitoring.OutcomeSuccess)
	monitoring.SetAvailableTickets(event.ID, remaining)
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, event.ID)
	}
	s.notifier.AvailabilityChanged(ctx, event.ID, remaining)
	s.notifier.PurchaseCompleted(ctx, ticket)

	slog.Info("ticket purchased",
		"ticket_number", ticket.TicketNumber,
		"event_id", event.ID,
		"user_id", req.UserID,
		"quantity", req.Quantity,
		"total_amount", totalAmount,
	)

	return &PurchaseResult{
		Ticket: *ticket,
		Event: EventSummary{
			ID:    event.ID,
			Title: event.Title,
			Date:  event.DateTime.Start,
			Venue: event.Location.Venue,
		},
		Receipt: ReceiptSummary{
			TransactionID: receipt.TransactionID,
			PaymentDate:   receipt.ChargedAt,
			PaymentMethod: req.PaymentMethod,
		},
	}, nil
}

func qrCodeURL(ticketNumber string) string {
	return "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=" + ticketNumber
}
