package models

import "time"

// Ticket payment statuses. The purchase flow writes only paid rows (failed
// attempts leave nothing behind); cancellation moves paid to refunded.
// pending and failed stay in the schema for asynchronous payment methods
// but no current flow persists them.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// PaymentDetails is the receipt sub-record captured at purchase time.
type PaymentDetails struct {
	TransactionID string    `json:"transaction_id"`
	PaymentDate   time.Time `json:"payment_date"`
	CardLastFour  string    `json:"card_last_four"`
}

type Ticket struct {
	ID             string         `json:"id"`
	EventID        string         `json:"event_id"`
	UserID         string         `json:"user_id"`
	TicketNumber   string         `json:"ticket_number"`
	Quantity       int            `json:"quantity"`
	TotalAmount    float64        `json:"total_amount"`
	PaymentStatus  string         `json:"payment_status"`
	PaymentMethod  string         `json:"payment_method"`
	PaymentDetails PaymentDetails `json:"payment_details"`
	QRCode         string         `json:"qr_code"`
	BookedAt       time.Time      `json:"booked_at"`
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// CanTransition reports whether a payment status transition is legal:
// pending -> paid|failed, paid -> refunded. failed and refunded are
// terminal.
func CanTransition(from, to string) bool {
	switch from {
	case PaymentStatusPending:
		return to == PaymentStatusPaid || to == PaymentStatusFailed
	case PaymentStatusPaid:
		return to == PaymentStatusRefunded
	}
	return false
}

// Availability is the derived inventory triple for one event. It is always
// recomputed from the paid subset of the ticket ledger, never stored.
type Availability struct {
	EventID     string `json:"event_id"`
	EventTitle  string `json:"event"`
	Capacity    int    `json:"capacity"`
	Sold        int    `json:"tickets_sold"`
	Available   int    `json:"tickets_available"`
	IsAvailable bool   `json:"is_available"`
}
