// Package payments models the external payment collaborator. The only
// implementation shipped here is a simulator; real gateway integrations are
// out of scope and would plug in behind the same interface.
package payments

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ChargeRequest is a generic charge instruction.
type ChargeRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Method       string          `json:"method"`
	CardLastFour string          `json:"card_last_four,omitempty"`
	Reference    string          `json:"reference"`
}

// Receipt is returned for a successful charge.
type Receipt struct {
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	ChargedAt     time.Time       `json:"charged_at"`
	CardLastFour  string          `json:"card_last_four,omitempty"`
}

// Gateway is the payment provider contract consumed by the purchase and
// lifecycle services.
type Gateway interface {
	// Charge attempts to collect the amount. A declined or timed out
	// attempt returns an error wrapping status.ErrPaymentDeclined.
	Charge(ctx context.Context, req *ChargeRequest) (*Receipt, error)

	// Refund issues a refund instruction for a previous charge.
	Refund(ctx context.Context, transactionID string, amount decimal.Decimal) error
}
