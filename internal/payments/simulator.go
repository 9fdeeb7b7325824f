package payments

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"event-management/internal/status"
	"event-management/utils"

	"github.com/shopspring/decimal"
)

// Simulator stands in for a payment gateway. It sleeps for a configured
// delay and declines a fixed fraction of charges at random, so the failure
// path stays exercised in development and tests.
type Simulator struct {
	delay       time.Duration
	failureRate float64

	// randFloat is swappable in tests for deterministic outcomes.
	randFloat func() float64
}

func NewSimulator(delay time.Duration, failureRate float64) *Simulator {
	return &Simulator{
		delay:       delay,
		failureRate: failureRate,
		randFloat:   rand.Float64,
	}
}

func (s *Simulator) Charge(ctx context.Context, req *ChargeRequest) (*Receipt, error) {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		// A hung gateway call is treated as declined rather than left
		// pending; the caller may resubmit.
		return nil, fmt.Errorf("%w: gateway timeout: %v", status.ErrPaymentDeclined, ctx.Err())
	}

	if s.randFloat() < s.failureRate {
		slog.Info("payment simulation declined", "reference", req.Reference, "amount", req.Amount)
		return nil, fmt.Errorf("%w: card issuer rejected the charge", status.ErrPaymentDeclined)
	}

	code, err := utils.GenerateCode(6)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrPaymentDeclined, err)
	}

	receipt := &Receipt{
		TransactionID: fmt.Sprintf("TX-%d-%s", time.Now().UnixMilli(), code),
		Amount:        req.Amount,
		Method:        req.Method,
		ChargedAt:     time.Now(),
		CardLastFour:  req.CardLastFour,
	}

	slog.Info("payment simulation charged",
		"transaction_id", receipt.TransactionID,
		"amount", req.Amount,
		"method", req.Method,
	)
	return receipt, nil
}

func (s *Simulator) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) error {
	// Modeled only as an instruction to the external collaborator.
	slog.Info("payment simulation refund issued", "transaction_id", transactionID, "amount", amount)
	return nil
}
