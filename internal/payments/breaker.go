package payments

import (
	"context"
	"errors"
	"fmt"

	"event-management/internal/status"
	"event-management/utils"

	"github.com/shopspring/decimal"
)

// BreakerGateway wraps a Gateway with a circuit breaker so a misbehaving
// provider fails fast instead of stalling every purchase. An open breaker
// surfaces as PaymentDeclined, which callers already treat as retriable.
type BreakerGateway struct {
	next    Gateway
	breaker *utils.CircuitBreaker
}

func WithBreaker(next Gateway, breaker *utils.CircuitBreaker) *BreakerGateway {
	return &BreakerGateway{next: next, breaker: breaker}
}

func (g *BreakerGateway) Charge(ctx context.Context, req *ChargeRequest) (*Receipt, error) {
	result, err := g.breaker.Execute(ctx, func() (any, error) {
		return g.next.Charge(ctx, req)
	})
	if err != nil {
		if errors.Is(err, utils.ErrCircuitOpen) {
			return nil, fmt.Errorf("%w: payment provider unavailable", status.ErrPaymentDeclined)
		}
		return nil, err
	}
	return result.(*Receipt), nil
}

func (g *BreakerGateway) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) error {
	// Refund instructions bypass the breaker: they must not be dropped
	// because charges are failing.
	return g.next.Refund(ctx, transactionID, amount)
}
