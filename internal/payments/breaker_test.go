package payments

import (
	"context"
	"errors"
	"testing"

	"event-management/internal/status"
	"event-management/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	chargeErr error
	refunds   int
}

func (s *stubGateway) Charge(ctx context.Context, req *ChargeRequest) (*Receipt, error) {
	if s.chargeErr != nil {
		return nil, s.chargeErr
	}
	return &Receipt{TransactionID: "TX-stub"}, nil
}

func (s *stubGateway) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) error {
	s.refunds++
	return nil
}

func TestBreakerGateway_Charge_PassesThrough(t *testing.T) {
	gateway := WithBreaker(&stubGateway{}, utils.NewCircuitBreaker("test"))

	receipt, err := gateway.Charge(context.Background(), chargeRequest())

	require.NoError(t, err)
	assert.Equal(t, "TX-stub", receipt.TransactionID)
}

func TestBreakerGateway_Charge_PropagatesDecline(t *testing.T) {
	stub := &stubGateway{chargeErr: errors.New("provider exploded")}
	gateway := WithBreaker(stub, utils.NewCircuitBreaker("test"))

	_, err := gateway.Charge(context.Background(), chargeRequest())

	require.Error(t, err)
	assert.NotErrorIs(t, err, utils.ErrCircuitOpen)
}

func TestBreakerGateway_Charge_OpenBreakerReadsAsDeclined(t *testing.T) {
	stub := &stubGateway{chargeErr: errors.New("provider down")}
	breaker := utils.NewCircuitBreaker("test")
	gateway := WithBreaker(stub, breaker)

	// Hammer the failing provider until the breaker trips open.
	for i := 0; i < 200 && breaker.State() != utils.StateOpen; i++ {
		gateway.Charge(context.Background(), chargeRequest())
	}
	require.Equal(t, utils.StateOpen, breaker.State())

	_, err := gateway.Charge(context.Background(), chargeRequest())
	require.ErrorIs(t, err, status.ErrPaymentDeclined)
}

func TestBreakerGateway_Refund_BypassesBreaker(t *testing.T) {
	stub := &stubGateway{chargeErr: errors.New("provider down")}
	breaker := utils.NewCircuitBreaker("test")
	gateway := WithBreaker(stub, breaker)

	for i := 0; i < 200 && breaker.State() != utils.StateOpen; i++ {
		gateway.Charge(context.Background(), chargeRequest())
	}
	require.Equal(t, utils.StateOpen, breaker.State())

	// Even with charges failing fast, refund instructions still go out.
	err := gateway.Refund(context.Background(), "TX-1", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Equal(t, 1, stub.refunds)
}
