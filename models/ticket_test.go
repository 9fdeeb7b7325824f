package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{PaymentStatusPending, PaymentStatusPaid},
		{PaymentStatusPending, PaymentStatusFailed},
		{PaymentStatusPaid, PaymentStatusRefunded},
	}
	for _, pair := range allowed {
		assert.True(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}

	denied := [][2]string{
		{PaymentStatusPaid, PaymentStatusPending},
		{PaymentStatusPaid, PaymentStatusFailed},
		{PaymentStatusRefunded, PaymentStatusPaid},
		{PaymentStatusRefunded, PaymentStatusRefunded},
		{PaymentStatusFailed, PaymentStatusPaid},
		{PaymentStatusFailed, PaymentStatusPending},
		{PaymentStatusPending, PaymentStatusRefunded},
	}
	for _, pair := range denied {
		assert.False(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []string{PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded} {
		assert.True(t, ValidPaymentStatus(s))
	}
	for _, s := range []string{"", "cancelled", "PAID", "complete"} {
		assert.False(t, ValidPaymentStatus(s))
	}
}
