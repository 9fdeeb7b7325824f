// Package status defines the error kinds shared by the domain services.
// Services wrap them with fmt.Errorf("%w: ...") to attach detail; handlers
// translate them to HTTP responses at the boundary.
package status

import "errors"

var (
	// ErrNotFound signals a missing event, ticket or user.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput signals malformed or missing request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState signals an operation against an entity in the wrong
	// state: purchasing for a non-upcoming event, cancelling a non-paid
	// ticket, cancelling inside the cancellation window.
	ErrInvalidState = errors.New("invalid state")

	// ErrConflict signals that committing the requested write would exceed
	// the event capacity. Not retriable without changing the input.
	ErrConflict = errors.New("conflict")

	// ErrPaymentDeclined signals a failed or timed out payment attempt.
	// Retriable: the caller may resubmit.
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrForbidden signals cross-user access without the admin role.
	ErrForbidden = errors.New("forbidden")
)
