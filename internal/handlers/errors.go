package handlers

import (
	"errors"
	"net/http"

	"event-management/internal/status"

	"github.com/pocketbase/pocketbase/apis"
)

// apiError translates domain sentinels into HTTP responses. Handlers return
// service errors through this one funnel so the taxonomy maps consistently:
// not found 404, invalid input 400, invalid state 400, conflict 409,
// payment declined 402, forbidden 403.
func apiError(err error) error {
	msg := err.Error()
	switch {
	case errors.Is(err, status.ErrNotFound):
		return apis.NewNotFoundError(msg, nil)
	case errors.Is(err, status.ErrInvalidInput), errors.Is(err, status.ErrInvalidState):
		return apis.NewBadRequestError(msg, nil)
	case errors.Is(err, status.ErrConflict):
		return apis.NewApiError(http.StatusConflict, msg, nil)
	case errors.Is(err, status.ErrPaymentDeclined):
		return apis.NewApiError(http.StatusPaymentRequired, msg, nil)
	case errors.Is(err, status.ErrForbidden):
		return apis.NewForbiddenError(msg, nil)
	default:
		return apis.NewApiError(http.StatusInternalServerError, "something went wrong", nil)
	}
}
