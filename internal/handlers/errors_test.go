package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"event-management/internal/status"

	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiError_StatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", status.ErrNotFound, http.StatusNotFound},
		{"invalid input", status.ErrInvalidInput, http.StatusBadRequest},
		{"invalid state", status.ErrInvalidState, http.StatusBadRequest},
		{"conflict", status.ErrConflict, http.StatusConflict},
		{"payment declined", status.ErrPaymentDeclined, http.StatusPaymentRequired},
		{"forbidden", status.ErrForbidden, http.StatusForbidden},
		{"unknown", errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var apiErr *router.ApiError
			require.ErrorAs(t, apiError(tc.err), &apiErr)
			assert.Equal(t, tc.code, apiErr.Status)
		})
	}
}

func TestApiError_WrappedDetailSurvives(t *testing.T) {
	err := fmt.Errorf("%w: not enough tickets available, only 3 left", status.ErrConflict)

	var apiErr *router.ApiError
	require.ErrorAs(t, apiError(err), &apiErr)
	assert.Contains(t, apiErr.Message, "only 3 left")
}

func TestApiError_UnknownErrorIsOpaque(t *testing.T) {
	err := errors.New("pq: connection reset while writing tickets")

	var apiErr *router.ApiError
	require.ErrorAs(t, apiError(err), &apiErr)
	// Internal detail never leaks to the client.
	assert.NotContains(t, apiErr.Message, "pq:")
}
