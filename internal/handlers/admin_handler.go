package handlers

import (
	"net/http"

	"event-management/internal/services"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type AdminHandler struct {
	reports *services.ReportingService
}

func NewAdminHandler(reports *services.ReportingService) *AdminHandler {
	return &AdminHandler{reports: reports}
}

// Dashboard returns the headline numbers plus recent bookings.
func (h *AdminHandler) Dashboard(e *core.RequestEvent) error {
	if !isAdmin(e.Auth) {
		return apis.NewForbiddenError("Admin access required", nil)
	}

	stats, err := h.reports.Dashboard(e.Request.Context())
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, stats)
}

// PaymentSummary breaks tickets and amounts down per event and payment
// status.
func (h *AdminHandler) PaymentSummary(e *core.RequestEvent) error {
	if !isAdmin(e.Auth) {
		return apis.NewForbiddenError("Admin access required", nil)
	}

	rows, err := h.reports.PaymentSummaryByEvent(e.Request.Context())
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"events": rows})
}
