package handlers

import (
	"net/http"

	"event-management/internal/services"
	"event-management/internal/store"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type UserHandler struct {
	store   *store.Store
	tickets *services.TicketService
	reports *services.ReportingService
}

func NewUserHandler(store *store.Store, tickets *services.TicketService, reports *services.ReportingService) *UserHandler {
	return &UserHandler{store: store, tickets: tickets, reports: reports}
}

// Profile returns a user's profile with their ticket stats. Users see only
// themselves; admins see anyone.
func (h *UserHandler) Profile(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	userID := e.Request.PathValue("userId")
	if userID != e.Auth.Id && !isAdmin(e.Auth) {
		return apis.NewForbiddenError("Access denied", nil)
	}

	user, err := h.store.UserByID(e.Request.Context(), userID)
	if err != nil {
		return apiError(err)
	}

	stats, err := h.reports.UserTicketStats(e.Request.Context(), userID)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"user":  user,
		"stats": stats,
	})
}

// SearchByEmail finds users by email substring. Admin only.
func (h *UserHandler) SearchByEmail(e *core.RequestEvent) error {
	if !isAdmin(e.Auth) {
		return apis.NewForbiddenError("Admin access required", nil)
	}

	email := e.Request.URL.Query().Get("email")
	if email == "" {
		return apis.NewBadRequestError("email query parameter is required", nil)
	}

	users, err := h.store.SearchUsersByEmail(e.Request.Context(), email,
		queryInt(e, "page", 1), queryInt(e, "limit", 10))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"users": users})
}

// BookingHistory lists a user's tickets. Users see only their own history;
// admins see anyone's.
func (h *UserHandler) BookingHistory(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	userID := e.Request.PathValue("userId")
	if userID != e.Auth.Id && !isAdmin(e.Auth) {
		return apis.NewForbiddenError("Access denied", nil)
	}

	filter := services.TicketFilter{
		Status:  e.Request.URL.Query().Get("status"),
		Page:    queryInt(e, "page", 1),
		PerPage: queryInt(e, "limit", 10),
	}

	tickets, total, err := h.tickets.MyTickets(e.Request.Context(), userID, filter)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"tickets": tickets,
		"total":   total,
		"page":    filter.Page,
		"limit":   filter.PerPage,
	})
}
