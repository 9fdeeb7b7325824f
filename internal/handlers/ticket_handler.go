package handlers

import (
	"net/http"

	"event-management/internal/services"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type TicketHandler struct {
	purchases *services.PurchaseService
	tickets   *services.TicketService
}

func NewTicketHandler(purchases *services.PurchaseService, tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{purchases: purchases, tickets: tickets}
}

type purchaseRequest struct {
	EventID       string `json:"event_id"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"payment_method"`
	CardLastFour  string `json:"card_last_four"`
}

// Purchase books tickets for the authenticated user. The whole operation is
// all-or-nothing: a failure at any step leaves no ticket behind.
func (h *TicketHandler) Purchase(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req purchaseRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	result, err := h.purchases.Purchase(e.Request.Context(), services.PurchaseRequest{
		UserID:        e.Auth.Id,
		EventID:       req.EventID,
		Quantity:      req.Quantity,
		PaymentMethod: req.PaymentMethod,
		CardLastFour:  req.CardLastFour,
	})
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusCreated, result)
}

// MyTickets lists the authenticated user's tickets, newest first.
func (h *TicketHandler) MyTickets(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	filter := services.TicketFilter{
		Status:  e.Request.URL.Query().Get("status"),
		Page:    queryInt(e, "page", 1),
		PerPage: queryInt(e, "limit", 10),
	}

	tickets, total, err := h.tickets.MyTickets(e.Request.Context(), e.Auth.Id, filter)
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

// Get returns one ticket, visible to its owner and to admins.
func (h *TicketHandler) Get(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	ticket, err := h.tickets.TicketByID(e.Request.Context(),
		e.Auth.Id, isAdmin(e.Auth), e.Request.PathValue("ticketId"))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, ticket)
}

// Cancel refunds a paid ticket, subject to the cancellation window.
func (h *TicketHandler) Cancel(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	result, err := h.tickets.Cancel(e.Request.Context(), services.CancelRequest{
		UserID:   e.Auth.Id,
		IsAdmin:  isAdmin(e.Auth),
		TicketID: e.Request.PathValue("ticketId"),
	})
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"message":       "Ticket cancelled and refunded",
		"ticket_number": result.TicketNumber,
		"refund_amount": result.RefundAmount,
	})
}
