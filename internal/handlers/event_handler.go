package handlers

import (
	"net/http"
	"strconv"
	"time"

	"event-management/internal/cache"
	"event-management/internal/services"
	"event-management/internal/store"
	"event-management/models"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type EventHandler struct {
	store        *store.Store
	availability cache.Checker
	reports      *services.ReportingService
}

func NewEventHandler(store *store.Store, availability cache.Checker, reports *services.ReportingService) *EventHandler {
	return &EventHandler{
		store:        store,
		availability: availability,
		reports:      reports,
	}
}

func queryInt(e *core.RequestEvent, name string, fallback int) int {
	raw := e.Request.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// List returns events filtered by category, status and search term.
func (h *EventHandler) List(e *core.RequestEvent) error {
	q := e.Request.URL.Query()
	filter := store.EventFilter{
		CategoryID: q.Get("category"),
		Status:     q.Get("status"),
		Search:     q.Get("search"),
		Page:       queryInt(e, "page", 1),
		PerPage:    queryInt(e, "limit", 10),
	}
	if filter.Status != "" && !models.ValidEventStatus(filter.Status) {
		return apis.NewBadRequestError("Invalid event status", nil)
	}

	events, total, err := h.store.ListEvents(e.Request.Context(), filter)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"events": events,
		"total":  total,
		"page":   filter.Page,
		"limit":  filter.PerPage,
	})
}

func (h *EventHandler) Get(e *core.RequestEvent) error {
	event, err := h.store.EventByID(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(e *core.RequestEvent) error {
	if !isAdmin(e.Auth) {
		return apis.NewForbiddenError("Admin access required", nil)
	}

	var event models.Event
	if err := e.BindBody(&event); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	created, err := h.store.CreateEvent(e.Request.Context(), &event)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusCreated, created)
}

func (h *EventHandler) Update(e *core.RequestEvent) error {
	if !isAdmin(e.Auth) {
		return apis.NewForbiddenError("Admin access required", nil)
	}

	var patch models.Event
	if err := e.BindBody(&patch); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	updated, err := h.store.UpdateEvent(e.Request.Context(), e.Request.PathValue("id"), &patch)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, updated)
}

func (h *EventHandler) Delete(e *core.RequestEvent) error {
	if !isAdmin(e.Auth) {
		return apis.NewForbiddenError("Admin access required", nil)
	}

	if err := h.store.DeleteEvent(e.Request.Context(), e.Request.PathValue("id")); err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]string{"message": "Event deleted"})
}

func (h *EventHandler) Upcoming(e *core.RequestEvent) error {
	events, err := h.store.UpcomingEvents(e.Request.Context(), queryInt(e, "limit", 50))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"events": events})
}

// Search matches by category name and/or location substring.
func (h *EventHandler) Search(e *core.RequestEvent) error {
	q := e.Request.URL.Query()
	category := q.Get("category")
	location := q.Get("location")
	if category == "" && location == "" {
		return apis.NewBadRequestError("Provide a category or location to search", nil)
	}

	events, err := h.store.SearchEvents(e.Request.Context(), category, location,
		queryInt(e, "page", 1), queryInt(e, "limit", 10))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"events": events})
}

func (h *EventHandler) TimeRange(e *core.RequestEvent) error {
	q := e.Request.URL.Query()
	start := q.Get("start_date")
	end := q.Get("end_date")
	if start == "" && end == "" {
		return apis.NewBadRequestError("Provide start_date and/or end_date", nil)
	}
	for _, raw := range []string{start, end} {
		if raw == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			return apis.NewBadRequestError("Dates must be in YYYY-MM-DD format", nil)
		}
	}

	events, err := h.store.EventsInRange(e.Request.Context(), start, end,
		queryInt(e, "page", 1), queryInt(e, "limit", 10))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"events": events})
}

func (h *EventHandler) TopRated(e *core.RequestEvent) error {
	events, err := h.store.TopRatedEvents(e.Request.Context(),
		queryInt(e, "limit", 10), queryInt(e, "min_reviews", 1))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"events": events})
}

func (h *EventHandler) TopRegistered(e *core.RequestEvent) error {
	rows, err := h.reports.TopRegisteredEvents(e.Request.Context(), queryInt(e, "limit", 10))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"events": rows})
}

func (h *EventHandler) CountByStatus(e *core.RequestEvent) error {
	if !isAdmin(e.Auth) {
		return apis.NewForbiddenError("Admin access required", nil)
	}

	rows, err := h.reports.EventCountByStatus(e.Request.Context())
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"counts": rows})
}

// Availability reports capacity, sold and remaining tickets for one event.
func (h *EventHandler) Availability(e *core.RequestEvent) error {
	availability, err := h.availability.Check(e.Request.Context(), e.Request.PathValue("eventId"))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, availability)
}

func (h *EventHandler) TicketsSold(e *core.RequestEvent) error {
	row, err := h.reports.TicketsSold(e.Request.Context(), e.Request.PathValue("eventId"))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, row)
}

func (h *EventHandler) RevenueByEvent(e *core.RequestEvent) error {
	if !isAdmin(e.Auth) {
		return apis.NewForbiddenError("Admin access required", nil)
	}

	rows, err := h.reports.RevenueByEvent(e.Request.Context())
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"revenue": rows})
}
