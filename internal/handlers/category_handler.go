package handlers

import (
	"net/http"

	"event-management/internal/services"
	"event-management/internal/store"
	"event-management/models"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type CategoryHandler struct {
	store   *store.Store
	reports *services.ReportingService
}

func NewCategoryHandler(store *store.Store, reports *services.ReportingService) *CategoryHandler {
	return &CategoryHandler{store: store, reports: reports}
}

func (h *CategoryHandler) List(e *core.RequestEvent) error {
	categories, err := h.store.ListCategories(e.Request.Context())
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"categories": categories})
}

func (h *CategoryHandler) Create(e *core.RequestEvent) error {
	if !isAdmin(e.Auth) {
		return apis.NewForbiddenError("Admin access required", nil)
	}

	var category models.Category
	if err := e.BindBody(&category); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	created, err := h.store.CreateCategory(e.Request.Context(), &category)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusCreated, created)
}

// Initialize resets the catalog to the default category set.
func (h *CategoryHandler) Initialize(e *core.RequestEvent) error {
	if !isAdmin(e.Auth) {
		return apis.NewForbiddenError("Admin access required", nil)
	}

	categories, err := h.store.InitializeCategories(e.Request.Context())
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{
		"message":    "Categories initialized",
		"categories": categories,
	})
}

// WithCounts lists categories annotated with their event counts.
func (h *CategoryHandler) WithCounts(e *core.RequestEvent) error {
	rows, err := h.reports.CategoriesWithCounts(e.Request.Context())
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"categories": rows})
}
