package handlers

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"event-management/models"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type AuthHandler struct {
	app *pocketbase.PocketBase
}

func NewAuthHandler(app *pocketbase.PocketBase) *AuthHandler {
	return &AuthHandler{app: app}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a user account and signs them in.
func (h *AuthHandler) Register(e *core.RequestEvent) error {
	var req registerRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" {
		return apis.NewBadRequestError("Name is required", nil)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return apis.NewBadRequestError("A valid email is required", nil)
	}
	if len(req.Password) < 8 {
		return apis.NewBadRequestError("Password must be at least 8 characters", nil)
	}

	if _, err := h.app.FindAuthRecordByEmail("users", req.Email); err == nil {
		return apis.NewBadRequestError("User already exists", nil)
	}

	collection, err := h.app.FindCollectionByNameOrId("users")
	if err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "something went wrong", err)
	}

	record := core.NewRecord(collection)
	record.Set("name", req.Name)
	record.Set("email", req.Email)
	record.Set("phone", req.Phone)
	record.Set("role", models.RoleUser)
	record.SetPassword(req.Password)

	if err := h.app.Save(record); err != nil {
		return apis.NewBadRequestError("Failed to create user", err)
	}

	token, err := record.NewAuthToken()
	if err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "something went wrong", err)
	}

	slog.Info("user registered", "user_id", record.Id)

	return e.JSON(http.StatusCreated, authResponse{
		Token: token,
		User:  userResponse(record),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues an auth token.
func (h *AuthHandler) Login(e *core.RequestEvent) error {
	var req loginRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	record, err := h.app.FindAuthRecordByEmail("users", strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil || !record.ValidatePassword(req.Password) {
		return apis.NewUnauthorizedError("Invalid email or password", nil)
	}

	token, err := record.NewAuthToken()
	if err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "something went wrong", err)
	}

	return e.JSON(http.StatusOK, authResponse{
		Token: token,
		User:  userResponse(record),
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}
	return e.JSON(http.StatusOK, userResponse(e.Auth))
}

func userResponse(record *core.Record) *models.User {
	return &models.User{
		ID:        record.Id,
		Name:      record.GetString("name"),
		Email:     record.GetString("email"),
		Phone:     record.GetString("phone"),
		Role:      record.GetString("role"),
		CreatedAt: record.GetDateTime("created").Time(),
	}
}

func isAdmin(record *core.Record) bool {
	return record != nil && record.GetString("role") == models.RoleAdmin
}
