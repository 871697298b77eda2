package me

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mealboard/mealboard/internal/http/middleware"
	"github.com/mealboard/mealboard/internal/httputil"
	"github.com/mealboard/mealboard/pkg/account"
	"github.com/mealboard/mealboard/pkg/domain"
)

// Handler handles user profile and account lifecycle endpoints.
type Handler struct {
	logger *slog.Logger
	users  *account.UserService
}

// NewHandler creates a new me handler.
func NewHandler(logger *slog.Logger, users *account.UserService) *Handler {
	return &Handler{logger: logger, users: users}
}

// UserResponse represents the user profile response.
type UserResponse struct {
	ID      string     `json:"id"`
	Email   string     `json:"email"`
	Name    *string    `json:"name,omitempty"`
	Phone   *string    `json:"phone,omitempty"`
	Picture *string    `json:"picture,omitempty"`
	Deleted *time.Time `json:"deleted_at,omitempty"`
}

// UpdateRequest represents a profile update request.
type UpdateRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Picture *string `json:"picture,omitempty"`
}

func userResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:      u.ID.String(),
		Email:   u.Email,
		Name:    u.Name,
		Phone:   u.Phone,
		Picture: u.Picture,
		Deleted: u.DeletedAt,
	}
}

// EnsureMe resolves the token subject to an account, creating it from the
// token's profile claims on first sign-in. A deleted account comes back
// with its deletion timestamp so the client can offer reinstatement.
// POST /v1/me
func (h *Handler) EnsureMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var name *string
	if claims.Name != "" {
		name = &claims.Name
	}

	user, err := h.users.EnsureUser(r.Context(), userID, claims.Email, name)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, userResponse(user))
}

// GetMe returns the current user's profile.
// GET /v1/me
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, userResponse(user))
}

// UpdateMe updates the current user's profile.
// PATCH /v1/me
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BodyError(w, err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, account.UpdateProfileRequest{
		Name:    req.Name,
		Phone:   req.Phone,
		Picture: req.Picture,
	})
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, userResponse(user))
}

// DeleteMe soft-deletes the current user's account.
// DELETE /v1/me
func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.users.DeleteAccount(r.Context(), userID); err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reinstate restores the current user's deleted account once the grace
// period has passed.
// POST /v1/me/reinstate
func (h *Handler) Reinstate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.users.ReinstateAccount(r.Context(), userID)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, userResponse(user))
}
