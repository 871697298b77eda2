package devices

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mealboard/mealboard/internal/http/middleware"
	"github.com/mealboard/mealboard/internal/httputil"
	"github.com/mealboard/mealboard/pkg/account"
)

// Handler handles push token endpoints.
type Handler struct {
	logger  *slog.Logger
	devices *account.DeviceService
}

// NewHandler creates a new devices handler.
func NewHandler(logger *slog.Logger, devices *account.DeviceService) *Handler {
	return &Handler{logger: logger, devices: devices}
}

// DeviceResponse represents a registered push token.
type DeviceResponse struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

// RegisterRequest represents a push token registration request.
type RegisterRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

// RevokeRequest represents a push token revocation request.
type RevokeRequest struct {
	Token string `json:"token"`
}

// Register records a push token for the caller, reclaiming the token if
// another account held it.
// POST /v1/devices
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BodyError(w, err)
		return
	}

	t, err := h.devices.RegisterDevice(r.Context(), userID, req.Token, req.Platform)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, DeviceResponse{Token: t.Token, Platform: t.Platform})
}

// List returns the caller's active push tokens.
// GET /v1/devices
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	list, err := h.devices.ListDevices(r.Context(), userID)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	out := make([]DeviceResponse, 0, len(list))
	for _, t := range list {
		out = append(out, DeviceResponse{Token: t.Token, Platform: t.Platform})
	}
	httputil.JSON(w, http.StatusOK, out)
}

// Revoke deactivates a push token, typically on sign-out.
// POST /v1/devices/revoke
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req RevokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BodyError(w, err)
		return
	}

	if err := h.devices.RevokeDevice(r.Context(), req.Token); err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
