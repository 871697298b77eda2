package stores

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mealboard/mealboard/internal/http/middleware"
	"github.com/mealboard/mealboard/internal/httputil"
	"github.com/mealboard/mealboard/pkg/access"
	"github.com/mealboard/mealboard/pkg/catalog"
	"github.com/mealboard/mealboard/pkg/domain"
)

// Handler handles store and store membership endpoints.
type Handler struct {
	logger  *slog.Logger
	stores  *catalog.StoreService
	members *access.MemberService
}

// NewHandler creates a new stores handler.
func NewHandler(logger *slog.Logger, stores *catalog.StoreService, members *access.MemberService) *Handler {
	return &Handler{
		logger:  logger,
		stores:  stores,
		members: members,
	}
}

// StoreResponse represents a store.
type StoreResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	BusinessType       string `json:"business_type,omitempty"`
	Address            string `json:"address,omitempty"`
	Phone              string `json:"phone,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
}

// MemberResponse represents a store membership.
type MemberResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// CreateStoreRequest represents a store creation request.
type CreateStoreRequest struct {
	Name               string `json:"name"`
	BusinessType       string `json:"business_type"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	RegistrationNumber string `json:"registration_number"`
}

// UpdateStoreRequest represents a store update request.
type UpdateStoreRequest struct {
	Name         string `json:"name"`
	BusinessType string `json:"business_type"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
}

// InviteMemberRequest represents a member invitation request.
type InviteMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// ChangeRoleRequest represents a role change request.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

func storeResponse(s *domain.Store) StoreResponse {
	return StoreResponse{
		ID:                 s.ID.String(),
		Name:               s.Name,
		BusinessType:       s.BusinessType,
		Address:            s.Address,
		Phone:              s.Phone,
		RegistrationNumber: s.RegistrationNumber,
	}
}

func storeListResponse(list []*domain.Store) []StoreResponse {
	out := make([]StoreResponse, 0, len(list))
	for _, s := range list {
		out = append(out, storeResponse(s))
	}
	return out
}

// Create creates a store owned by the caller.
// POST /v1/stores
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BodyError(w, err)
		return
	}

	store, err := h.stores.CreateStore(r.Context(), userID, catalog.CreateStoreRequest{
		Name:               req.Name,
		BusinessType:       req.BusinessType,
		Address:            req.Address,
		Phone:              req.Phone,
		RegistrationNumber: req.RegistrationNumber,
	})
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, storeResponse(store))
}

// List returns the caller's stores, optionally filtered.
// GET /v1/stores?filter=owned|manageable
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var (
		list []*domain.Store
		err  error
	)
	switch r.URL.Query().Get("filter") {
	case "owned":
		list, err = h.members.OwnedStores(r.Context(), userID)
	case "manageable":
		list, err = h.members.ManageableStores(r.Context(), userID)
	default:
		list, err = h.members.MyStores(r.Context(), userID)
	}
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, storeListResponse(list))
}

// Get returns a store.
// GET /v1/stores/{storeID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, storeID, ok := h.callerAndStore(w, r)
	if !ok {
		return
	}

	store, err := h.stores.GetStore(r.Context(), storeID, userID)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, storeResponse(store))
}

// Update updates a store's details.
// PATCH /v1/stores/{storeID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, storeID, ok := h.callerAndStore(w, r)
	if !ok {
		return
	}

	var req UpdateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BodyError(w, err)
		return
	}

	store, err := h.stores.UpdateStore(r.Context(), storeID, userID, catalog.UpdateStoreRequest{
		Name:         req.Name,
		BusinessType: req.BusinessType,
		Address:      req.Address,
		Phone:        req.Phone,
	})
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, storeResponse(store))
}

// Delete soft-deletes a store and its dependents.
// DELETE /v1/stores/{storeID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, storeID, ok := h.callerAndStore(w, r)
	if !ok {
		return
	}

	if err := h.stores.DeleteStore(r.Context(), storeID, userID); err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMembers returns a store's active members.
// GET /v1/stores/{storeID}/members
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID, storeID, ok := h.callerAndStore(w, r)
	if !ok {
		return
	}

	members, err := h.members.StoreMembers(r.Context(), storeID, userID)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	out := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, MemberResponse{UserID: m.UserID.String(), Role: string(m.Role)})
	}
	httputil.JSON(w, http.StatusOK, out)
}

// InviteMember adds an employee to a store.
// POST /v1/stores/{storeID}/members
func (h *Handler) InviteMember(w http.ResponseWriter, r *http.Request) {
	userID, storeID, ok := h.callerAndStore(w, r)
	if !ok {
		return
	}

	var req InviteMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BodyError(w, err)
		return
	}
	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	role, err := domain.ParseRoleType(req.Role)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	m, err := h.members.InviteMember(r.Context(), storeID, access.InviteRequest{UserID: targetID, Role: role}, userID)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, MemberResponse{UserID: m.UserID.String(), Role: string(m.Role)})
}

// ChangeMemberRole changes a member's role.
// PATCH /v1/stores/{storeID}/members/{userID}/role
func (h *Handler) ChangeMemberRole(w http.ResponseWriter, r *http.Request) {
	userID, storeID, ok := h.callerAndStore(w, r)
	if !ok {
		return
	}
	targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BodyError(w, err)
		return
	}
	role, err := domain.ParseRoleType(req.Role)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	m, err := h.members.ChangeRole(r.Context(), storeID, targetID, role, userID)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, MemberResponse{UserID: m.UserID.String(), Role: string(m.Role)})
}

// RemoveMember removes a member from a store.
// DELETE /v1/stores/{storeID}/members/{userID}
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, storeID, ok := h.callerAndStore(w, r)
	if !ok {
		return
	}
	targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.members.RemoveMember(r.Context(), storeID, targetID, userID); err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Leave removes the caller's own membership. Owners cannot leave.
// POST /v1/stores/{storeID}/leave
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	userID, storeID, ok := h.callerAndStore(w, r)
	if !ok {
		return
	}

	if err := h.members.LeaveStore(r.Context(), storeID, userID); err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) callerAndStore(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	storeID, err := uuid.Parse(chi.URLParam(r, "storeID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid store id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, storeID, true
}
