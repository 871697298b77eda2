package menus

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mealboard/mealboard/internal/http/middleware"
	"github.com/mealboard/mealboard/internal/httputil"
	"github.com/mealboard/mealboard/pkg/catalog"
	"github.com/mealboard/mealboard/pkg/domain"
)

// Handler handles menu and menu item endpoints.
type Handler struct {
	logger *slog.Logger
	menus  *catalog.MenuService
}

// NewHandler creates a new menus handler.
func NewHandler(logger *slog.Logger, menus *catalog.MenuService) *Handler {
	return &Handler{logger: logger, menus: menus}
}

// MenuResponse represents a menu.
type MenuResponse struct {
	ID          string `json:"id"`
	StoreID     string `json:"store_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// MenuItemResponse represents a food item's placement on a menu.
type MenuItemResponse struct {
	ID           string `json:"id"`
	FoodItemID   string `json:"food_item_id"`
	DisplayOrder int    `json:"display_order"`
}

// MenuRequest represents a menu create or update request.
type MenuRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddItemRequest represents a menu item placement request.
type AddItemRequest struct {
	FoodItemID   string `json:"food_item_id"`
	DisplayOrder int    `json:"display_order"`
}

// ReorderItemRequest represents a display order change.
type ReorderItemRequest struct {
	DisplayOrder int `json:"display_order"`
}

func menuResponse(m *domain.Menu) MenuResponse {
	return MenuResponse{
		ID:          m.ID.String(),
		StoreID:     m.StoreID.String(),
		Name:        m.Name,
		Description: m.Description,
	}
}

func menuItemResponse(i *domain.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:           i.ID.String(),
		FoodItemID:   i.FoodItemID.String(),
		DisplayOrder: i.DisplayOrder,
	}
}

// Create creates a menu under a store.
// POST /v1/stores/{storeID}/menus
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	storeID, err := uuid.Parse(chi.URLParam(r, "storeID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid store id")
		return
	}

	var req MenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BodyError(w, err)
		return
	}

	menu, err := h.menus.CreateMenu(r.Context(), storeID, userID, req.Name, req.Description)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, menuResponse(menu))
}

// ListByStore returns a store's active menus.
// GET /v1/stores/{storeID}/menus
func (h *Handler) ListByStore(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	storeID, err := uuid.Parse(chi.URLParam(r, "storeID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid store id")
		return
	}

	list, err := h.menus.ListMenus(r.Context(), storeID, userID)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	out := make([]MenuResponse, 0, len(list))
	for _, m := range list {
		out = append(out, menuResponse(m))
	}
	httputil.JSON(w, http.StatusOK, out)
}

// Get returns a menu.
// GET /v1/menus/{menuID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, menuID, ok := h.callerAndMenu(w, r)
	if !ok {
		return
	}

	menu, err := h.menus.GetMenu(r.Context(), menuID, userID)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, menuResponse(menu))
}

// Update updates a menu's name and description.
// PATCH /v1/menus/{menuID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, menuID, ok := h.callerAndMenu(w, r)
	if !ok {
		return
	}

	var req MenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BodyError(w, err)
		return
	}

	menu, err := h.menus.UpdateMenu(r.Context(), menuID, userID, req.Name, req.Description)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, menuResponse(menu))
}

// Delete soft-deletes a menu and its item placements.
// DELETE /v1/menus/{menuID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, menuID, ok := h.callerAndMenu(w, r)
	if !ok {
		return
	}

	if err := h.menus.DeleteMenu(r.Context(), menuID, userID); err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddItem places a food item on a menu.
// POST /v1/menus/{menuID}/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, menuID, ok := h.callerAndMenu(w, r)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BodyError(w, err)
		return
	}
	foodItemID, err := uuid.Parse(req.FoodItemID)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid food item id")
		return
	}

	item, err := h.menus.AddMenuItem(r.Context(), menuID, foodItemID, userID, req.DisplayOrder)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, menuItemResponse(item))
}

// ListItems returns a menu's placements in display order.
// GET /v1/menus/{menuID}/items
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, menuID, ok := h.callerAndMenu(w, r)
	if !ok {
		return
	}

	list, err := h.menus.ListMenuItems(r.Context(), menuID, userID)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	out := make([]MenuItemResponse, 0, len(list))
	for _, i := range list {
		out = append(out, menuItemResponse(i))
	}
	httputil.JSON(w, http.StatusOK, out)
}

// ReorderItem moves a placement to a new display position.
// PATCH /v1/menus/{menuID}/items/{itemID}
func (h *Handler) ReorderItem(w http.ResponseWriter, r *http.Request) {
	userID, menuID, ok := h.callerAndMenu(w, r)
	if !ok {
		return
	}
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req ReorderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BodyError(w, err)
		return
	}

	if err := h.menus.ReorderMenuItem(r.Context(), menuID, itemID, userID, req.DisplayOrder); err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveItem takes a placement off a menu.
// DELETE /v1/menus/{menuID}/items/{itemID}
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, menuID, ok := h.callerAndMenu(w, r)
	if !ok {
		return
	}
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.menus.RemoveMenuItem(r.Context(), menuID, itemID, userID); err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) callerAndMenu(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	menuID, err := uuid.Parse(chi.URLParam(r, "menuID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid menu id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, menuID, true
}
