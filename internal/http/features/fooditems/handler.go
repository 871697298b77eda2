package fooditems

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

// Handler handles food item endpoints.
type Handler struct {
	logger    *slog.Logger
	foodItems *catalog.FoodItemService
}

// NewHandler creates a new food items handler.
func NewHandler(logger *slog.Logger, foodItems *catalog.FoodItemService) *Handler {
	return &Handler{logger: logger, foodItems: foodItems}
}

// FoodItemResponse represents a dish.
type FoodItemResponse struct {
	ID            string `json:"id"`
	StoreID       string `json:"store_id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Ingredients   string `json:"ingredients,omitempty"`
	CookingMethod string `json:"cooking_method,omitempty"`
	PriceCents    int64  `json:"price_cents"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
}

// FoodItemRequest represents a dish create or update request.
type FoodItemRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Ingredients   string `json:"ingredients"`
	CookingMethod string `json:"cooking_method"`
	PriceCents    int64  `json:"price_cents"`
	ThumbnailURL  string `json:"thumbnail_url"`
}

func foodItemResponse(f *domain.FoodItem) FoodItemResponse {
	return FoodItemResponse{
		ID:            f.ID.String(),
		StoreID:       f.StoreID.String(),
		Name:          f.Name,
		Description:   f.Description,
		Ingredients:   f.Ingredients,
		CookingMethod: f.CookingMethod,
		PriceCents:    f.PriceCents,
		ThumbnailURL:  f.ThumbnailURL,
	}
}

func (r FoodItemRequest) toService() catalog.FoodItemRequest {
	return catalog.FoodItemRequest{
		Name:          r.Name,
		Description:   r.Description,
		Ingredients:   r.Ingredients,
		CookingMethod: r.CookingMethod,
		PriceCents:    r.PriceCents,
		ThumbnailURL:  r.ThumbnailURL,
	}
}

// Create registers a dish under a store.
// POST /v1/stores/{storeID}/food-items
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

	var req FoodItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BodyError(w, err)
		return
	}

	item, err := h.foodItems.CreateFoodItem(r.Context(), storeID, userID, req.toService())
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, foodItemResponse(item))
}

// ListByStore returns a store's active dishes, optionally filtered by a
// name keyword.
// GET /v1/stores/{storeID}/food-items?keyword=
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

	list, err := h.foodItems.ListFoodItems(r.Context(), storeID, userID, r.URL.Query().Get("keyword"))
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	out := make([]FoodItemResponse, 0, len(list))
	for _, f := range list {
		out = append(out, foodItemResponse(f))
	}
	httputil.JSON(w, http.StatusOK, out)
}

// Get returns a dish.
// GET /v1/food-items/{foodItemID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, foodItemID, ok := h.callerAndItem(w, r)
	if !ok {
		return
	}

	item, err := h.foodItems.GetFoodItem(r.Context(), foodItemID, userID)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, foodItemResponse(item))
}

// Update updates a dish's details.
// PATCH /v1/food-items/{foodItemID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, foodItemID, ok := h.callerAndItem(w, r)
	if !ok {
		return
	}

	var req FoodItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BodyError(w, err)
		return
	}

	item, err := h.foodItems.UpdateFoodItem(r.Context(), foodItemID, userID, req.toService())
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, foodItemResponse(item))
}

// Delete soft-deletes a dish with its photos and menu placements.
// DELETE /v1/food-items/{foodItemID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, foodItemID, ok := h.callerAndItem(w, r)
	if !ok {
		return
	}

	if err := h.foodItems.DeleteFoodItem(r.Context(), foodItemID, userID); err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) callerAndItem(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	foodItemID, err := uuid.Parse(chi.URLParam(r, "foodItemID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid food item id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, foodItemID, true
}
