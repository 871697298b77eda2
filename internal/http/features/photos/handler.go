package photos

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

// Handler handles photo metadata endpoints.
type Handler struct {
	logger *slog.Logger
	photos *catalog.PhotoService
}

// NewHandler creates a new photos handler.
func NewHandler(logger *slog.Logger, photos *catalog.PhotoService) *Handler {
	return &Handler{logger: logger, photos: photos}
}

// PhotoResponse represents an uploaded photo.
type PhotoResponse struct {
	ID         string  `json:"id"`
	StoreID    *string `json:"store_id,omitempty"`
	FoodItemID *string `json:"food_item_id,omitempty"`
	ObjectKey  string  `json:"object_key"`
	FileName   string  `json:"file_name,omitempty"`
	FileSize   int64   `json:"file_size,omitempty"`
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	IsFeatured bool    `json:"is_featured"`
}

// RegisterRequest represents a photo registration request.
type RegisterRequest struct {
	StoreID    *string `json:"store_id"`
	FoodItemID *string `json:"food_item_id"`
	ObjectKey  string  `json:"object_key"`
	FileName   string  `json:"file_name"`
	FileSize   int64   `json:"file_size"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
}

func photoResponse(p *domain.Photo) PhotoResponse {
	resp := PhotoResponse{
		ID:         p.ID.String(),
		ObjectKey:  p.ObjectKey,
		FileName:   p.FileName,
		FileSize:   p.FileSize,
		Width:      p.Width,
		Height:     p.Height,
		IsFeatured: p.IsFeatured,
	}
	if p.StoreID != nil {
		s := p.StoreID.String()
		resp.StoreID = &s
	}
	if p.FoodItemID != nil {
		s := p.FoodItemID.String()
		resp.FoodItemID = &s
	}
	return resp
}

func photoListResponse(list []*domain.Photo) []PhotoResponse {
	out := make([]PhotoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, photoResponse(p))
	}
	return out
}

// Register records an uploaded photo's metadata.
// POST /v1/photos
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

	svcReq := catalog.RegisterPhotoRequest{
		ObjectKey: req.ObjectKey,
		FileName:  req.FileName,
		FileSize:  req.FileSize,
		Width:     req.Width,
		Height:    req.Height,
	}
	if req.StoreID != nil {
		id, err := uuid.Parse(*req.StoreID)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, "invalid store id")
			return
		}
		svcReq.StoreID = &id
	}
	if req.FoodItemID != nil {
		id, err := uuid.Parse(*req.FoodItemID)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, "invalid food item id")
			return
		}
		svcReq.FoodItemID = &id
	}

	photo, err := h.photos.RegisterPhoto(r.Context(), userID, svcReq)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, photoResponse(photo))
}

// ListByStore returns a store's active photos.
// GET /v1/stores/{storeID}/photos
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

	list, err := h.photos.ListStorePhotos(r.Context(), storeID, userID)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, photoListResponse(list))
}

// ListByFoodItem returns a food item's active photos.
// GET /v1/food-items/{foodItemID}/photos
func (h *Handler) ListByFoodItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	foodItemID, err := uuid.Parse(chi.URLParam(r, "foodItemID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid food item id")
		return
	}

	list, err := h.photos.ListFoodItemPhotos(r.Context(), foodItemID, userID)
	if err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, photoListResponse(list))
}

// SetFeatured marks a photo as its food item's featured photo.
// POST /v1/photos/{photoID}/featured
func (h *Handler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	userID, photoID, ok := h.callerAndPhoto(w, r)
	if !ok {
		return
	}

	if err := h.photos.SetFeaturedPhoto(r.Context(), photoID, userID); err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete soft-deletes a photo.
// DELETE /v1/photos/{photoID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, photoID, ok := h.callerAndPhoto(w, r)
	if !ok {
		return
	}

	if err := h.photos.DeletePhoto(r.Context(), photoID, userID); err != nil {
		httputil.ErrorFrom(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) callerAndPhoto(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	photoID, err := uuid.Parse(chi.URLParam(r, "photoID"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid photo id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, photoID, true
}
