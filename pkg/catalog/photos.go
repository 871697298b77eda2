package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
)

// RegisterPhotoRequest carries the metadata of an uploaded photo. The
// object itself lives in external storage under ObjectKey.
type RegisterPhotoRequest struct {
	StoreID    *uuid.UUID
	FoodItemID *uuid.UUID
	ObjectKey  string
	FileName   string
	FileSize   int64
	Width      int
	Height     int
}

// PhotoService manages photo metadata for stores and food items.
type PhotoService struct {
	logger    *slog.Logger
	db        *sql.DB
	photos    PhotoRepo
	foodItems FoodItemRepo
	authz     Authorizer
}

func NewPhotoService(logger *slog.Logger, db *sql.DB, photos PhotoRepo, foodItems FoodItemRepo, authz Authorizer) *PhotoService {
	return &PhotoService{
		logger:    logger,
		db:        db,
		photos:    photos,
		foodItems: foodItems,
		authz:     authz,
	}
}

// RegisterPhoto records an uploaded photo. The photo must be attached to a
// store, a food item, or both; food item attachments also pin the photo to
// the item's store.
func (s *PhotoService) RegisterPhoto(ctx context.Context, userID uuid.UUID, req RegisterPhotoRequest) (*domain.Photo, error) {
	if req.ObjectKey == "" {
		return nil, fmt.Errorf("%w: object key is required", domain.ErrInvalidRequest)
	}
	if req.StoreID == nil && req.FoodItemID == nil {
		return nil, fmt.Errorf("%w: photo needs a store or food item", domain.ErrInvalidRequest)
	}

	storeID := req.StoreID
	if req.FoodItemID != nil {
		item, err := s.foodItems.GetByID(ctx, *req.FoodItemID)
		if err != nil {
			return nil, err
		}
		if storeID != nil && *storeID != item.StoreID {
			return nil, fmt.Errorf("%w: food item belongs to another store", domain.ErrInvalidRequest)
		}
		storeID = &item.StoreID
	}
	if !s.authz.CanAccessStore(ctx, userID, *storeID) {
		return nil, domain.ErrAccessDenied
	}

	photo := domain.NewPhoto(userID, storeID, req.FoodItemID, req.ObjectKey, req.FileName, req.FileSize, req.Width, req.Height)
	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// ListStorePhotos returns the active photos attached to a store or to its
// food items.
func (s *PhotoService) ListStorePhotos(ctx context.Context, storeID, requesterID uuid.UUID) ([]*domain.Photo, error) {
	if !s.authz.CanAccessStore(ctx, requesterID, storeID) {
		return nil, domain.ErrAccessDenied
	}
	return s.photos.ListActiveByStore(ctx, storeID)
}

// ListFoodItemPhotos returns the active photos of a food item.
func (s *PhotoService) ListFoodItemPhotos(ctx context.Context, foodItemID, requesterID uuid.UUID) ([]*domain.Photo, error) {
	item, err := s.foodItems.GetByID(ctx, foodItemID)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanAccessStore(ctx, requesterID, item.StoreID) {
		return nil, domain.ErrAccessDenied
	}
	return s.photos.ListActiveByFoodItem(ctx, foodItemID)
}

// SetFeaturedPhoto marks a photo as the featured one for its food item,
// clearing the flag on its siblings.
func (s *PhotoService) SetFeaturedPhoto(ctx context.Context, photoID, requesterID uuid.UUID) error {
	photo, storeID, err := s.photoAndStore(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.FoodItemID == nil {
		return fmt.Errorf("%w: photo is not attached to a food item", domain.ErrInvalidRequest)
	}
	if !s.authz.CanModifyMenu(ctx, requesterID, storeID) {
		return domain.ErrAccessDenied
	}
	return s.photos.SetFeatured(ctx, s.db, photoID, *photo.FoodItemID)
}

// DeletePhoto soft-deletes a photo. The uploader may delete their own
// photos; members with menu authority may delete any photo in the store.
func (s *PhotoService) DeletePhoto(ctx context.Context, photoID, requesterID uuid.UUID) error {
	photo, storeID, err := s.photoAndStore(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.UserID != requesterID && !s.authz.CanModifyMenu(ctx, requesterID, storeID) {
		return domain.ErrAccessDenied
	}
	return s.photos.Deactivate(ctx, s.db, photoID)
}

func (s *PhotoService) photoAndStore(ctx context.Context, photoID uuid.UUID) (*domain.Photo, uuid.UUID, error) {
	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if photo.StoreID != nil {
		return photo, *photo.StoreID, nil
	}
	if photo.FoodItemID == nil {
		return nil, uuid.Nil, fmt.Errorf("%w: photo has no attachment", domain.ErrInvalidRequest)
	}
	item, err := s.foodItems.GetByID(ctx, *photo.FoodItemID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return photo, item.StoreID, nil
}
