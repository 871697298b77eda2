package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
)

// FoodItemRequest carries the fields of a food item create or update.
type FoodItemRequest struct {
	Name          string
	Description   string
	Ingredients   string
	CookingMethod string
	PriceCents    int64
	ThumbnailURL  string
}

// FoodItemService manages a store's dishes.
type FoodItemService struct {
	logger    *slog.Logger
	db        *sql.DB
	foodItems FoodItemRepo
	menuItems MenuItemRepo
	photos    PhotoRepo
	authz     Authorizer
}

func NewFoodItemService(logger *slog.Logger, db *sql.DB, foodItems FoodItemRepo, menuItems MenuItemRepo, photos PhotoRepo, authz Authorizer) *FoodItemService {
	return &FoodItemService{
		logger:    logger,
		db:        db,
		foodItems: foodItems,
		menuItems: menuItems,
		photos:    photos,
		authz:     authz,
	}
}

// CreateFoodItem registers a dish under a store.
func (s *FoodItemService) CreateFoodItem(ctx context.Context, storeID, requesterID uuid.UUID, req FoodItemRequest) (*domain.FoodItem, error) {
	if !s.authz.CanModifyMenu(ctx, requesterID, storeID) {
		return nil, domain.ErrAccessDenied
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: food item name is required", domain.ErrInvalidRequest)
	}
	if req.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidRequest)
	}

	item := domain.NewFoodItem(storeID, req.Name, req.Description, req.Ingredients, req.CookingMethod, req.PriceCents, req.ThumbnailURL)
	if err := s.foodItems.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetFoodItem returns an active dish for a member of its store.
func (s *FoodItemService) GetFoodItem(ctx context.Context, foodItemID, requesterID uuid.UUID) (*domain.FoodItem, error) {
	item, err := s.foodItems.GetByID(ctx, foodItemID)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanAccessStore(ctx, requesterID, item.StoreID) {
		return nil, domain.ErrAccessDenied
	}
	return item, nil
}

// ListFoodItems returns a store's active dishes, optionally filtered by a
// name keyword.
func (s *FoodItemService) ListFoodItems(ctx context.Context, storeID, requesterID uuid.UUID, keyword string) ([]*domain.FoodItem, error) {
	if !s.authz.CanAccessStore(ctx, requesterID, storeID) {
		return nil, domain.ErrAccessDenied
	}
	keyword = strings.TrimSpace(keyword)
	if keyword != "" {
		return s.foodItems.SearchActiveByStore(ctx, storeID, keyword)
	}
	return s.foodItems.ListActiveByStore(ctx, storeID)
}

// UpdateFoodItem updates a dish's details.
func (s *FoodItemService) UpdateFoodItem(ctx context.Context, foodItemID, requesterID uuid.UUID, req FoodItemRequest) (*domain.FoodItem, error) {
	item, err := s.foodItems.GetByID(ctx, foodItemID)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanModifyMenu(ctx, requesterID, item.StoreID) {
		return nil, domain.ErrAccessDenied
	}
	if req.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidRequest)
	}

	item.Update(req.Name, req.Description, req.Ingredients, req.CookingMethod, req.PriceCents, req.ThumbnailURL)
	if err := s.foodItems.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteFoodItem soft-deletes a dish together with its photos and menu
// placements, children first. Steps are idempotent, so a failed delete can
// be retried.
func (s *FoodItemService) DeleteFoodItem(ctx context.Context, foodItemID, requesterID uuid.UUID) error {
	item, err := s.foodItems.GetByID(ctx, foodItemID)
	if err != nil {
		return err
	}
	if !s.authz.CanModifyMenu(ctx, requesterID, item.StoreID) {
		return domain.ErrAccessDenied
	}

	if err := s.photos.DeactivateByFoodItemID(ctx, s.db, foodItemID); err != nil {
		return fmt.Errorf("deactivate photos: %w", err)
	}
	if err := s.menuItems.DeactivateByFoodItemID(ctx, s.db, foodItemID); err != nil {
		return fmt.Errorf("deactivate menu items: %w", err)
	}
	if err := s.foodItems.Deactivate(ctx, s.db, foodItemID); err != nil {
		return fmt.Errorf("deactivate food item: %w", err)
	}
	s.logger.Info("food item deleted", "food_item_id", foodItemID, "store_id", item.StoreID)
	return nil
}
