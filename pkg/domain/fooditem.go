package domain

import (
	"time"

	"github.com/google/uuid"
)

// FoodItem is a dish offered by a store. Menus reference food items through
// menu items; photos may be attached directly.
type FoodItem struct {
	ID            uuid.UUID
	StoreID       uuid.UUID
	Name          string
	Description   string
	Ingredients   string
	CookingMethod string
	PriceCents    int64
	ThumbnailURL  string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewFoodItem creates an active food item for a store.
func NewFoodItem(storeID uuid.UUID, name, description, ingredients, cookingMethod string, priceCents int64, thumbnailURL string) *FoodItem {
	now := time.Now()
	return &FoodItem{
		ID:            uuid.New(),
		StoreID:       storeID,
		Name:          name,
		Description:   description,
		Ingredients:   ingredients,
		CookingMethod: cookingMethod,
		PriceCents:    priceCents,
		ThumbnailURL:  thumbnailURL,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Update replaces the food item's editable fields.
func (f *FoodItem) Update(name, description, ingredients, cookingMethod string, priceCents int64, thumbnailURL string) {
	f.Name = name
	f.Description = description
	f.Ingredients = ingredients
	f.CookingMethod = cookingMethod
	f.PriceCents = priceCents
	f.ThumbnailURL = thumbnailURL
	f.UpdatedAt = time.Now()
}

// Deactivate soft-deletes the food item. Idempotent.
func (f *FoodItem) Deactivate() {
	if !f.IsActive {
		return
	}
	f.IsActive = false
	f.UpdatedAt = time.Now()
}
