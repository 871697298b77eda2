package domain

import (
	"time"

	"github.com/google/uuid"
)

// Menu groups menu items under a store.
type Menu struct {
	ID          uuid.UUID
	StoreID     uuid.UUID
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewMenu creates an active menu for a store.
func NewMenu(storeID uuid.UUID, name, description string) *Menu {
	now := time.Now()
	return &Menu{
		ID:          uuid.New(),
		StoreID:     storeID,
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Update replaces the menu's editable fields.
func (m *Menu) Update(name, description string) {
	m.Name = name
	m.Description = description
	m.UpdatedAt = time.Now()
}

// Deactivate soft-deletes the menu. Idempotent.
func (m *Menu) Deactivate() {
	if !m.IsActive {
		return
	}
	m.IsActive = false
	m.UpdatedAt = time.Now()
}

// MenuItem places a food item on a menu at a display position.
type MenuItem struct {
	ID           uuid.UUID
	MenuID       uuid.UUID
	FoodItemID   uuid.UUID
	DisplayOrder int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewMenuItem creates an active menu item.
func NewMenuItem(menuID, foodItemID uuid.UUID, displayOrder int) *MenuItem {
	now := time.Now()
	return &MenuItem{
		ID:           uuid.New(),
		MenuID:       menuID,
		FoodItemID:   foodItemID,
		DisplayOrder: displayOrder,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Deactivate soft-deletes the menu item. Idempotent.
func (mi *MenuItem) Deactivate() {
	if !mi.IsActive {
		return
	}
	mi.IsActive = false
	mi.UpdatedAt = time.Now()
}
