package domain

import (
	"time"

	"github.com/google/uuid"
)

// Photo is an uploaded image owned by a user, optionally attached to a
// store or a food item. Only the object key is stored; file storage and
// URL signing live outside this core.
type Photo struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	StoreID    *uuid.UUID
	FoodItemID *uuid.UUID
	ObjectKey  string
	FileName   string
	FileSize   int64
	Width      int
	Height     int
	IsFeatured bool
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewPhoto creates an active photo record.
func NewPhoto(userID uuid.UUID, storeID, foodItemID *uuid.UUID, objectKey, fileName string, fileSize int64, width, height int) *Photo {
	now := time.Now()
	return &Photo{
		ID:         uuid.New(),
		UserID:     userID,
		StoreID:    storeID,
		FoodItemID: foodItemID,
		ObjectKey:  objectKey,
		FileName:   fileName,
		FileSize:   fileSize,
		Width:      width,
		Height:     height,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Deactivate soft-deletes the photo. Idempotent.
func (p *Photo) Deactivate() {
	if !p.IsActive {
		return
	}
	p.IsActive = false
	p.UpdatedAt = time.Now()
}
