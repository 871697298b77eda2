package domain

import (
	"time"

	"github.com/google/uuid"
)

// Platform identifies the device type a push token belongs to.
const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
)

// DeviceToken is a push-notification token registered by a user's device.
// Delivery is handled outside this core; tokens only participate in the
// user lifecycle cascade here.
type DeviceToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	Platform  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDeviceToken creates an active device token.
func NewDeviceToken(userID uuid.UUID, token, platform string) *DeviceToken {
	now := time.Now()
	return &DeviceToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		Platform:  platform,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Deactivate soft-deletes the token. Idempotent.
func (t *DeviceToken) Deactivate() {
	if !t.IsActive {
		return
	}
	t.IsActive = false
	t.UpdatedAt = time.Now()
}
