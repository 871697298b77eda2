package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReinstateWindow is how long a deleted account stays unavailable before
// it may be reinstated.
const ReinstateWindow = 30 * 24 * time.Hour

// User represents the account. It is a root aggregate parallel to Store:
// deactivating a user cascades to their photos, memberships, and device
// tokens.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      *string
	Phone     *string
	Picture   *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewUser creates an active user account. The ID comes from the identity
// provider's token subject, so the account keeps the same ID across
// sign-ins.
func NewUser(id uuid.UUID, email string, name *string) *User {
	now := time.Now()
	return &User{
		ID:        id,
		Email:     email,
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Deactivate soft-deletes the account, stamping the deletion time.
// Idempotent: a second call keeps the original deletion timestamp.
func (u *User) Deactivate() {
	if !u.IsActive {
		return
	}
	now := time.Now()
	u.IsActive = false
	u.DeletedAt = &now
	u.UpdatedAt = now
}

// Reactivate restores a deleted account.
func (u *User) Reactivate() {
	u.IsActive = true
	u.DeletedAt = nil
	u.UpdatedAt = time.Now()
}

// CanReinstate reports whether the deletion grace period has elapsed, so
// the account may be restored on rejoin.
func (u *User) CanReinstate(now time.Time) bool {
	if u.DeletedAt == nil {
		return false
	}
	return u.DeletedAt.Add(ReinstateWindow).Before(now)
}
