package domain

import (
	"time"

	"github.com/google/uuid"
)

// Membership binds one user to one store with one role and an active flag.
// At most one active membership exists per (user, store) pair. A membership
// is never physically deleted; deactivation is the terminal state.
type Membership struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	StoreID   uuid.UUID
	Role      RoleType
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOwnerMembership creates the owner record for a freshly created store.
func NewOwnerMembership(userID, storeID uuid.UUID) *Membership {
	now := time.Now()
	return &Membership{
		ID:        uuid.New(),
		UserID:    userID,
		StoreID:   storeID,
		Role:      RoleOwner,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewEmployeeMembership creates a membership for an invited member.
// The owner role is reserved for store creation and is rejected here.
func NewEmployeeMembership(userID, storeID uuid.UUID, role RoleType) (*Membership, error) {
	if role == RoleOwner {
		return nil, ErrOwnerRoleNotAllowed
	}
	now := time.Now()
	return &Membership{
		ID:        uuid.New(),
		UserID:    userID,
		StoreID:   storeID,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ChangeRole mutates the role in place. Inactive memberships are immutable.
func (m *Membership) ChangeRole(newRole RoleType) error {
	if !m.IsActive {
		return ErrMembershipInactive
	}
	m.Role = newRole
	m.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the membership. Calling it twice is a no-op.
func (m *Membership) Deactivate() {
	if !m.IsActive {
		return
	}
	m.IsActive = false
	m.UpdatedAt = time.Now()
}

// CanManageStore returns true for an active membership with manage authority.
func (m *Membership) CanManageStore() bool {
	return m.IsActive && m.Role.CanManageStore()
}

// CanInviteMembers returns true for an active membership with invite authority.
func (m *Membership) CanInviteMembers() bool {
	return m.IsActive && m.Role.CanInviteMembers()
}

// CanModifyMenu returns true for an active membership with menu authority.
func (m *Membership) CanModifyMenu() bool {
	return m.IsActive && m.Role.CanModifyMenu()
}

// IsOwnerTier reports whether the member holds an ownership-equivalent role.
// Co-owners cannot leave a store either, even though their authority level
// sits below the owner's.
func (m *Membership) IsOwnerTier() bool {
	return m.Role == RoleOwner || m.Role == RoleCoOwner
}

// HasHigherAuthorityThan compares this member's authority against another's.
func (m *Membership) HasHigherAuthorityThan(other *Membership) bool {
	return m.Role.HasHigherAuthorityThan(other.Role)
}
