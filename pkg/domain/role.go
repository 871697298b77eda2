package domain

import "strings"

// RoleType represents a member's authority level within a store.
type RoleType string

const (
	RoleOwner   RoleType = "owner"
	RoleCoOwner RoleType = "co_owner"
	RoleManager RoleType = "manager"
	RoleStaff   RoleType = "staff"
)

// manageThreshold is the minimum authority level for store management,
// member invitation, and menu modification.
const manageThreshold = 70

// AuthorityLevel returns the integer rank of the role. Levels are strictly
// distinct so role comparisons never tie.
func (r RoleType) AuthorityLevel() int {
	switch r {
	case RoleOwner:
		return 100
	case RoleCoOwner:
		return 90
	case RoleManager:
		return 70
	case RoleStaff:
		return 30
	default:
		return 0
	}
}

// CanManageStore returns true if the role may manage store settings.
func (r RoleType) CanManageStore() bool {
	return r.AuthorityLevel() >= manageThreshold
}

// CanInviteMembers returns true if the role may invite new members.
// Invite and manage share the same authority floor.
func (r RoleType) CanInviteMembers() bool {
	return r.AuthorityLevel() >= manageThreshold
}

// CanModifyMenu returns true if the role may create or edit menus.
func (r RoleType) CanModifyMenu() bool {
	return r.AuthorityLevel() >= manageThreshold
}

// HasHigherAuthorityThan reports whether r strictly outranks other.
// A role never outranks itself.
func (r RoleType) HasHigherAuthorityThan(other RoleType) bool {
	return r.AuthorityLevel() > other.AuthorityLevel()
}

// Valid returns true if r is one of the defined role variants.
func (r RoleType) Valid() bool {
	switch r {
	case RoleOwner, RoleCoOwner, RoleManager, RoleStaff:
		return true
	}
	return false
}

// ParseRoleType matches a role name case-insensitively against the defined
// variants. Returns ErrInvalidRoleType on no match.
func ParseRoleType(name string) (RoleType, error) {
	r := RoleType(strings.ToLower(strings.TrimSpace(name)))
	if !r.Valid() {
		return "", ErrInvalidRoleType
	}
	return r, nil
}
