package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewOwnerMembership(t *testing.T) {
	userID := uuid.New()
	storeID := uuid.New()

	m := NewOwnerMembership(userID, storeID)

	if m.Role != RoleOwner {
		t.Errorf("Role = %q, want %q", m.Role, RoleOwner)
	}
	if !m.IsActive {
		t.Error("new owner membership should be active")
	}
	if m.UserID != userID || m.StoreID != storeID {
		t.Error("membership should carry the given user and store")
	}
}

func TestNewEmployeeMembership(t *testing.T) {
	for _, role := range []RoleType{RoleCoOwner, RoleManager, RoleStaff} {
		m, err := NewEmployeeMembership(uuid.New(), uuid.New(), role)
		if err != nil {
			t.Errorf("NewEmployeeMembership(%q) failed: %v", role, err)
			continue
		}
		if m.Role != role || !m.IsActive {
			t.Errorf("NewEmployeeMembership(%q) = role %q active %v", role, m.Role, m.IsActive)
		}
	}
}

func TestNewEmployeeMembership_RejectsOwner(t *testing.T) {
	_, err := NewEmployeeMembership(uuid.New(), uuid.New(), RoleOwner)
	if !errors.Is(err, ErrOwnerRoleNotAllowed) {
		t.Errorf("err = %v, want ErrOwnerRoleNotAllowed", err)
	}
}

func TestMembership_ChangeRole(t *testing.T) {
	m, err := NewEmployeeMembership(uuid.New(), uuid.New(), RoleStaff)
	if err != nil {
		t.Fatalf("NewEmployeeMembership failed: %v", err)
	}

	if err := m.ChangeRole(RoleManager); err != nil {
		t.Fatalf("ChangeRole failed: %v", err)
	}
	if m.Role != RoleManager {
		t.Errorf("Role = %q, want %q", m.Role, RoleManager)
	}
}

func TestMembership_ChangeRole_Inactive(t *testing.T) {
	m, err := NewEmployeeMembership(uuid.New(), uuid.New(), RoleStaff)
	if err != nil {
		t.Fatalf("NewEmployeeMembership failed: %v", err)
	}
	m.Deactivate()

	if err := m.ChangeRole(RoleManager); !errors.Is(err, ErrMembershipInactive) {
		t.Errorf("ChangeRole on inactive membership: err = %v, want ErrMembershipInactive", err)
	}
	if m.Role != RoleStaff {
		t.Errorf("Role = %q, role must not change on a rejected mutation", m.Role)
	}
}

func TestMembership_Deactivate_Idempotent(t *testing.T) {
	m := NewOwnerMembership(uuid.New(), uuid.New())

	m.Deactivate()
	if m.IsActive {
		t.Fatal("membership should be inactive after Deactivate")
	}
	first := m.UpdatedAt

	m.Deactivate()
	if m.UpdatedAt != first {
		t.Error("second Deactivate should be a no-op")
	}
}

func TestMembership_PermissionsRequireActive(t *testing.T) {
	m := NewOwnerMembership(uuid.New(), uuid.New())
	if !m.CanManageStore() || !m.CanInviteMembers() || !m.CanModifyMenu() {
		t.Fatal("active owner should hold all permissions")
	}

	m.Deactivate()
	if m.CanManageStore() || m.CanInviteMembers() || m.CanModifyMenu() {
		t.Error("inactive membership should hold no permissions")
	}
}

func TestMembership_IsOwnerTier(t *testing.T) {
	tests := []struct {
		role RoleType
		want bool
	}{
		{RoleOwner, true},
		{RoleCoOwner, true},
		{RoleManager, false},
		{RoleStaff, false},
	}

	for _, tt := range tests {
		m := &Membership{Role: tt.role, IsActive: true}
		if got := m.IsOwnerTier(); got != tt.want {
			t.Errorf("IsOwnerTier(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
