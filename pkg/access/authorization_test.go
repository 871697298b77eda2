package access

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
)

// fakeMembershipStore is an in-memory MembershipStore for tests.
type fakeMembershipStore struct {
	records []*domain.Membership
	err     error
}

func (f *fakeMembershipStore) Create(ctx context.Context, m *domain.Membership) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, m)
	return nil
}

func (f *fakeMembershipStore) Update(ctx context.Context, m *domain.Membership) error {
	if f.err != nil {
		return f.err
	}
	for i, r := range f.records {
		if r.ID == m.ID {
			f.records[i] = m
			return nil
		}
	}
	return domain.ErrMemberNotFound
}

func (f *fakeMembershipStore) GetActiveByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*domain.Membership, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.records {
		if r.UserID == userID && r.StoreID == storeID && r.IsActive {
			return r, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (f *fakeMembershipStore) GetAnyByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*domain.Membership, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := len(f.records) - 1; i >= 0; i-- {
		r := f.records[i]
		if r.UserID == userID && r.StoreID == storeID {
			return r, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (f *fakeMembershipStore) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Membership, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Membership
	for _, r := range f.records {
		if r.UserID == userID && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeMembershipStore) ListActiveByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Membership, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Membership
	for _, r := range f.records {
		if r.StoreID == storeID && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthorizationService_PermissionMatrix(t *testing.T) {
	storeID := uuid.New()

	tests := []struct {
		role      domain.RoleType
		canAccess bool
		canManage bool
	}{
		{domain.RoleOwner, true, true},
		{domain.RoleCoOwner, true, true},
		{domain.RoleManager, true, true},
		{domain.RoleStaff, true, false},
	}

	for _, tt := range tests {
		userID := uuid.New()
		store := &fakeMembershipStore{records: []*domain.Membership{
			{ID: uuid.New(), UserID: userID, StoreID: storeID, Role: tt.role, IsActive: true},
		}}
		svc := NewAuthorizationService(testLogger(), store)

		ctx := context.Background()
		if got := svc.CanAccessStore(ctx, userID, storeID); got != tt.canAccess {
			t.Errorf("%q: CanAccessStore = %v, want %v", tt.role, got, tt.canAccess)
		}
		if got := svc.CanManageStore(ctx, userID, storeID); got != tt.canManage {
			t.Errorf("%q: CanManageStore = %v, want %v", tt.role, got, tt.canManage)
		}
		if got := svc.CanInviteMembers(ctx, userID, storeID); got != tt.canManage {
			t.Errorf("%q: CanInviteMembers = %v, want %v", tt.role, got, tt.canManage)
		}
		if got := svc.CanModifyMenu(ctx, userID, storeID); got != tt.canManage {
			t.Errorf("%q: CanModifyMenu = %v, want %v", tt.role, got, tt.canManage)
		}
	}
}

func TestAuthorizationService_NoMembership(t *testing.T) {
	svc := NewAuthorizationService(testLogger(), &fakeMembershipStore{})
	ctx := context.Background()
	userID, storeID := uuid.New(), uuid.New()

	if svc.CanAccessStore(ctx, userID, storeID) {
		t.Error("CanAccessStore should be false without a membership")
	}
	if svc.CanManageStore(ctx, userID, storeID) {
		t.Error("CanManageStore should be false without a membership")
	}
}

func TestAuthorizationService_InactiveMembership(t *testing.T) {
	userID, storeID := uuid.New(), uuid.New()
	store := &fakeMembershipStore{records: []*domain.Membership{
		{ID: uuid.New(), UserID: userID, StoreID: storeID, Role: domain.RoleOwner, IsActive: false},
	}}
	svc := NewAuthorizationService(testLogger(), store)

	if svc.CanAccessStore(context.Background(), userID, storeID) {
		t.Error("inactive membership should not grant access")
	}
}

func TestAuthorizationService_FailsClosedOnLookupError(t *testing.T) {
	store := &fakeMembershipStore{err: errors.New("connection refused")}
	svc := NewAuthorizationService(testLogger(), store)
	ctx := context.Background()
	userID, storeID := uuid.New(), uuid.New()

	if svc.CanAccessStore(ctx, userID, storeID) {
		t.Error("CanAccessStore should deny on lookup error")
	}
	if svc.CanManageStore(ctx, userID, storeID) {
		t.Error("CanManageStore should deny on lookup error")
	}
	if svc.CanInviteMembers(ctx, userID, storeID) {
		t.Error("CanInviteMembers should deny on lookup error")
	}
	if svc.CanModifyMenu(ctx, userID, storeID) {
		t.Error("CanModifyMenu should deny on lookup error")
	}
}
