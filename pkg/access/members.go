package access

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
)

// InviteRequest carries the target and role of a member invitation.
type InviteRequest struct {
	UserID uuid.UUID
	Role   domain.RoleType
}

// MemberService implements store membership administration: owner-role
// creation, invitations, role changes, removals, and voluntary exits.
type MemberService struct {
	logger      *slog.Logger
	memberships MembershipStore
	users       UserStore
	stores      StoreStore
}

// NewMemberService creates a new member service.
func NewMemberService(logger *slog.Logger, memberships MembershipStore, users UserStore, stores StoreStore) *MemberService {
	return &MemberService{
		logger:      logger,
		memberships: memberships,
		users:       users,
		stores:      stores,
	}
}

// InviteMember adds a new employee to a store. The inviter needs invite
// authority. Any prior membership of the target, active or not, blocks the
// invite: reactivating a removed member is an explicit separate operation,
// never a side effect of inviting.
func (s *MemberService) InviteMember(ctx context.Context, storeID uuid.UUID, req InviteRequest, inviterID uuid.UUID) (*domain.Membership, error) {
	if _, err := s.stores.GetByID(ctx, storeID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	inviter, err := s.memberships.GetActiveByUserAndStore(ctx, inviterID, storeID)
	if err != nil || !inviter.CanInviteMembers() {
		return nil, domain.ErrAccessDenied
	}

	_, err = s.memberships.GetAnyByUserAndStore(ctx, req.UserID, storeID)
	if err == nil {
		return nil, domain.ErrMemberAlreadyExists
	}
	if !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, err
	}

	member, err := domain.NewEmployeeMembership(req.UserID, storeID, req.Role)
	if err != nil {
		return nil, err
	}
	if err := s.memberships.Create(ctx, member); err != nil {
		return nil, err
	}
	s.logger.Info("member invited",
		"store_id", storeID, "user_id", req.UserID, "role", req.Role, "inviter_id", inviterID)
	return member, nil
}

// ChangeRole updates a member's role. The requester must hold invite
// authority, strictly outrank the target's current role, and strictly
// outrank the new role: a manager can never promote anyone to
// manager-or-above.
func (s *MemberService) ChangeRole(ctx context.Context, storeID, targetUserID uuid.UUID, newRole domain.RoleType, requesterID uuid.UUID) (*domain.Membership, error) {
	if _, err := s.stores.GetByID(ctx, storeID); err != nil {
		return nil, err
	}

	requester, err := s.memberships.GetActiveByUserAndStore(ctx, requesterID, storeID)
	if err != nil {
		return nil, domain.ErrAccessDenied
	}

	target, err := s.memberships.GetAnyByUserAndStore(ctx, targetUserID, storeID)
	if err != nil {
		return nil, err
	}

	if !requester.CanInviteMembers() {
		return nil, domain.ErrAccessDenied
	}
	if !requester.HasHigherAuthorityThan(target) {
		return nil, domain.ErrAccessDenied
	}
	if !requester.Role.HasHigherAuthorityThan(newRole) {
		return nil, domain.ErrAccessDenied
	}

	if err := target.ChangeRole(newRole); err != nil {
		return nil, err
	}
	if err := s.memberships.Update(ctx, target); err != nil {
		return nil, err
	}
	s.logger.Info("member role changed",
		"store_id", storeID, "user_id", targetUserID, "new_role", newRole, "requester_id", requesterID)
	return target, nil
}

// RemoveMember deactivates another member's record. Self-removal is
// rejected; members leave through LeaveStore.
func (s *MemberService) RemoveMember(ctx context.Context, storeID, targetUserID, requesterID uuid.UUID) error {
	if _, err := s.stores.GetByID(ctx, storeID); err != nil {
		return err
	}

	requester, err := s.memberships.GetActiveByUserAndStore(ctx, requesterID, storeID)
	if err != nil || !requester.CanInviteMembers() {
		return domain.ErrAccessDenied
	}

	if targetUserID == requesterID {
		return domain.ErrInvalidRequest
	}

	target, err := s.memberships.GetAnyByUserAndStore(ctx, targetUserID, storeID)
	if err != nil {
		return err
	}

	target.Deactivate()
	if err := s.memberships.Update(ctx, target); err != nil {
		return err
	}
	s.logger.Info("member removed",
		"store_id", storeID, "user_id", targetUserID, "requester_id", requesterID)
	return nil
}

// LeaveStore deactivates the caller's own membership. Owner-tier members
// (owner and co-owner) cannot leave; they must transfer ownership or
// delete the store.
func (s *MemberService) LeaveStore(ctx context.Context, storeID, userID uuid.UUID) error {
	m, err := s.memberships.GetAnyByUserAndStore(ctx, userID, storeID)
	if err != nil {
		return err
	}

	if m.IsOwnerTier() {
		return domain.ErrOwnerCannotLeave
	}

	m.Deactivate()
	if err := s.memberships.Update(ctx, m); err != nil {
		return err
	}
	s.logger.Info("member left store", "store_id", storeID, "user_id", userID)
	return nil
}

// StoreMembers lists a store's active members. Only members of the store
// may see the roster.
func (s *MemberService) StoreMembers(ctx context.Context, storeID, requesterID uuid.UUID) ([]*domain.Membership, error) {
	if _, err := s.stores.GetByID(ctx, storeID); err != nil {
		return nil, err
	}
	if _, err := s.memberships.GetActiveByUserAndStore(ctx, requesterID, storeID); err != nil {
		return nil, domain.ErrAccessDenied
	}
	return s.memberships.ListActiveByStore(ctx, storeID)
}

// MyStores lists the stores the user is an active member of.
func (s *MemberService) MyStores(ctx context.Context, userID uuid.UUID) ([]*domain.Store, error) {
	return s.storesWhere(ctx, userID, func(m *domain.Membership) bool { return true })
}

// OwnedStores lists the stores where the user holds an owner-tier role.
func (s *MemberService) OwnedStores(ctx context.Context, userID uuid.UUID) ([]*domain.Store, error) {
	return s.storesWhere(ctx, userID, (*domain.Membership).IsOwnerTier)
}

// ManageableStores lists the stores the user can manage.
func (s *MemberService) ManageableStores(ctx context.Context, userID uuid.UUID) ([]*domain.Store, error) {
	return s.storesWhere(ctx, userID, (*domain.Membership).CanManageStore)
}

func (s *MemberService) storesWhere(ctx context.Context, userID uuid.UUID, keep func(*domain.Membership) bool) ([]*domain.Store, error) {
	memberships, err := s.memberships.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	for _, m := range memberships {
		if keep(m) {
			ids = append(ids, m.StoreID)
		}
	}
	return s.stores.ListByIDs(ctx, ids)
}
