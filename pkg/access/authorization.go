package access

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
)

// AuthorizationService answers "may user X act on store Z" questions. It is
// the single source of truth consulted by every mutating operation.
//
// All checks fail closed: a missing membership, a missing store, or a
// lookup failure yields false, never an error, so callers can use the
// result directly as a guard. Whether the store exists at all is reported
// by the caller, not here. Results are never cached; every check re-reads
// committed state.
type AuthorizationService struct {
	logger      *slog.Logger
	memberships MembershipStore
}

// NewAuthorizationService creates a new authorization service.
func NewAuthorizationService(logger *slog.Logger, memberships MembershipStore) *AuthorizationService {
	return &AuthorizationService{logger: logger, memberships: memberships}
}

// CanAccessStore returns true iff the user holds an active membership in
// the store, regardless of role.
func (s *AuthorizationService) CanAccessStore(ctx context.Context, userID, storeID uuid.UUID) bool {
	_, ok := s.activeMembership(ctx, userID, storeID)
	return ok
}

// CanManageStore returns true iff the user holds an active membership
// whose role carries manage authority.
func (s *AuthorizationService) CanManageStore(ctx context.Context, userID, storeID uuid.UUID) bool {
	m, ok := s.activeMembership(ctx, userID, storeID)
	return ok && m.CanManageStore()
}

// CanInviteMembers returns true iff the user holds an active membership
// whose role carries invite authority.
func (s *AuthorizationService) CanInviteMembers(ctx context.Context, userID, storeID uuid.UUID) bool {
	m, ok := s.activeMembership(ctx, userID, storeID)
	return ok && m.CanInviteMembers()
}

// CanModifyMenu returns true iff the user holds an active membership
// whose role carries menu authority.
func (s *AuthorizationService) CanModifyMenu(ctx context.Context, userID, storeID uuid.UUID) bool {
	m, ok := s.activeMembership(ctx, userID, storeID)
	return ok && m.CanModifyMenu()
}

func (s *AuthorizationService) activeMembership(ctx context.Context, userID, storeID uuid.UUID) (*domain.Membership, bool) {
	m, err := s.memberships.GetActiveByUserAndStore(ctx, userID, storeID)
	if err != nil {
		if !errors.Is(err, domain.ErrMemberNotFound) {
			s.logger.Error("membership lookup failed, denying access",
				"user_id", userID, "store_id", storeID, "error", err)
		}
		return nil, false
	}
	if !m.IsActive {
		return nil, false
	}
	return m, true
}
