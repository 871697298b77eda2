package access

import (
	"context"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
)

// MembershipStore is the membership persistence the access services need.
// *repository.MembershipsRepository satisfies it.
type MembershipStore interface {
	Create(ctx context.Context, m *domain.Membership) error
	Update(ctx context.Context, m *domain.Membership) error
	GetActiveByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*domain.Membership, error)
	GetAnyByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*domain.Membership, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Membership, error)
	ListActiveByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Membership, error)
}

// UserStore is the user lookup the access services need.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// StoreStore is the store lookup the access services need.
type StoreStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Store, error)
}
