package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
	"github.com/mealboard/mealboard/pkg/repository"
)

// CreateStoreRequest carries the fields needed to register a store.
type CreateStoreRequest struct {
	Name               string
	BusinessType       string
	Address            string
	Phone              string
	RegistrationNumber string
}

// UpdateStoreRequest carries the mutable store fields.
type UpdateStoreRequest struct {
	Name         string
	BusinessType string
	Address      string
	Phone        string
}

// StoreService manages store records and ties their creation to the
// creator's owner role.
type StoreService struct {
	logger      *slog.Logger
	db          repository.TxBeginner
	stores      StoreRepo
	memberships MembershipTxRepo
	authz       Authorizer
	cascade     StoreCascader
}

func NewStoreService(logger *slog.Logger, db repository.TxBeginner, stores StoreRepo, memberships MembershipTxRepo, authz Authorizer, cascade StoreCascader) *StoreService {
	return &StoreService{
		logger:      logger,
		db:          db,
		stores:      stores,
		memberships: memberships,
		authz:       authz,
		cascade:     cascade,
	}
}

// CreateStore creates a store and an owner membership for the creator in
// a single transaction.
func (s *StoreService) CreateStore(ctx context.Context, creatorID uuid.UUID, req CreateStoreRequest) (*domain.Store, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: store name is required", domain.ErrInvalidRequest)
	}

	store := domain.NewStore(req.Name, req.BusinessType, req.Address, req.Phone, req.RegistrationNumber)
	owner := domain.NewOwnerMembership(creatorID, store.ID)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create store tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.stores.CreateTx(ctx, tx, store); err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	if err := s.memberships.CreateTx(ctx, tx, owner); err != nil {
		return nil, fmt.Errorf("create owner membership: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create store tx: %w", err)
	}

	s.logger.Info("store created", "store_id", store.ID, "owner_id", creatorID)
	return store, nil
}

// GetStore returns an active store visible to the requesting member.
func (s *StoreService) GetStore(ctx context.Context, storeID, requesterID uuid.UUID) (*domain.Store, error) {
	if !s.authz.CanAccessStore(ctx, requesterID, storeID) {
		return nil, domain.ErrAccessDenied
	}
	return s.stores.GetByID(ctx, storeID)
}

// UpdateStore updates store details for members with manage authority.
func (s *StoreService) UpdateStore(ctx context.Context, storeID, requesterID uuid.UUID, req UpdateStoreRequest) (*domain.Store, error) {
	if !s.authz.CanManageStore(ctx, requesterID, storeID) {
		return nil, domain.ErrAccessDenied
	}

	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	store.Update(req.Name, req.BusinessType, req.Address, req.Phone)
	if err := s.stores.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// DeleteStore soft-deletes a store and everything that hangs off it.
// Only members with manage authority may delete.
func (s *StoreService) DeleteStore(ctx context.Context, storeID, requesterID uuid.UUID) error {
	if !s.authz.CanManageStore(ctx, requesterID, storeID) {
		return domain.ErrAccessDenied
	}

	if _, err := s.stores.GetByID(ctx, storeID); err != nil {
		return err
	}
	return s.cascade.DeactivateStore(ctx, s.db, storeID)
}
