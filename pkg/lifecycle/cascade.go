package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/repository"
)

// StoreChildFlipper deactivates a collection of entities scoped to a store.
type StoreChildFlipper interface {
	DeactivateByStoreID(ctx context.Context, q repository.Querier, storeID uuid.UUID) error
}

// UserChildFlipper deactivates and reactivates a collection of entities
// scoped to a user.
type UserChildFlipper interface {
	DeactivateByUserID(ctx context.Context, q repository.Querier, userID uuid.UUID) error
	ReactivateByUserID(ctx context.Context, q repository.Querier, userID uuid.UUID) error
}

// StoreFlipper deactivates the store root.
type StoreFlipper interface {
	Deactivate(ctx context.Context, q repository.Querier, id uuid.UUID) error
}

// UserFlipper deactivates and reactivates the user root.
type UserFlipper interface {
	Deactivate(ctx context.Context, q repository.Querier, id uuid.UUID) error
	Reactivate(ctx context.Context, q repository.Querier, id uuid.UUID) error
}

// CascadeService propagates a root aggregate's active/inactive transition
// to every dependent entity. The database does not cascade soft deletes;
// this service fans the flip out as a deterministic, ordered list of bulk
// steps.
//
// Steps run children before parent, so a crash mid-cascade never leaves an
// active child under an inactive parent. The first failing step aborts the
// cascade and surfaces the error. Children flipped before the failure stay
// flipped; every step is idempotent, so the whole cascade can simply be
// retried. Transaction scope, when wanted, is supplied by the caller via q.
type CascadeService struct {
	logger       *slog.Logger
	stores       StoreFlipper
	users        UserFlipper
	memberships  SharedChildFlipper
	menus        StoreChildFlipper
	menuItems    StoreChildFlipper
	foodItems    StoreChildFlipper
	photos       SharedChildFlipper
	deviceTokens UserChildFlipper
}

// SharedChildFlipper covers entities that hang off both root aggregates
// (memberships and photos).
type SharedChildFlipper interface {
	StoreChildFlipper
	UserChildFlipper
}

// NewCascadeService creates a cascade service over the entity repositories.
func NewCascadeService(
	logger *slog.Logger,
	stores StoreFlipper,
	users UserFlipper,
	memberships SharedChildFlipper,
	menus StoreChildFlipper,
	menuItems StoreChildFlipper,
	foodItems StoreChildFlipper,
	photos SharedChildFlipper,
	deviceTokens UserChildFlipper,
) *CascadeService {
	return &CascadeService{
		logger:       logger,
		stores:       stores,
		users:        users,
		memberships:  memberships,
		menus:        menus,
		menuItems:    menuItems,
		foodItems:    foodItems,
		photos:       photos,
		deviceTokens: deviceTokens,
	}
}

// DeactivateStore soft-deletes a store and everything under it: menu items,
// menus, photos, food items, and memberships, then the store itself.
func (s *CascadeService) DeactivateStore(ctx context.Context, q repository.Querier, storeID uuid.UUID) error {
	steps := []struct {
		name string
		run  func() error
	}{
		{"menu_items", func() error { return s.menuItems.DeactivateByStoreID(ctx, q, storeID) }},
		{"menus", func() error { return s.menus.DeactivateByStoreID(ctx, q, storeID) }},
		{"photos", func() error { return s.photos.DeactivateByStoreID(ctx, q, storeID) }},
		{"food_items", func() error { return s.foodItems.DeactivateByStoreID(ctx, q, storeID) }},
		{"memberships", func() error { return s.memberships.DeactivateByStoreID(ctx, q, storeID) }},
		{"store", func() error { return s.stores.Deactivate(ctx, q, storeID) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("deactivate store %s: step %s: %w", storeID, step.name, err)
		}
	}
	s.logger.Info("store deactivated", "store_id", storeID)
	return nil
}

// DeactivateUser soft-deletes a user account and its dependents: photos,
// memberships, and device tokens, then the user itself.
func (s *CascadeService) DeactivateUser(ctx context.Context, q repository.Querier, userID uuid.UUID) error {
	steps := []struct {
		name string
		run  func() error
	}{
		{"photos", func() error { return s.photos.DeactivateByUserID(ctx, q, userID) }},
		{"memberships", func() error { return s.memberships.DeactivateByUserID(ctx, q, userID) }},
		{"device_tokens", func() error { return s.deviceTokens.DeactivateByUserID(ctx, q, userID) }},
		{"user", func() error { return s.users.Deactivate(ctx, q, userID) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("deactivate user %s: step %s: %w", userID, step.name, err)
		}
	}
	s.logger.Info("user deactivated", "user_id", userID)
	return nil
}

// ReactivateUser reverses DeactivateUser for an account-recovery rejoin.
// Only rows DeactivateUser suspended come back; rows deactivated on their
// own before the deletion (a revoked membership, a deleted photo, a logged
// out device) stay inactive. It performs the mechanical flip
// unconditionally; the reinstatement window policy belongs to the caller.
func (s *CascadeService) ReactivateUser(ctx context.Context, q repository.Querier, userID uuid.UUID) error {
	steps := []struct {
		name string
		run  func() error
	}{
		{"photos", func() error { return s.photos.ReactivateByUserID(ctx, q, userID) }},
		{"memberships", func() error { return s.memberships.ReactivateByUserID(ctx, q, userID) }},
		{"device_tokens", func() error { return s.deviceTokens.ReactivateByUserID(ctx, q, userID) }},
		{"user", func() error { return s.users.Reactivate(ctx, q, userID) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("reactivate user %s: step %s: %w", userID, step.name, err)
		}
	}
	s.logger.Info("user reactivated", "user_id", userID)
	return nil
}
