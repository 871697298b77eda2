package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
	"github.com/mealboard/mealboard/pkg/repository"
)

// Authorizer is the slice of the authorization service the catalog needs.
type Authorizer interface {
	CanAccessStore(ctx context.Context, userID, storeID uuid.UUID) bool
	CanManageStore(ctx context.Context, userID, storeID uuid.UUID) bool
	CanModifyMenu(ctx context.Context, userID, storeID uuid.UUID) bool
}

// StoreRepo is the store persistence the catalog needs.
type StoreRepo interface {
	CreateTx(ctx context.Context, q repository.Querier, store *domain.Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error)
	Update(ctx context.Context, store *domain.Store) error
}

// MenuRepo is the menu persistence the catalog needs.
type MenuRepo interface {
	Create(ctx context.Context, menu *domain.Menu) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Menu, error)
	ListActiveByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Menu, error)
	Update(ctx context.Context, menu *domain.Menu) error
	Deactivate(ctx context.Context, q repository.Querier, id uuid.UUID) error
}

// MenuItemRepo is the menu item persistence the catalog needs.
type MenuItemRepo interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)
	ListActiveByMenu(ctx context.Context, menuID uuid.UUID) ([]*domain.MenuItem, error)
	UpdateDisplayOrder(ctx context.Context, id uuid.UUID, displayOrder int) error
	Deactivate(ctx context.Context, q repository.Querier, id uuid.UUID) error
	DeactivateByMenuID(ctx context.Context, q repository.Querier, menuID uuid.UUID) error
	DeactivateByFoodItemID(ctx context.Context, q repository.Querier, foodItemID uuid.UUID) error
}

// FoodItemRepo is the food item persistence the catalog needs.
type FoodItemRepo interface {
	Create(ctx context.Context, item *domain.FoodItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FoodItem, error)
	ListActiveByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.FoodItem, error)
	SearchActiveByStore(ctx context.Context, storeID uuid.UUID, keyword string) ([]*domain.FoodItem, error)
	Update(ctx context.Context, item *domain.FoodItem) error
	Deactivate(ctx context.Context, q repository.Querier, id uuid.UUID) error
}

// PhotoRepo is the photo persistence the catalog needs.
type PhotoRepo interface {
	Create(ctx context.Context, photo *domain.Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error)
	ListActiveByFoodItem(ctx context.Context, foodItemID uuid.UUID) ([]*domain.Photo, error)
	ListActiveByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Photo, error)
	SetFeatured(ctx context.Context, q repository.Querier, id, foodItemID uuid.UUID) error
	Deactivate(ctx context.Context, q repository.Querier, id uuid.UUID) error
	DeactivateByFoodItemID(ctx context.Context, q repository.Querier, foodItemID uuid.UUID) error
}

// MembershipTxRepo creates the owner membership when a store is created.
type MembershipTxRepo interface {
	CreateTx(ctx context.Context, q repository.Querier, m *domain.Membership) error
}

// StoreCascader propagates a store deactivation to its dependents.
type StoreCascader interface {
	DeactivateStore(ctx context.Context, q repository.Querier, storeID uuid.UUID) error
}
