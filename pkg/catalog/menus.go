package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
)

// MenuService manages menus and their item placements. Every mutation is
// gated on menu-modification authority for the owning store.
type MenuService struct {
	logger    *slog.Logger
	db        *sql.DB
	menus     MenuRepo
	menuItems MenuItemRepo
	foodItems FoodItemRepo
	authz     Authorizer
}

func NewMenuService(logger *slog.Logger, db *sql.DB, menus MenuRepo, menuItems MenuItemRepo, foodItems FoodItemRepo, authz Authorizer) *MenuService {
	return &MenuService{
		logger:    logger,
		db:        db,
		menus:     menus,
		menuItems: menuItems,
		foodItems: foodItems,
		authz:     authz,
	}
}

// CreateMenu creates a menu under a store.
func (s *MenuService) CreateMenu(ctx context.Context, storeID, requesterID uuid.UUID, name, description string) (*domain.Menu, error) {
	if !s.authz.CanModifyMenu(ctx, requesterID, storeID) {
		return nil, domain.ErrAccessDenied
	}
	if name == "" {
		return nil, fmt.Errorf("%w: menu name is required", domain.ErrInvalidRequest)
	}

	menu := domain.NewMenu(storeID, name, description)
	if err := s.menus.Create(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// GetMenu returns an active menu for a member of its store.
func (s *MenuService) GetMenu(ctx context.Context, menuID, requesterID uuid.UUID) (*domain.Menu, error) {
	menu, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanAccessStore(ctx, requesterID, menu.StoreID) {
		return nil, domain.ErrAccessDenied
	}
	return menu, nil
}

// ListMenus returns the active menus of a store.
func (s *MenuService) ListMenus(ctx context.Context, storeID, requesterID uuid.UUID) ([]*domain.Menu, error) {
	if !s.authz.CanAccessStore(ctx, requesterID, storeID) {
		return nil, domain.ErrAccessDenied
	}
	return s.menus.ListActiveByStore(ctx, storeID)
}

// UpdateMenu updates a menu's name and description.
func (s *MenuService) UpdateMenu(ctx context.Context, menuID, requesterID uuid.UUID, name, description string) (*domain.Menu, error) {
	menu, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanModifyMenu(ctx, requesterID, menu.StoreID) {
		return nil, domain.ErrAccessDenied
	}

	menu.Update(name, description)
	if err := s.menus.Update(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// DeleteMenu soft-deletes a menu and its item placements, placements first.
func (s *MenuService) DeleteMenu(ctx context.Context, menuID, requesterID uuid.UUID) error {
	menu, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		return err
	}
	if !s.authz.CanModifyMenu(ctx, requesterID, menu.StoreID) {
		return domain.ErrAccessDenied
	}

	if err := s.menuItems.DeactivateByMenuID(ctx, s.db, menuID); err != nil {
		return fmt.Errorf("deactivate menu items: %w", err)
	}
	if err := s.menus.Deactivate(ctx, s.db, menuID); err != nil {
		return fmt.Errorf("deactivate menu: %w", err)
	}
	s.logger.Info("menu deleted", "menu_id", menuID, "store_id", menu.StoreID)
	return nil
}

// AddMenuItem places a food item on a menu. The food item must belong to
// the same store as the menu.
func (s *MenuService) AddMenuItem(ctx context.Context, menuID, foodItemID, requesterID uuid.UUID, displayOrder int) (*domain.MenuItem, error) {
	menu, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanModifyMenu(ctx, requesterID, menu.StoreID) {
		return nil, domain.ErrAccessDenied
	}

	food, err := s.foodItems.GetByID(ctx, foodItemID)
	if err != nil {
		return nil, err
	}
	if food.StoreID != menu.StoreID {
		return nil, fmt.Errorf("%w: food item belongs to another store", domain.ErrInvalidRequest)
	}

	item := domain.NewMenuItem(menuID, foodItemID, displayOrder)
	if err := s.menuItems.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListMenuItems returns the active placements of a menu in display order.
func (s *MenuService) ListMenuItems(ctx context.Context, menuID, requesterID uuid.UUID) ([]*domain.MenuItem, error) {
	menu, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanAccessStore(ctx, requesterID, menu.StoreID) {
		return nil, domain.ErrAccessDenied
	}
	return s.menuItems.ListActiveByMenu(ctx, menuID)
}

// ReorderMenuItem moves a placement to a new display position.
func (s *MenuService) ReorderMenuItem(ctx context.Context, menuID, itemID, requesterID uuid.UUID, displayOrder int) error {
	item, err := s.itemOnMenu(ctx, menuID, itemID, requesterID)
	if err != nil {
		return err
	}
	return s.menuItems.UpdateDisplayOrder(ctx, item.ID, displayOrder)
}

// RemoveMenuItem takes a placement off a menu. The food item itself is
// untouched.
func (s *MenuService) RemoveMenuItem(ctx context.Context, menuID, itemID, requesterID uuid.UUID) error {
	item, err := s.itemOnMenu(ctx, menuID, itemID, requesterID)
	if err != nil {
		return err
	}
	return s.menuItems.Deactivate(ctx, s.db, item.ID)
}

func (s *MenuService) itemOnMenu(ctx context.Context, menuID, itemID, requesterID uuid.UUID) (*domain.MenuItem, error) {
	menu, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanModifyMenu(ctx, requesterID, menu.StoreID) {
		return nil, domain.ErrAccessDenied
	}

	item, err := s.menuItems.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.MenuID != menuID {
		return nil, domain.ErrMenuItemNotInMenu
	}
	return item, nil
}
