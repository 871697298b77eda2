package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
)

// MenuItemsRepository handles menu item persistence.
type MenuItemsRepository struct {
	db *sql.DB
}

// NewMenuItemsRepository creates a new menu items repository.
func NewMenuItemsRepository(db *sql.DB) *MenuItemsRepository {
	return &MenuItemsRepository{db: db}
}

// Create creates a new menu item.
func (r *MenuItemsRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, menu_id, food_item_id, display_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.MenuID, item.FoodItemID, item.DisplayOrder, item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	return err
}

// GetByID retrieves an active menu item by ID.
func (r *MenuItemsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	query := `
		SELECT id, menu_id, food_item_id, display_order, is_active, created_at, updated_at
		FROM menu_items
		WHERE id = $1 AND is_active = TRUE
	`
	item := &domain.MenuItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.MenuID, &item.FoodItemID, &item.DisplayOrder, &item.IsActive, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMenuItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListActiveByMenu retrieves a menu's active items in display order.
func (r *MenuItemsRepository) ListActiveByMenu(ctx context.Context, menuID uuid.UUID) ([]*domain.MenuItem, error) {
	query := `
		SELECT id, menu_id, food_item_id, display_order, is_active, created_at, updated_at
		FROM menu_items
		WHERE menu_id = $1 AND is_active = TRUE
		ORDER BY display_order ASC, created_at ASC
	`
	return r.list(ctx, query, menuID)
}

// ListActiveByFoodItem retrieves the active menu items referencing a food
// item, across all menus.
func (r *MenuItemsRepository) ListActiveByFoodItem(ctx context.Context, foodItemID uuid.UUID) ([]*domain.MenuItem, error) {
	query := `
		SELECT id, menu_id, food_item_id, display_order, is_active, created_at, updated_at
		FROM menu_items
		WHERE food_item_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, foodItemID)
}

// UpdateDisplayOrder moves an item to a new display position.
func (r *MenuItemsRepository) UpdateDisplayOrder(ctx context.Context, id uuid.UUID, displayOrder int) error {
	query := `
		UPDATE menu_items
		SET display_order = $2, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
	`
	result, err := r.db.ExecContext(ctx, query, id, displayOrder)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

// Deactivate soft-deletes a menu item. Idempotent.
func (r *MenuItemsRepository) Deactivate(ctx context.Context, q Querier, id uuid.UUID) error {
	query := `
		UPDATE menu_items
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
	`
	_, err := q.ExecContext(ctx, query, id)
	return err
}

// DeactivateByMenuID soft-deletes every active item of a menu.
func (r *MenuItemsRepository) DeactivateByMenuID(ctx context.Context, q Querier, menuID uuid.UUID) error {
	query := `
		UPDATE menu_items
		SET is_active = FALSE, updated_at = NOW()
		WHERE menu_id = $1 AND is_active = TRUE
	`
	_, err := q.ExecContext(ctx, query, menuID)
	return err
}

// DeactivateByFoodItemID soft-deletes every active menu item referencing a
// food item.
func (r *MenuItemsRepository) DeactivateByFoodItemID(ctx context.Context, q Querier, foodItemID uuid.UUID) error {
	query := `
		UPDATE menu_items
		SET is_active = FALSE, updated_at = NOW()
		WHERE food_item_id = $1 AND is_active = TRUE
	`
	_, err := q.ExecContext(ctx, query, foodItemID)
	return err
}

// DeactivateByStoreID soft-deletes every active menu item under a store's
// menus. Runs before the menus themselves are deactivated.
func (r *MenuItemsRepository) DeactivateByStoreID(ctx context.Context, q Querier, storeID uuid.UUID) error {
	query := `
		UPDATE menu_items
		SET is_active = FALSE, updated_at = NOW()
		WHERE is_active = TRUE
		  AND menu_id IN (SELECT id FROM menus WHERE store_id = $1)
	`
	_, err := q.ExecContext(ctx, query, storeID)
	return err
}

func (r *MenuItemsRepository) list(ctx context.Context, query string, arg any) ([]*domain.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.MenuItem
	for rows.Next() {
		item := &domain.MenuItem{}
		err := rows.Scan(
			&item.ID, &item.MenuID, &item.FoodItemID, &item.DisplayOrder, &item.IsActive, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
