package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
)

// MenusRepository handles menu persistence.
type MenusRepository struct {
	db *sql.DB
}

// NewMenusRepository creates a new menus repository.
func NewMenusRepository(db *sql.DB) *MenusRepository {
	return &MenusRepository{db: db}
}

// Create creates a new menu.
func (r *MenusRepository) Create(ctx context.Context, menu *domain.Menu) error {
	query := `
		INSERT INTO menus (id, store_id, name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		menu.ID, menu.StoreID, menu.Name, menu.Description, menu.IsActive, menu.CreatedAt, menu.UpdatedAt,
	)
	return err
}

// GetByID retrieves an active menu by ID.
func (r *MenusRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Menu, error) {
	query := `
		SELECT id, store_id, name, description, is_active, created_at, updated_at
		FROM menus
		WHERE id = $1 AND is_active = TRUE
	`
	menu := &domain.Menu{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&menu.ID, &menu.StoreID, &menu.Name, &menu.Description, &menu.IsActive, &menu.CreatedAt, &menu.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMenuNotFound
	}
	if err != nil {
		return nil, err
	}
	return menu, nil
}

// ListActiveByStore retrieves a store's active menus.
func (r *MenusRepository) ListActiveByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Menu, error) {
	query := `
		SELECT id, store_id, name, description, is_active, created_at, updated_at
		FROM menus
		WHERE store_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []*domain.Menu
	for rows.Next() {
		menu := &domain.Menu{}
		err := rows.Scan(
			&menu.ID, &menu.StoreID, &menu.Name, &menu.Description, &menu.IsActive, &menu.CreatedAt, &menu.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		menus = append(menus, menu)
	}
	return menus, rows.Err()
}

// Update updates a menu's editable fields.
func (r *MenusRepository) Update(ctx context.Context, menu *domain.Menu) error {
	query := `
		UPDATE menus
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1 AND is_active = TRUE
	`
	result, err := r.db.ExecContext(ctx, query, menu.ID, menu.Name, menu.Description, menu.UpdatedAt)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMenuNotFound
	}
	return nil
}

// Deactivate soft-deletes a menu. Idempotent.
func (r *MenusRepository) Deactivate(ctx context.Context, q Querier, id uuid.UUID) error {
	query := `
		UPDATE menus
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
	`
	_, err := q.ExecContext(ctx, query, id)
	return err
}

// DeactivateByStoreID soft-deletes every active menu of a store.
func (r *MenusRepository) DeactivateByStoreID(ctx context.Context, q Querier, storeID uuid.UUID) error {
	query := `
		UPDATE menus
		SET is_active = FALSE, updated_at = NOW()
		WHERE store_id = $1 AND is_active = TRUE
	`
	_, err := q.ExecContext(ctx, query, storeID)
	return err
}
