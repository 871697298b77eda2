package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
)

// FoodItemsRepository handles food item persistence.
type FoodItemsRepository struct {
	db *sql.DB
}

// NewFoodItemsRepository creates a new food items repository.
func NewFoodItemsRepository(db *sql.DB) *FoodItemsRepository {
	return &FoodItemsRepository{db: db}
}

const foodItemColumns = `id, store_id, name, description, ingredients, cooking_method, price_cents, thumbnail_url, is_active, created_at, updated_at`

// Create creates a new food item.
func (r *FoodItemsRepository) Create(ctx context.Context, item *domain.FoodItem) error {
	query := `
		INSERT INTO food_items (id, store_id, name, description, ingredients, cooking_method, price_cents, thumbnail_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.StoreID, item.Name, item.Description, item.Ingredients,
		item.CookingMethod, item.PriceCents, item.ThumbnailURL, item.IsActive,
		item.CreatedAt, item.UpdatedAt,
	)
	return err
}

// GetByID retrieves an active food item by ID.
func (r *FoodItemsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FoodItem, error) {
	query := `
		SELECT ` + foodItemColumns + `
		FROM food_items
		WHERE id = $1 AND is_active = TRUE
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// ListActiveByStore retrieves a store's active food items.
func (r *FoodItemsRepository) ListActiveByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.FoodItem, error) {
	query := `
		SELECT ` + foodItemColumns + `
		FROM food_items
		WHERE store_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, storeID)
}

// SearchActiveByStore retrieves a store's active food items whose name
// contains the keyword.
func (r *FoodItemsRepository) SearchActiveByStore(ctx context.Context, storeID uuid.UUID, keyword string) ([]*domain.FoodItem, error) {
	query := `
		SELECT ` + foodItemColumns + `
		FROM food_items
		WHERE store_id = $1 AND is_active = TRUE AND name ILIKE '%' || $2 || '%'
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, storeID, keyword)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

// Update updates a food item's editable fields.
func (r *FoodItemsRepository) Update(ctx context.Context, item *domain.FoodItem) error {
	query := `
		UPDATE food_items
		SET name = $2, description = $3, ingredients = $4, cooking_method = $5,
		    price_cents = $6, thumbnail_url = $7, updated_at = $8
		WHERE id = $1 AND is_active = TRUE
	`
	result, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Description, item.Ingredients, item.CookingMethod,
		item.PriceCents, item.ThumbnailURL, item.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrFoodItemNotFound
	}
	return nil
}

// Deactivate soft-deletes a food item. Idempotent.
func (r *FoodItemsRepository) Deactivate(ctx context.Context, q Querier, id uuid.UUID) error {
	query := `
		UPDATE food_items
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
	`
	_, err := q.ExecContext(ctx, query, id)
	return err
}

// DeactivateByStoreID soft-deletes every active food item of a store.
func (r *FoodItemsRepository) DeactivateByStoreID(ctx context.Context, q Querier, storeID uuid.UUID) error {
	query := `
		UPDATE food_items
		SET is_active = FALSE, updated_at = NOW()
		WHERE store_id = $1 AND is_active = TRUE
	`
	_, err := q.ExecContext(ctx, query, storeID)
	return err
}

func (r *FoodItemsRepository) scanOne(row *sql.Row) (*domain.FoodItem, error) {
	item := &domain.FoodItem{}
	err := row.Scan(
		&item.ID, &item.StoreID, &item.Name, &item.Description, &item.Ingredients,
		&item.CookingMethod, &item.PriceCents, &item.ThumbnailURL, &item.IsActive,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrFoodItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *FoodItemsRepository) list(ctx context.Context, query string, arg any) ([]*domain.FoodItem, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *FoodItemsRepository) collect(rows *sql.Rows) ([]*domain.FoodItem, error) {
	var items []*domain.FoodItem
	for rows.Next() {
		item := &domain.FoodItem{}
		err := rows.Scan(
			&item.ID, &item.StoreID, &item.Name, &item.Description, &item.Ingredients,
			&item.CookingMethod, &item.PriceCents, &item.ThumbnailURL, &item.IsActive,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
