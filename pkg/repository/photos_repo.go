package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
)

// PhotosRepository handles photo persistence.
type PhotosRepository struct {
	db *sql.DB
}

// NewPhotosRepository creates a new photos repository.
func NewPhotosRepository(db *sql.DB) *PhotosRepository {
	return &PhotosRepository{db: db}
}

const photoColumns = `id, user_id, store_id, food_item_id, object_key, file_name, file_size, width, height, is_featured, is_active, created_at, updated_at`

// Create creates a new photo record.
func (r *PhotosRepository) Create(ctx context.Context, photo *domain.Photo) error {
	query := `
		INSERT INTO photos (id, user_id, store_id, food_item_id, object_key, file_name, file_size, width, height, is_featured, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		photo.ID, photo.UserID, photo.StoreID, photo.FoodItemID, photo.ObjectKey,
		photo.FileName, photo.FileSize, photo.Width, photo.Height,
		photo.IsFeatured, photo.IsActive, photo.CreatedAt, photo.UpdatedAt,
	)
	return err
}

// GetByID retrieves an active photo by ID.
func (r *PhotosRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	query := `
		SELECT ` + photoColumns + `
		FROM photos
		WHERE id = $1 AND is_active = TRUE
	`
	photo := &domain.Photo{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&photo.ID, &photo.UserID, &photo.StoreID, &photo.FoodItemID, &photo.ObjectKey,
		&photo.FileName, &photo.FileSize, &photo.Width, &photo.Height,
		&photo.IsFeatured, &photo.IsActive, &photo.CreatedAt, &photo.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}
	return photo, nil
}

// ListActiveByFoodItem retrieves the active photos attached to a food item.
func (r *PhotosRepository) ListActiveByFoodItem(ctx context.Context, foodItemID uuid.UUID) ([]*domain.Photo, error) {
	query := `
		SELECT ` + photoColumns + `
		FROM photos
		WHERE food_item_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, foodItemID)
}

// ListActiveByStore retrieves the active photos attached to a store.
func (r *PhotosRepository) ListActiveByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Photo, error) {
	query := `
		SELECT ` + photoColumns + `
		FROM photos
		WHERE store_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, storeID)
}

// SetFeatured marks one photo of a food item as featured, clearing the
// flag on its siblings.
func (r *PhotosRepository) SetFeatured(ctx context.Context, q Querier, id, foodItemID uuid.UUID) error {
	clear := `
		UPDATE photos
		SET is_featured = FALSE, updated_at = NOW()
		WHERE food_item_id = $1 AND is_featured = TRUE
	`
	if _, err := q.ExecContext(ctx, clear, foodItemID); err != nil {
		return err
	}
	set := `
		UPDATE photos
		SET is_featured = TRUE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
	`
	result, err := q.ExecContext(ctx, set, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

// Deactivate soft-deletes a photo. Idempotent.
func (r *PhotosRepository) Deactivate(ctx context.Context, q Querier, id uuid.UUID) error {
	query := `
		UPDATE photos
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
	`
	_, err := q.ExecContext(ctx, query, id)
	return err
}

// DeactivateByFoodItemID soft-deletes every active photo of a food item.
func (r *PhotosRepository) DeactivateByFoodItemID(ctx context.Context, q Querier, foodItemID uuid.UUID) error {
	query := `
		UPDATE photos
		SET is_active = FALSE, updated_at = NOW()
		WHERE food_item_id = $1 AND is_active = TRUE
	`
	_, err := q.ExecContext(ctx, query, foodItemID)
	return err
}

// DeactivateByStoreID soft-deletes every active photo attached to a store,
// including photos of the store's food items.
func (r *PhotosRepository) DeactivateByStoreID(ctx context.Context, q Querier, storeID uuid.UUID) error {
	query := `
		UPDATE photos
		SET is_active = FALSE, updated_at = NOW()
		WHERE is_active = TRUE
		  AND (store_id = $1 OR food_item_id IN (SELECT id FROM food_items WHERE store_id = $1))
	`
	_, err := q.ExecContext(ctx, query, storeID)
	return err
}

// DeactivateByUserID suspends every active photo owned by a user.
func (r *PhotosRepository) DeactivateByUserID(ctx context.Context, q Querier, userID uuid.UUID) error {
	query := `
		UPDATE photos
		SET is_active = FALSE, suspended = TRUE, updated_at = NOW()
		WHERE user_id = $1 AND is_active = TRUE
	`
	_, err := q.ExecContext(ctx, query, userID)
	return err
}

// ReactivateByUserID restores the photos that DeactivateByUserID
// suspended. Photos the user deleted individually stay inactive.
func (r *PhotosRepository) ReactivateByUserID(ctx context.Context, q Querier, userID uuid.UUID) error {
	query := `
		UPDATE photos
		SET is_active = TRUE, suspended = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND suspended = TRUE
	`
	_, err := q.ExecContext(ctx, query, userID)
	return err
}

func (r *PhotosRepository) list(ctx context.Context, query string, arg any) ([]*domain.Photo, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []*domain.Photo
	for rows.Next() {
		photo := &domain.Photo{}
		err := rows.Scan(
			&photo.ID, &photo.UserID, &photo.StoreID, &photo.FoodItemID, &photo.ObjectKey,
			&photo.FileName, &photo.FileSize, &photo.Width, &photo.Height,
			&photo.IsFeatured, &photo.IsActive, &photo.CreatedAt, &photo.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, rows.Err()
}
