package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
)

// DeviceTokensRepository handles push-token persistence.
type DeviceTokensRepository struct {
	db *sql.DB
}

// NewDeviceTokensRepository creates a new device tokens repository.
func NewDeviceTokensRepository(db *sql.DB) *DeviceTokensRepository {
	return &DeviceTokensRepository{db: db}
}

// Upsert registers a device token, reactivating and re-owning an existing
// row for the same token value. Device registration is create-or-update:
// a token moving between accounts or returning after deactivation is the
// normal case, not an error.
func (r *DeviceTokensRepository) Upsert(ctx context.Context, t *domain.DeviceToken) error {
	query := `
		INSERT INTO device_tokens (id, user_id, token, platform, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (token) DO UPDATE
		SET user_id = EXCLUDED.user_id, platform = EXCLUDED.platform,
		    is_active = TRUE, updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Token, t.Platform, t.IsActive, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

// ListActiveByUser retrieves a user's active device tokens.
func (r *DeviceTokensRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*domain.DeviceToken, error) {
	query := `
		SELECT id, user_id, token, platform, is_active, created_at, updated_at
		FROM device_tokens
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []*domain.DeviceToken
	for rows.Next() {
		t := &domain.DeviceToken{}
		err := rows.Scan(&t.ID, &t.UserID, &t.Token, &t.Platform, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// DeactivateByToken soft-deletes a single token (device logout).
func (r *DeviceTokensRepository) DeactivateByToken(ctx context.Context, token string) error {
	query := `
		UPDATE device_tokens
		SET is_active = FALSE, updated_at = NOW()
		WHERE token = $1 AND is_active = TRUE
	`
	_, err := r.db.ExecContext(ctx, query, token)
	return err
}

// DeactivateByUserID suspends every active token of a user.
func (r *DeviceTokensRepository) DeactivateByUserID(ctx context.Context, q Querier, userID uuid.UUID) error {
	query := `
		UPDATE device_tokens
		SET is_active = FALSE, suspended = TRUE, updated_at = NOW()
		WHERE user_id = $1 AND is_active = TRUE
	`
	_, err := q.ExecContext(ctx, query, userID)
	return err
}

// ReactivateByUserID restores the tokens that DeactivateByUserID
// suspended. Tokens revoked through device logout stay inactive.
func (r *DeviceTokensRepository) ReactivateByUserID(ctx context.Context, q Querier, userID uuid.UUID) error {
	query := `
		UPDATE device_tokens
		SET is_active = TRUE, suspended = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND suspended = TRUE
	`
	_, err := q.ExecContext(ctx, query, userID)
	return err
}
