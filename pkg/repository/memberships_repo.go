package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
)

// MembershipsRepository handles store membership persistence.
type MembershipsRepository struct {
	db *sql.DB
}

// NewMembershipsRepository creates a new memberships repository.
func NewMembershipsRepository(db *sql.DB) *MembershipsRepository {
	return &MembershipsRepository{db: db}
}

const membershipColumns = `id, user_id, store_id, role, is_active, created_at, updated_at`

// Create creates a new membership.
func (r *MembershipsRepository) Create(ctx context.Context, m *domain.Membership) error {
	return r.CreateTx(ctx, r.db, m)
}

// CreateTx creates a new membership within a transaction.
func (r *MembershipsRepository) CreateTx(ctx context.Context, q Querier, m *domain.Membership) error {
	query := `
		INSERT INTO memberships (id, user_id, store_id, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.ExecContext(ctx, query,
		m.ID, m.UserID, m.StoreID, string(m.Role), m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	return err
}

// GetActiveByUserAndStore retrieves the active membership for a (user,
// store) pair. At most one exists.
func (r *MembershipsRepository) GetActiveByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*domain.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE user_id = $1 AND store_id = $2 AND is_active = TRUE
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, storeID))
}

// GetAnyByUserAndStore retrieves the most recent membership for a (user,
// store) pair, active or not. Used to block re-invites of removed members.
func (r *MembershipsRepository) GetAnyByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*domain.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE user_id = $1 AND store_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, storeID))
}

// ListActiveByUser retrieves all active memberships for a user.
func (r *MembershipsRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, userID)
}

// ListActiveByStore retrieves all active memberships of a store.
func (r *MembershipsRepository) ListActiveByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE store_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, storeID)
}

// Update persists a membership's role and active flag.
func (r *MembershipsRepository) Update(ctx context.Context, m *domain.Membership) error {
	query := `
		UPDATE memberships
		SET role = $2, is_active = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, m.ID, string(m.Role), m.IsActive, m.UpdatedAt)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

// DeactivateByStoreID soft-deletes every active membership of a store.
// Idempotent bulk flip.
func (r *MembershipsRepository) DeactivateByStoreID(ctx context.Context, q Querier, storeID uuid.UUID) error {
	query := `
		UPDATE memberships
		SET is_active = FALSE, updated_at = NOW()
		WHERE store_id = $1 AND is_active = TRUE
	`
	_, err := q.ExecContext(ctx, query, storeID)
	return err
}

// DeactivateByUserID suspends every active membership of a user. The
// suspended mark scopes a later ReactivateByUserID to exactly these rows.
func (r *MembershipsRepository) DeactivateByUserID(ctx context.Context, q Querier, userID uuid.UUID) error {
	query := `
		UPDATE memberships
		SET is_active = FALSE, suspended = TRUE, updated_at = NOW()
		WHERE user_id = $1 AND is_active = TRUE
	`
	_, err := q.ExecContext(ctx, query, userID)
	return err
}

// ReactivateByUserID restores the memberships that DeactivateByUserID
// suspended. Memberships revoked individually before the account was
// deleted carry no suspended mark and stay inactive.
func (r *MembershipsRepository) ReactivateByUserID(ctx context.Context, q Querier, userID uuid.UUID) error {
	query := `
		UPDATE memberships
		SET is_active = TRUE, suspended = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND suspended = TRUE
	`
	_, err := q.ExecContext(ctx, query, userID)
	return err
}

func (r *MembershipsRepository) scanOne(row *sql.Row) (*domain.Membership, error) {
	m := &domain.Membership{}
	var role string
	err := row.Scan(&m.ID, &m.UserID, &m.StoreID, &role, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	m.Role = domain.RoleType(role)
	return m, nil
}

func (r *MembershipsRepository) list(ctx context.Context, query string, arg any) ([]*domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []*domain.Membership
	for rows.Next() {
		m := &domain.Membership{}
		var role string
		err := rows.Scan(&m.ID, &m.UserID, &m.StoreID, &role, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, err
		}
		m.Role = domain.RoleType(role)
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}
