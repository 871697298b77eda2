package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mealboard/mealboard/pkg/domain"
)

// StoresRepository handles store persistence.
type StoresRepository struct {
	db *sql.DB
}

// NewStoresRepository creates a new stores repository.
func NewStoresRepository(db *sql.DB) *StoresRepository {
	return &StoresRepository{db: db}
}

// Create creates a new store.
func (r *StoresRepository) Create(ctx context.Context, store *domain.Store) error {
	return r.CreateTx(ctx, r.db, store)
}

// CreateTx creates a new store within a transaction.
func (r *StoresRepository) CreateTx(ctx context.Context, q Querier, store *domain.Store) error {
	query := `
		INSERT INTO stores (id, name, business_type, address, phone, registration_number, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := q.ExecContext(ctx, query,
		store.ID, store.Name, store.BusinessType, store.Address, store.Phone,
		store.RegistrationNumber, store.IsActive, store.CreatedAt, store.UpdatedAt,
	)
	return err
}

// GetByID retrieves an active store by ID.
func (r *StoresRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	query := `
		SELECT id, name, business_type, address, phone, registration_number, is_active, created_at, updated_at
		FROM stores
		WHERE id = $1 AND is_active = TRUE
	`
	store := &domain.Store{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&store.ID, &store.Name, &store.BusinessType, &store.Address, &store.Phone,
		&store.RegistrationNumber, &store.IsActive, &store.CreatedAt, &store.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// ListByIDs retrieves active stores for the given IDs, preserving no
// particular order.
func (r *StoresRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Store, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, name, business_type, address, phone, registration_number, is_active, created_at, updated_at
		FROM stores
		WHERE id = ANY($1::uuid[]) AND is_active = TRUE
	`
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}
	rows, err := r.db.QueryContext(ctx, query, pq.Array(idStrings))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []*domain.Store
	for rows.Next() {
		store := &domain.Store{}
		err := rows.Scan(
			&store.ID, &store.Name, &store.BusinessType, &store.Address, &store.Phone,
			&store.RegistrationNumber, &store.IsActive, &store.CreatedAt, &store.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return stores, rows.Err()
}

// Update updates a store's editable fields.
func (r *StoresRepository) Update(ctx context.Context, store *domain.Store) error {
	query := `
		UPDATE stores
		SET name = $2, business_type = $3, address = $4, phone = $5, registration_number = $6, updated_at = $7
		WHERE id = $1 AND is_active = TRUE
	`
	result, err := r.db.ExecContext(ctx, query,
		store.ID, store.Name, store.BusinessType, store.Address, store.Phone,
		store.RegistrationNumber, store.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrStoreNotFound
	}
	return nil
}

// Deactivate soft-deletes a store. Idempotent.
func (r *StoresRepository) Deactivate(ctx context.Context, q Querier, id uuid.UUID) error {
	query := `
		UPDATE stores
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
	`
	_, err := q.ExecContext(ctx, query, id)
	return err
}
