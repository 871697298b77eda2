package domain

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a restaurant. It is a root aggregate: deactivating a
// store cascades to its menus, food items, photos, and memberships.
type Store struct {
	ID                 uuid.UUID
	Name               string
	BusinessType       string
	Address            string
	Phone              string
	RegistrationNumber string
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewStore creates an active store.
func NewStore(name, businessType, address, phone, registrationNumber string) *Store {
	now := time.Now()
	return &Store{
		ID:                 uuid.New(),
		Name:               name,
		BusinessType:       businessType,
		Address:            address,
		Phone:              phone,
		RegistrationNumber: registrationNumber,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Update replaces the store's editable fields. The registration number is
// fixed at creation.
func (s *Store) Update(name, businessType, address, phone string) {
	s.Name = name
	s.BusinessType = businessType
	s.Address = address
	s.Phone = phone
	s.UpdatedAt = time.Now()
}

// Deactivate soft-deletes the store. Idempotent.
func (s *Store) Deactivate() {
	if !s.IsActive {
		return
	}
	s.IsActive = false
	s.UpdatedAt = time.Now()
}
