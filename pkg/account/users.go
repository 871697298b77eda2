package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
	"github.com/mealboard/mealboard/pkg/repository"
)

// UserStore is the user persistence the account services need.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByIDWithDeleted(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// UserCascader propagates user deactivation and reinstatement to the
// user's dependents.
type UserCascader interface {
	DeactivateUser(ctx context.Context, q repository.Querier, userID uuid.UUID) error
	ReactivateUser(ctx context.Context, q repository.Querier, userID uuid.UUID) error
}

// UpdateProfileRequest carries the mutable profile fields. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Name    *string
	Phone   *string
	Picture *string
}

// UserService manages user accounts and the deletion grace period.
type UserService struct {
	logger  *slog.Logger
	db      *sql.DB
	users   UserStore
	cascade UserCascader
	now     func() time.Time
}

func NewUserService(logger *slog.Logger, db *sql.DB, users UserStore, cascade UserCascader) *UserService {
	return &UserService{
		logger:  logger,
		db:      db,
		users:   users,
		cascade: cascade,
		now:     time.Now,
	}
}

// EnsureUser returns the account behind a token subject, creating it on
// first sign-in from the token's profile claims. A deleted account is
// returned as-is so the caller can surface the reinstatement flow instead
// of silently minting a fresh account.
func (s *UserService) EnsureUser(ctx context.Context, userID uuid.UUID, email string, name *string) (*domain.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidRequest)
	}

	user, err := s.users.GetByIDWithDeleted(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered to another account", domain.ErrInvalidRequest)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user = domain.NewUser(userID, email, name)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user created", "user_id", user.ID)
	return user, nil
}

// Profile returns an active user's profile.
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies the non-nil fields of the request.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = req.Name
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Picture != nil {
		user.Picture = req.Picture
	}
	user.UpdatedAt = s.now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount soft-deletes a user and everything that hangs off them.
// The account becomes eligible for reinstatement once the grace period has
// passed.
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.cascade.DeactivateUser(ctx, s.db, userID); err != nil {
		return err
	}
	s.logger.Info("account deleted", "user_id", userID)
	return nil
}

// ReinstateAccount restores a deleted account and its dependents. Only
// accounts deleted longer ago than the grace period may be reinstated.
func (s *UserService) ReinstateAccount(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByIDWithDeleted(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.DeletedAt == nil {
		return nil, domain.ErrUserNotDeleted
	}
	if !user.CanReinstate(s.now()) {
		return nil, domain.ErrReinstateUnavailable
	}

	if err := s.cascade.ReactivateUser(ctx, s.db, userID); err != nil {
		return nil, err
	}
	s.logger.Info("account reinstated", "user_id", userID)
	return s.users.GetByID(ctx, userID)
}
