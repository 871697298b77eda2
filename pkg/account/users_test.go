package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
	"github.com/mealboard/mealboard/pkg/repository"
)

type fakeUserStore struct {
	users map[uuid.UUID]*domain.User
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByIDWithDeleted(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.DeletedAt == nil {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserStore) Update(ctx context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

// fakeCascader flips the user record in the fake store and counts calls.
type fakeCascader struct {
	store       *fakeUserStore
	deactivated int
	reactivated int
}

func (f *fakeCascader) DeactivateUser(ctx context.Context, q repository.Querier, userID uuid.UUID) error {
	f.deactivated++
	if u, ok := f.store.users[userID]; ok {
		u.Deactivate()
	}
	return nil
}

func (f *fakeCascader) ReactivateUser(ctx context.Context, q repository.Querier, userID uuid.UUID) error {
	f.reactivated++
	if u, ok := f.store.users[userID]; ok {
		u.Reactivate()
	}
	return nil
}

func newUserService() (*UserService, *fakeUserStore, *fakeCascader) {
	store := &fakeUserStore{users: map[uuid.UUID]*domain.User{}}
	cascade := &fakeCascader{store: store}
	svc := NewUserService(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, store, cascade)
	return svc, store, cascade
}

func TestEnsureUser_CreatesOnFirstSignIn(t *testing.T) {
	svc, store, _ := newUserService()
	subject := uuid.New()

	u, err := svc.EnsureUser(context.Background(), subject, "new@example.com", nil)
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if u.ID != subject {
		t.Errorf("ID = %s, want the token subject %s", u.ID, subject)
	}
	if len(store.users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(store.users))
	}

	again, err := svc.EnsureUser(context.Background(), subject, "new@example.com", nil)
	if err != nil {
		t.Fatalf("second EnsureUser failed: %v", err)
	}
	if again.ID != u.ID {
		t.Error("second sign-in should return the existing account")
	}
	if len(store.users) != 1 {
		t.Error("second sign-in must not create another account")
	}
}

func TestEnsureUser_ReturnsDeletedAccountUnchanged(t *testing.T) {
	svc, store, _ := newUserService()
	u := domain.NewUser(uuid.New(), "gone@example.com", nil)
	u.Deactivate()
	store.users[u.ID] = u

	got, err := svc.EnsureUser(context.Background(), u.ID, "gone@example.com", nil)
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if got.DeletedAt == nil {
		t.Error("sign-in must not resurrect or replace a deleted account")
	}
	if len(store.users) != 1 {
		t.Error("sign-in on a deleted account must not create a new one")
	}
}

func TestEnsureUser_RejectsEmailOfAnotherAccount(t *testing.T) {
	svc, store, _ := newUserService()
	existing := domain.NewUser(uuid.New(), "taken@example.com", nil)
	store.users[existing.ID] = existing

	_, err := svc.EnsureUser(context.Background(), uuid.New(), "taken@example.com", nil)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
	if len(store.users) != 1 {
		t.Error("conflicting sign-in must not create an account")
	}
}

func TestDeleteAccount(t *testing.T) {
	svc, store, cascade := newUserService()
	u := domain.NewUser(uuid.New(), "gone@example.com", nil)
	store.users[u.ID] = u

	if err := svc.DeleteAccount(context.Background(), u.ID); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}
	if cascade.deactivated != 1 {
		t.Errorf("cascade deactivations = %d, want 1", cascade.deactivated)
	}
	if u.DeletedAt == nil {
		t.Error("account should carry a deletion timestamp")
	}
}

func TestDeleteAccount_UnknownUser(t *testing.T) {
	svc, _, cascade := newUserService()

	err := svc.DeleteAccount(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
	if cascade.deactivated != 0 {
		t.Error("cascade must not run for an unknown user")
	}
}

func TestReinstateAccount_AfterGracePeriod(t *testing.T) {
	svc, store, cascade := newUserService()
	u := domain.NewUser(uuid.New(), "back@example.com", nil)
	deleted := time.Now().Add(-31 * 24 * time.Hour)
	u.IsActive = false
	u.DeletedAt = &deleted
	store.users[u.ID] = u

	got, err := svc.ReinstateAccount(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("ReinstateAccount failed: %v", err)
	}
	if cascade.reactivated != 1 {
		t.Errorf("cascade reactivations = %d, want 1", cascade.reactivated)
	}
	if !got.IsActive || got.DeletedAt != nil {
		t.Error("reinstated account should be active with no deletion timestamp")
	}
}

func TestReinstateAccount_WithinGracePeriod(t *testing.T) {
	svc, store, cascade := newUserService()
	u := domain.NewUser(uuid.New(), "early@example.com", nil)
	deleted := time.Now().Add(-10 * 24 * time.Hour)
	u.IsActive = false
	u.DeletedAt = &deleted
	store.users[u.ID] = u

	_, err := svc.ReinstateAccount(context.Background(), u.ID)
	if !errors.Is(err, domain.ErrReinstateUnavailable) {
		t.Errorf("err = %v, want ErrReinstateUnavailable", err)
	}
	if cascade.reactivated != 0 {
		t.Error("cascade must not run inside the grace period")
	}
}

func TestReinstateAccount_NotDeleted(t *testing.T) {
	svc, store, _ := newUserService()
	u := domain.NewUser(uuid.New(), "alive@example.com", nil)
	store.users[u.ID] = u

	_, err := svc.ReinstateAccount(context.Background(), u.ID)
	if !errors.Is(err, domain.ErrUserNotDeleted) {
		t.Errorf("err = %v, want ErrUserNotDeleted", err)
	}
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	svc, store, _ := newUserService()
	name := "Original"
	phone := "010-1234-5678"
	u := domain.NewUser(uuid.New(), "profile@example.com", &name)
	u.Phone = &phone
	store.users[u.ID] = u

	newName := "Changed"
	got, err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileRequest{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if got.Name == nil || *got.Name != "Changed" {
		t.Errorf("Name = %v, want Changed", got.Name)
	}
	if got.Phone == nil || *got.Phone != phone {
		t.Error("nil request fields must leave existing values untouched")
	}
}
