package lifecycle

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/repository"
)

// recorder logs every flip call in order and can fail a named step.
type recorder struct {
	calls    *[]string
	failStep string
	failErr  error
}

func (r *recorder) record(step string) error {
	*r.calls = append(*r.calls, step)
	if step == r.failStep {
		return r.failErr
	}
	return nil
}

type fakeStoreChild struct {
	recorder
	name string
}

func (f *fakeStoreChild) DeactivateByStoreID(ctx context.Context, q repository.Querier, storeID uuid.UUID) error {
	return f.record(f.name + ".deactivateByStore")
}

type fakeShared struct {
	recorder
	name string
}

func (f *fakeShared) DeactivateByStoreID(ctx context.Context, q repository.Querier, storeID uuid.UUID) error {
	return f.record(f.name + ".deactivateByStore")
}

func (f *fakeShared) DeactivateByUserID(ctx context.Context, q repository.Querier, userID uuid.UUID) error {
	return f.record(f.name + ".deactivateByUser")
}

func (f *fakeShared) ReactivateByUserID(ctx context.Context, q repository.Querier, userID uuid.UUID) error {
	return f.record(f.name + ".reactivateByUser")
}

type fakeUserChild struct {
	recorder
	name string
}

func (f *fakeUserChild) DeactivateByUserID(ctx context.Context, q repository.Querier, userID uuid.UUID) error {
	return f.record(f.name + ".deactivateByUser")
}

func (f *fakeUserChild) ReactivateByUserID(ctx context.Context, q repository.Querier, userID uuid.UUID) error {
	return f.record(f.name + ".reactivateByUser")
}

type fakeStoreRoot struct {
	recorder
}

func (f *fakeStoreRoot) Deactivate(ctx context.Context, q repository.Querier, id uuid.UUID) error {
	return f.record("store.deactivate")
}

type fakeUserRoot struct {
	recorder
}

func (f *fakeUserRoot) Deactivate(ctx context.Context, q repository.Querier, id uuid.UUID) error {
	return f.record("user.deactivate")
}

func (f *fakeUserRoot) Reactivate(ctx context.Context, q repository.Querier, id uuid.UUID) error {
	return f.record("user.reactivate")
}

type harness struct {
	svc   *CascadeService
	calls []string
}

func newHarness(failStep string, failErr error) *harness {
	h := &harness{}
	rec := func() recorder {
		return recorder{calls: &h.calls, failStep: failStep, failErr: failErr}
	}

	h.svc = NewCascadeService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		&fakeStoreRoot{rec()},
		&fakeUserRoot{rec()},
		&fakeShared{rec(), "memberships"},
		&fakeStoreChild{rec(), "menus"},
		&fakeStoreChild{rec(), "menu_items"},
		&fakeStoreChild{rec(), "food_items"},
		&fakeShared{rec(), "photos"},
		&fakeUserChild{rec(), "device_tokens"},
	)
	return h
}

func TestDeactivateStore_Order(t *testing.T) {
	h := newHarness("", nil)

	if err := h.svc.DeactivateStore(context.Background(), nil, uuid.New()); err != nil {
		t.Fatalf("DeactivateStore failed: %v", err)
	}

	want := []string{
		"menu_items.deactivateByStore",
		"menus.deactivateByStore",
		"photos.deactivateByStore",
		"food_items.deactivateByStore",
		"memberships.deactivateByStore",
		"store.deactivate",
	}
	assertCalls(t, h.calls, want)
}

func TestDeactivateStore_AbortsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	h := newHarness("photos.deactivateByStore", boom)

	err := h.svc.DeactivateStore(context.Background(), nil, uuid.New())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	if !strings.Contains(err.Error(), "photos") {
		t.Errorf("error should name the failing step: %v", err)
	}

	want := []string{
		"menu_items.deactivateByStore",
		"menus.deactivateByStore",
		"photos.deactivateByStore",
	}
	assertCalls(t, h.calls, want)
}

func TestDeactivateUser_Order(t *testing.T) {
	h := newHarness("", nil)

	if err := h.svc.DeactivateUser(context.Background(), nil, uuid.New()); err != nil {
		t.Fatalf("DeactivateUser failed: %v", err)
	}

	want := []string{
		"photos.deactivateByUser",
		"memberships.deactivateByUser",
		"device_tokens.deactivateByUser",
		"user.deactivate",
	}
	assertCalls(t, h.calls, want)
}

func TestDeactivateUser_AbortsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	h := newHarness("memberships.deactivateByUser", boom)

	err := h.svc.DeactivateUser(context.Background(), nil, uuid.New())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}

	want := []string{
		"photos.deactivateByUser",
		"memberships.deactivateByUser",
	}
	assertCalls(t, h.calls, want)
}

func TestReactivateUser_Order(t *testing.T) {
	h := newHarness("", nil)

	if err := h.svc.ReactivateUser(context.Background(), nil, uuid.New()); err != nil {
		t.Fatalf("ReactivateUser failed: %v", err)
	}

	want := []string{
		"photos.reactivateByUser",
		"memberships.reactivateByUser",
		"device_tokens.reactivateByUser",
		"user.reactivate",
	}
	assertCalls(t, h.calls, want)
}

// flipRow mirrors a soft-deletable child row: user-level deactivation
// suspends active rows, reactivation revives only suspended ones.
type flipRow struct {
	active    bool
	suspended bool
}

type flipRows struct {
	rows []*flipRow
}

func (f *flipRows) DeactivateByStoreID(ctx context.Context, q repository.Querier, storeID uuid.UUID) error {
	for _, row := range f.rows {
		row.active = false
	}
	return nil
}

func (f *flipRows) DeactivateByUserID(ctx context.Context, q repository.Querier, userID uuid.UUID) error {
	for _, row := range f.rows {
		if row.active {
			row.active = false
			row.suspended = true
		}
	}
	return nil
}

func (f *flipRows) ReactivateByUserID(ctx context.Context, q repository.Querier, userID uuid.UUID) error {
	for _, row := range f.rows {
		if row.suspended {
			row.active = true
			row.suspended = false
		}
	}
	return nil
}

func TestReactivateUser_LeavesRevokedMembershipsInactive(t *testing.T) {
	revoked := &flipRow{}             // removed from the store before the account was deleted
	current := &flipRow{active: true} // held at deletion time
	memberships := &flipRows{rows: []*flipRow{revoked, current}}

	var calls []string
	rec := recorder{calls: &calls}
	svc := NewCascadeService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		&fakeStoreRoot{rec},
		&fakeUserRoot{rec},
		memberships,
		&fakeStoreChild{rec, "menus"},
		&fakeStoreChild{rec, "menu_items"},
		&fakeStoreChild{rec, "food_items"},
		&fakeShared{rec, "photos"},
		&fakeUserChild{rec, "device_tokens"},
	)

	userID := uuid.New()
	if err := svc.DeactivateUser(context.Background(), nil, userID); err != nil {
		t.Fatalf("DeactivateUser failed: %v", err)
	}
	if revoked.suspended {
		t.Error("already inactive membership must not be suspended")
	}
	if current.active || !current.suspended {
		t.Error("held membership should be suspended by account deletion")
	}

	if err := svc.ReactivateUser(context.Background(), nil, userID); err != nil {
		t.Fatalf("ReactivateUser failed: %v", err)
	}
	if revoked.active {
		t.Error("membership revoked before deletion must stay inactive after reinstatement")
	}
	if !current.active || current.suspended {
		t.Error("suspended membership should be revived by reinstatement")
	}
}

func assertCalls(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls[%d] = %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}
