package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mealboard/mealboard/pkg/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrStoreNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrMenuNotFound, http.StatusNotFound},
		{domain.ErrFoodItemNotFound, http.StatusNotFound},
		{domain.ErrPhotoNotFound, http.StatusNotFound},
		{domain.ErrAccessDenied, http.StatusForbidden},
		{domain.ErrOwnerCannotLeave, http.StatusForbidden},
		{domain.ErrMemberAlreadyExists, http.StatusConflict},
		{domain.ErrMembershipInactive, http.StatusConflict},
		{domain.ErrInvalidRequest, http.StatusBadRequest},
		{domain.ErrInvalidRoleType, http.StatusBadRequest},
		{domain.ErrOwnerRoleNotAllowed, http.StatusBadRequest},
		{domain.ErrMenuItemNotInMenu, http.StatusBadRequest},
		{domain.ErrReinstateUnavailable, http.StatusBadRequest},
		{domain.ErrUserNotDeleted, http.StatusBadRequest},
		{errors.New("database down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

// Wrapped sentinel errors must map the same as the bare sentinel.
func TestStatusFor_WrappedError(t *testing.T) {
	err := fmt.Errorf("invite member: %w", domain.ErrAccessDenied)
	if got := StatusFor(err); got != http.StatusForbidden {
		t.Errorf("StatusFor(wrapped) = %d, want %d", got, http.StatusForbidden)
	}
}

func TestErrorFrom_MasksInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorFrom(w, errors.New("pq: connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Error != "internal server error" {
		t.Errorf("Error = %q, internal detail must not leak", resp.Error)
	}
}

func TestBodyError(t *testing.T) {
	w := httptest.NewRecorder()
	BodyError(w, fmt.Errorf("read: %w", &http.MaxBytesError{Limit: 64}))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
	}

	w = httptest.NewRecorder()
	BodyError(w, errors.New("unexpected EOF"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusCreated, map[string]string{"id": "abc"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body["id"] != "abc" {
		t.Errorf("body = %v", body)
	}
}
