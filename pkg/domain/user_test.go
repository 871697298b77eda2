package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestUser_Deactivate(t *testing.T) {
	u := NewUser(uuid.New(), "owner@example.com", nil)

	u.Deactivate()
	if u.IsActive {
		t.Fatal("user should be inactive after Deactivate")
	}
	if u.DeletedAt == nil {
		t.Fatal("Deactivate should stamp DeletedAt")
	}

	first := *u.DeletedAt
	u.Deactivate()
	if !u.DeletedAt.Equal(first) {
		t.Error("second Deactivate should keep the original deletion time")
	}
}

func TestUser_Reactivate(t *testing.T) {
	u := NewUser(uuid.New(), "owner@example.com", nil)
	u.Deactivate()

	u.Reactivate()
	if !u.IsActive {
		t.Error("user should be active after Reactivate")
	}
	if u.DeletedAt != nil {
		t.Error("Reactivate should clear DeletedAt")
	}
}

func TestUser_CanReinstate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		deletedAt *time.Time
		want      bool
	}{
		{"not deleted", nil, false},
		{"deleted just now", &now, false},
		{"deleted 29 days ago", timePtr(now.Add(-29 * 24 * time.Hour)), false},
		{"deleted 31 days ago", timePtr(now.Add(-31 * 24 * time.Hour)), true},
	}

	for _, tt := range tests {
		u := &User{DeletedAt: tt.deletedAt}
		if got := u.CanReinstate(now); got != tt.want {
			t.Errorf("%s: CanReinstate = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
