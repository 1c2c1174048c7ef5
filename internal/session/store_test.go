package session

import (
	"errors"
	"testing"

	"topmart-admin/internal/models"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	if s.IsAuthenticated() {
		t.Fatal("new store should not be authenticated")
	}
	if _, err := s.User(); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	s.Begin(models.User{Id: "a1", Name: "Admin", Email: "admin@topmart.io", Role: "admin"})
	if !s.IsAuthenticated() {
		t.Fatal("store should be authenticated after Begin")
	}
	if got := s.Reviewer(); got != "admin@topmart.io" {
		t.Errorf("Reviewer = %q", got)
	}

	ended := 0
	s.OnEnd(func() { ended++ })
	s.End()
	s.End()

	if ended != 1 {
		t.Errorf("expected teardown hook to run once, ran %d times", ended)
	}
	if s.IsAuthenticated() {
		t.Error("store should not be authenticated after End")
	}
	if s.Reviewer() != "" {
		t.Error("reviewer should be empty after End")
	}
}

func TestReviewerFallsBackToName(t *testing.T) {
	s := NewStore()
	s.Begin(models.User{Name: "Night Shift"})
	if got := s.Reviewer(); got != "Night Shift" {
		t.Errorf("Reviewer = %q, want Night Shift", got)
	}
}
