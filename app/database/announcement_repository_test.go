package database

import (
	"testing"
)

func TestAnnouncementRepository_DefaultIsEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnnouncementRepository(db)

	ann, err := repo.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ann.Message != "" {
		t.Errorf("Expected empty default announcement, got %q", ann.Message)
	}
}

func TestAnnouncementRepository_SetOverwritesWholesale(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnnouncementRepository(db)

	if err := repo.Set("Welcome to the newsletter!"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Set("Schedule change next week"); err != nil {
		t.Fatalf("Second set failed: %v", err)
	}

	ann, err := repo.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ann.Message != "Schedule change next week" {
		t.Errorf("Expected latest message, got %q", ann.Message)
	}
	if ann.UpdatedAt.IsZero() {
		t.Error("Expected updated_at to be set")
	}
}
