package database

import (
	"testing"
	"time"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func TestSubscriberRepository_AddAndListAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubscriberRepository(db)

	registered := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)

	subs := []Subscriber{
		{Name: "Alice", Email: "alice@example.com", Keywords: []string{"AI"}, RegisteredAt: registered},
		{Name: "Bob", Email: "bob@example.com", Keywords: []string{"startup"}, RegisteredAt: registered},
		{Name: "Carol", Email: "carol@example.com", Keywords: []string{"AI", "startup"}, RegisteredAt: registered},
	}
	for _, sub := range subs {
		if err := repo.Add(sub); err != nil {
			t.Fatalf("Failed to add subscriber %s: %v", sub.Email, err)
		}
	}

	listed, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}

	if len(listed) != 3 {
		t.Fatalf("Expected 3 subscribers, got %d", len(listed))
	}

	// Registration order must be preserved
	for i, expected := range []string{"alice@example.com", "bob@example.com", "carol@example.com"} {
		if listed[i].Email != expected {
			t.Errorf("Expected subscriber %d to be %s, got %s", i, expected, listed[i].Email)
		}
	}

	if len(listed[2].Keywords) != 2 || listed[2].Keywords[0] != "AI" || listed[2].Keywords[1] != "startup" {
		t.Errorf("Expected keywords [AI startup], got %v", listed[2].Keywords)
	}

	if !listed[0].RegisteredAt.Equal(registered) {
		t.Errorf("Expected registered at %v, got %v", registered, listed[0].RegisteredAt)
	}
}

func TestSubscriberRepository_DuplicateRegistrationsAllowed(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubscriberRepository(db)

	sub := Subscriber{Name: "Alice", Email: "alice@example.com", Keywords: []string{"AI"}}

	if err := repo.Add(sub); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}
	if err := repo.Add(sub); err != nil {
		t.Fatalf("Duplicate registration should be allowed: %v", err)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 registry rows, got %d", count)
	}
}

func TestSubscriberRepository_ListAll_Empty(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubscriberRepository(db)

	listed, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("Expected empty registry, got %d rows", len(listed))
	}
}

func TestSubscriberHasKeyword(t *testing.T) {
	sub := Subscriber{Keywords: []string{"AI", "startup"}}

	if !sub.HasKeyword("AI") {
		t.Error("Expected subscriber to match 'AI'")
	}
	if sub.HasKeyword("ai") {
		t.Error("Keyword matching must be case-sensitive")
	}
	if sub.HasKeyword("crypto") {
		t.Error("Expected subscriber not to match 'crypto'")
	}
}

func TestSplitKeywords(t *testing.T) {
	cases := []struct {
		raw      string
		expected int
	}{
		{"AI,startup", 2},
		{"AI, startup ", 2},
		{"AI,,startup", 2},
		{"", 0},
		{" , ", 0},
	}

	for _, tc := range cases {
		keywords := splitKeywords(tc.raw)
		if len(keywords) != tc.expected {
			t.Errorf("splitKeywords(%q): expected %d keywords, got %v", tc.raw, tc.expected, keywords)
		}
	}
}
