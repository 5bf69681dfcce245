package database

import (
	"fmt"
	"strings"
	"time"
)

var _ SubscriberRepository = (*SubscriberRepositoryImpl)(nil)

type SubscriberRepositoryImpl struct {
	db *DB
}

func NewSubscriberRepository(db *DB) *SubscriberRepositoryImpl {
	return &SubscriberRepositoryImpl{db: db}
}

// Add appends a subscriber to the registry. Duplicate registrations are
// allowed and treated as independent subscribers.
func (r *SubscriberRepositoryImpl) Add(sub Subscriber) error {
	registeredAt := sub.RegisteredAt
	if registeredAt.IsZero() {
		registeredAt = time.Now().UTC()
	}

	_, err := r.db.Exec(`
		INSERT INTO subscribers (name, email, keywords, registered_at)
		VALUES (?, ?, ?, ?)
	`, sub.Name, sub.Email, joinKeywords(sub.Keywords), registeredAt.Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to add subscriber: %w", err)
	}

	return nil
}

// ListAll returns every subscriber in registration order.
func (r *SubscriberRepositoryImpl) ListAll() ([]Subscriber, error) {
	rows, err := r.db.Query(`
		SELECT id, name, email, keywords, registered_at
		FROM subscribers
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var subscribers []Subscriber
	for rows.Next() {
		var sub Subscriber
		var keywords, registeredAt string

		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &keywords, &registeredAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber row: %w", err)
		}

		sub.Keywords = splitKeywords(keywords)
		if ts, err := time.Parse(time.RFC3339, registeredAt); err == nil {
			sub.RegisteredAt = ts
		}

		subscribers = append(subscribers, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriber rows: %w", err)
	}

	return subscribers, nil
}

func (r *SubscriberRepositoryImpl) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM subscribers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}

func joinKeywords(keywords []string) string {
	return strings.Join(keywords, ",")
}

func splitKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if k := strings.TrimSpace(part); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
