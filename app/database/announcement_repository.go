package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ AnnouncementRepository = (*AnnouncementRepositoryImpl)(nil)

type AnnouncementRepositoryImpl struct {
	db *DB
}

func NewAnnouncementRepository(db *DB) *AnnouncementRepositoryImpl {
	return &AnnouncementRepositoryImpl{db: db}
}

// Get returns the current announcement. An empty message is a valid
// state, not an error.
func (r *AnnouncementRepositoryImpl) Get() (Announcement, error) {
	var ann Announcement
	var updatedAt string

	err := r.db.QueryRow(`
		SELECT message, updated_at FROM announcement WHERE id = 1
	`).Scan(&ann.Message, &updatedAt)
	if err == sql.ErrNoRows {
		return Announcement{}, nil
	}
	if err != nil {
		return Announcement{}, fmt.Errorf("failed to get announcement: %w", err)
	}

	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		ann.UpdatedAt = ts
	}

	return ann, nil
}

// Set overwrites the announcement wholesale.
func (r *AnnouncementRepositoryImpl) Set(message string) error {
	_, err := r.db.Exec(`
		INSERT INTO announcement (id, message, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			message = excluded.message,
			updated_at = excluded.updated_at
	`, message, time.Now().UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to set announcement: %w", err)
	}

	return nil
}
