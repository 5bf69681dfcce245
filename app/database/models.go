package database

import (
	"time"
)

// Subscriber represents a registry row. Keywords are stored
// comma-joined and split on read.
type Subscriber struct {
	ID           int64
	Name         string
	Email        string
	Keywords     []string
	RegisteredAt time.Time
}

// HasKeyword reports whether the subscriber declared an interest in the
// keyword. Matching is case-sensitive, mirroring the registry format.
func (s *Subscriber) HasKeyword(keyword string) bool {
	for _, k := range s.Keywords {
		if k == keyword {
			return true
		}
	}
	return false
}

// Announcement is the single operator-set message included in every
// digest of a run. Overwritten wholesale on update.
type Announcement struct {
	Message   string
	UpdatedAt time.Time
}
