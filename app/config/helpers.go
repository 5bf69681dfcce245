package config

import (
	"time"
)

// GetTimeout returns the per-fetch timeout as time.Duration
func (s *SourceSettings) GetTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.Timeout) * time.Second
}

// GetLimit returns the item cap for a keyword, falling back to the
// given default when unset.
func (s *SourceSettings) GetLimit(fallback int) int {
	if s.Limit <= 0 {
		return fallback
	}
	return s.Limit
}
