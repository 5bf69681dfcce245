package engine

import "time"

// Failure records one recipient the run could not deliver to.
type Failure struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// Report summarizes a single dispatch run. Attempted always equals
// Succeeded plus the number of Failures; skipped subscribers (no
// matching sections) are not counted at all.
type Report struct {
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Attempted   int       `json:"attempted"`
	Succeeded   int       `json:"succeeded"`
	Failures    []Failure `json:"failures"`
	AbortReason string    `json:"abort_reason,omitempty"`
}

// Aborted reports whether the run stopped before any delivery was
// attempted.
func (r *Report) Aborted() bool {
	return r.AbortReason != ""
}
