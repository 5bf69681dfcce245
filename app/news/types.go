package news

import (
	"errors"
)

// Item is one fetched news entry. Produced fresh each run, never
// persisted.
type Item struct {
	Title string
	Link  string
}

// ErrSourceUnavailable marks a network or parse failure on a single
// keyword source. The dispatch engine degrades (zero items for the
// keyword) instead of aborting the run.
var ErrSourceUnavailable = errors.New("news source unavailable")
