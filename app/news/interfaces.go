package news

import (
	"context"
)

// Source fetches up to limit news items for its keyword, ordered as
// returned upstream. Implementations fail with a wrapped
// ErrSourceUnavailable.
type Source interface {
	Fetch(ctx context.Context, limit int) ([]Item, error)
}

// Provider is what the dispatch engine sees: the fixed, ordered keyword
// set of a run and a per-keyword fetch with the configured item cap
// already applied.
type Provider interface {
	Keywords() []string
	Fetch(ctx context.Context, keyword string) ([]Item, error)
}
