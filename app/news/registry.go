package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/yeonho-kim/newsdigest/app/config"
)

var _ Provider = (*Registry)(nil)

type registryEntry struct {
	keyword string
	source  Source
	limit   int
}

// Registry wires a Source per configured keyword and applies each
// keyword's item cap. Keyword order follows the configuration
// declaration order.
type Registry struct {
	entries []registryEntry
	byKey   map[string]registryEntry
}

func NewRegistry(sources []*config.Source, client *http.Client, userAgent string, defaultLimit int) (*Registry, error) {
	if client == nil {
		client = DefaultHTTPClient()
	}

	reg := &Registry{
		entries: make([]registryEntry, 0, len(sources)),
		byKey:   make(map[string]registryEntry, len(sources)),
	}

	for _, source := range sources {
		var impl Source
		switch source.Type {
		case config.SourceTypeSearch:
			impl = NewSearchSource(source, client, userAgent)
		case config.SourceTypeRSS:
			impl = NewRSSSource(source, client, userAgent)
		default:
			return nil, fmt.Errorf("no source implementation for type %q", source.Type)
		}

		entry := registryEntry{
			keyword: source.Keyword,
			source:  impl,
			limit:   source.Settings.GetLimit(defaultLimit),
		}
		reg.entries = append(reg.entries, entry)
		reg.byKey[source.Keyword] = entry
	}

	return reg, nil
}

// Keywords returns the configured keywords in declaration order.
func (r *Registry) Keywords() []string {
	keywords := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		keywords = append(keywords, entry.keyword)
	}
	return keywords
}

// Fetch retrieves the news items for one keyword, capped at the
// keyword's configured limit.
func (r *Registry) Fetch(ctx context.Context, keyword string) ([]Item, error) {
	entry, ok := r.byKey[keyword]
	if !ok {
		return nil, fmt.Errorf("no source registered for keyword %q", keyword)
	}
	return entry.source.Fetch(ctx, entry.limit)
}

// DefaultHTTPClient returns a tuned http.Client shared by all sources.
func DefaultHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
