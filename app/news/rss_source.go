package news

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/yeonho-kim/newsdigest/app/config"
)

const maxFeedBodyBytes = 4 << 20 // 4 MiB

// RSSSource fetches a fixed RSS/Atom feed configured for a keyword.
type RSSSource struct {
	keyword   string
	feedURL   string
	timeout   time.Duration
	client    *http.Client
	userAgent string
	parser    *gofeed.Parser
}

func NewRSSSource(source *config.Source, client *http.Client, userAgent string) *RSSSource {
	return &RSSSource{
		keyword:   source.Keyword,
		feedURL:   source.URL,
		timeout:   source.Settings.GetTimeout(),
		client:    client,
		userAgent: userAgent,
		parser:    gofeed.NewParser(),
	}
}

func (s *RSSSource) Fetch(ctx context.Context, limit int) ([]Item, error) {
	if limit <= 0 {
		return nil, nil
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch feed for %q: %v", ErrSourceUnavailable, s.keyword, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read feed for %q: %v", ErrSourceUnavailable, s.keyword, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: feed for %q returned status %d body: %s",
			ErrSourceUnavailable, s.keyword, resp.StatusCode, responseSnippet(body))
	}

	feed, err := s.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse feed for %q: %v", ErrSourceUnavailable, s.keyword, err)
	}

	items := make([]Item, 0, limit)
	for _, entry := range feed.Items {
		if entry == nil || entry.Title == "" || entry.Link == "" {
			continue
		}
		items = append(items, Item{Title: entry.Title, Link: entry.Link})
		if len(items) >= limit {
			break
		}
	}

	return items, nil
}
