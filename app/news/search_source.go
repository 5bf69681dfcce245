package news

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/yeonho-kim/newsdigest/app/config"
)

const maxSearchBodyBytes = 1 << 20 // 1 MiB

// SearchSource scrapes a keyword-parameterized search results page into
// title and link pairs using the configured CSS selectors.
type SearchSource struct {
	keyword     string
	urlTemplate string
	selectors   config.Selectors
	timeout     time.Duration
	client      *http.Client
	userAgent   string
}

func NewSearchSource(source *config.Source, client *http.Client, userAgent string) *SearchSource {
	selectors := source.Selectors
	if selectors.Item == "" {
		selectors.Item = ".news_area"
	}
	if selectors.Title == "" {
		selectors.Title = ".news_tit"
	}
	if selectors.Link == "" {
		selectors.Link = ".news_tit"
	}

	return &SearchSource{
		keyword:     source.Keyword,
		urlTemplate: source.URL,
		selectors:   selectors,
		timeout:     source.Settings.GetTimeout(),
		client:      client,
		userAgent:   userAgent,
	}
}

func (s *SearchSource) Fetch(ctx context.Context, limit int) ([]Item, error) {
	if limit <= 0 {
		return nil, nil
	}

	searchURL := fmt.Sprintf(s.urlTemplate, url.QueryEscape(s.keyword))

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %q: %v", ErrSourceUnavailable, s.keyword, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSearchBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response for %q: %v", ErrSourceUnavailable, s.keyword, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: search for %q returned status %d body: %s",
			ErrSourceUnavailable, s.keyword, resp.StatusCode, responseSnippet(body))
	}

	reader, err := decodeCharset(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: decode response for %q: %v", ErrSourceUnavailable, s.keyword, err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: parse html for %q: %v", ErrSourceUnavailable, s.keyword, err)
	}

	items := make([]Item, 0, limit)
	doc.Find(s.selectors.Item).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		titleSel := sel.Find(s.selectors.Title).First()
		linkSel := sel.Find(s.selectors.Link).First()

		title := strings.TrimSpace(titleSel.AttrOr("title", ""))
		if title == "" {
			title = strings.TrimSpace(titleSel.Text())
		}
		link := strings.TrimSpace(linkSel.AttrOr("href", ""))

		if title == "" || link == "" {
			return true
		}

		items = append(items, Item{Title: title, Link: link})
		return len(items) < limit
	})

	return items, nil
}

// decodeCharset converts the body to UTF-8 based on the Content-Type
// charset parameter. Korean news portals still serve EUC-KR pages.
func decodeCharset(body []byte, contentType string) (io.Reader, error) {
	reader := io.Reader(strings.NewReader(string(body)))

	if contentType == "" {
		return reader, nil
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return reader, nil
	}

	charset := strings.ToLower(params["charset"])
	if charset == "" || charset == "utf-8" || charset == "utf8" {
		return reader, nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
	}

	return transform.NewReader(reader, enc.NewDecoder()), nil
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
