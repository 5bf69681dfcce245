package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/yeonho-kim/newsdigest/app/config"
)

const searchResultHTML = `<!DOCTYPE html>
<html><body>
<div class="news_area">
  <a class="news_tit" title="AI breakthrough announced" href="https://news.example.com/a1">AI breakthrough announced</a>
</div>
<div class="news_area">
  <a class="news_tit" title="New AI chip released" href="https://news.example.com/a2">New AI chip released</a>
</div>
<div class="news_area">
  <a class="news_tit" title="AI regulation debate" href="https://news.example.com/a3">AI regulation debate</a>
</div>
</body></html>`

func searchConfig(url string) *config.Source {
	return &config.Source{
		Keyword:  "AI",
		Type:     config.SourceTypeSearch,
		URL:      url + "/search?query=%s",
		Settings: config.SourceSettings{Enabled: true, Limit: 5, Timeout: 5},
	}
}

func TestSearchSource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "AI" {
			t.Errorf("Expected query 'AI', got '%s'", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(searchResultHTML))
	}))
	defer server.Close()

	source := NewSearchSource(searchConfig(server.URL), server.Client(), "test-agent")

	items, err := source.Fetch(context.Background(), 5)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if items[0].Title != "AI breakthrough announced" {
		t.Errorf("Unexpected first title: %s", items[0].Title)
	}
	if items[0].Link != "https://news.example.com/a1" {
		t.Errorf("Unexpected first link: %s", items[0].Link)
	}
}

func TestSearchSource_Fetch_RespectsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(searchResultHTML))
	}))
	defer server.Close()

	source := NewSearchSource(searchConfig(server.URL), server.Client(), "test-agent")

	items, err := source.Fetch(context.Background(), 2)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("Expected limit of 2 items, got %d", len(items))
	}
}

func TestSearchSource_Fetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	source := NewSearchSource(searchConfig(server.URL), server.Client(), "test-agent")

	_, err := source.Fetch(context.Background(), 5)
	if err == nil {
		t.Fatal("Expected error for 503 response")
	}
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Expected ErrSourceUnavailable, got %v", err)
	}
}

func TestSearchSource_Fetch_Unreachable(t *testing.T) {
	source := NewSearchSource(searchConfig("http://127.0.0.1:1"), DefaultHTTPClient(), "test-agent")

	_, err := source.Fetch(context.Background(), 5)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Expected ErrSourceUnavailable for unreachable host, got %v", err)
	}
}

func TestSearchSource_Fetch_DecodesEUCKR(t *testing.T) {
	// "인공지능" (artificial intelligence) served as EUC-KR
	title := "인공지능 뉴스"
	page := `<html><body><div class="news_area"><a class="news_tit" title="` + title +
		`" href="https://news.example.com/kr">` + title + `</a></div></body></html>`

	enc, err := htmlindex.Get("euc-kr")
	if err != nil {
		t.Fatalf("Failed to get euc-kr encoding: %v", err)
	}
	encoded, err := enc.NewEncoder().String(page)
	if err != nil {
		t.Fatalf("Failed to encode page: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=euc-kr")
		w.Write([]byte(encoded))
	}))
	defer server.Close()

	source := NewSearchSource(searchConfig(server.URL), server.Client(), "test-agent")

	items, err := source.Fetch(context.Background(), 5)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].Title != title {
		t.Errorf("Expected decoded title %q, got %q", title, items[0].Title)
	}
}

func TestSearchSource_Fetch_SkipsIncompleteEntries(t *testing.T) {
	page := `<html><body>
<div class="news_area"><a class="news_tit" href="https://news.example.com/no-title"></a></div>
<div class="news_area"><a class="news_tit" title="No link here">No link here</a></div>
<div class="news_area"><a class="news_tit" title="Complete" href="https://news.example.com/ok">Complete</a></div>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer server.Close()

	source := NewSearchSource(searchConfig(server.URL), server.Client(), "test-agent")

	items, err := source.Fetch(context.Background(), 5)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 complete item, got %d", len(items))
	}
	if items[0].Link != "https://news.example.com/ok" {
		t.Errorf("Unexpected item: %+v", items[0])
	}
}
