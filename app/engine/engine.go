package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/yeonho-kim/newsdigest/app/database"
	"github.com/yeonho-kim/newsdigest/app/digest"
	"github.com/yeonho-kim/newsdigest/app/mailer"
	"github.com/yeonho-kim/newsdigest/app/news"
)

const AbortReasonStoreUnavailable = "subscriber store unavailable"

// DispatchEngine runs one complete aggregate-match-send cycle: fetch
// news for every configured keyword, load subscribers, compose one
// digest per matched subscriber and deliver each independently.
type DispatchEngine struct {
	provider    news.Provider
	subscribers database.SubscriberRepository
	composer    *digest.Composer
	sender      mailer.Sender
	workerCount int
}

func NewDispatchEngine(provider news.Provider, subscribers database.SubscriberRepository, composer *digest.Composer, sender mailer.Sender, workerCount int) *DispatchEngine {
	if workerCount < 1 {
		workerCount = 1
	}
	return &DispatchEngine{
		provider:    provider,
		subscribers: subscribers,
		composer:    composer,
		sender:      sender,
		workerCount: workerCount,
	}
}

// Run executes one dispatch cycle and always returns a report. A
// keyword whose source fails degrades to an empty section; only a
// subscriber store failure aborts the whole run.
func (e *DispatchEngine) Run(ctx context.Context, announcement string) *Report {
	report := &Report{StartedAt: time.Now()}
	defer func() {
		report.FinishedAt = time.Now()
	}()

	keywords := e.provider.Keywords()
	newsByKeyword := e.fetchAll(ctx, keywords)

	subscribers, err := e.subscribers.ListAll()
	if err != nil {
		slog.Error("Failed to load subscribers, aborting run", "error", err)
		report.AbortReason = AbortReasonStoreUnavailable
		return report
	}

	bundles := digest.Match(subscribers, keywords, newsByKeyword)
	report.Attempted = len(bundles)

	slog.Info("Dispatching digests",
		"subscribers", len(subscribers),
		"matched", len(bundles),
		"keywords", len(keywords))

	e.deliverAll(ctx, bundles, announcement, report)

	slog.Info("Dispatch run finished",
		"attempted", report.Attempted,
		"succeeded", report.Succeeded,
		"failed", len(report.Failures))

	return report
}

// fetchAll gathers news for every keyword concurrently. Failed keywords
// are logged and omitted so the rest of the run proceeds.
func (e *DispatchEngine) fetchAll(ctx context.Context, keywords []string) map[string][]news.Item {
	var mu sync.Mutex
	newsByKeyword := make(map[string][]news.Item, len(keywords))

	var wg sync.WaitGroup
	for _, keyword := range keywords {
		wg.Add(1)
		go func(keyword string) {
			defer wg.Done()

			items, err := e.provider.Fetch(ctx, keyword)
			if err != nil {
				if errors.Is(err, news.ErrSourceUnavailable) {
					slog.Warn("News source unavailable, skipping keyword", "keyword", keyword, "error", err)
				} else {
					slog.Warn("Failed to fetch news", "keyword", keyword, "error", err)
				}
				return
			}
			if len(items) == 0 {
				slog.Info("No news found for keyword", "keyword", keyword)
				return
			}

			mu.Lock()
			newsByKeyword[keyword] = items
			mu.Unlock()
		}(keyword)
	}
	wg.Wait()

	return newsByKeyword
}

// deliverAll sends composed digests through a bounded worker pool. Each
// recipient's failure is recorded and never affects the others.
func (e *DispatchEngine) deliverAll(ctx context.Context, bundles []digest.Bundle, announcement string, report *Report) {
	var mu sync.Mutex
	queue := make(chan digest.Bundle)

	var wg sync.WaitGroup
	for i := 0; i < e.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for bundle := range queue {
				content := e.composer.Run(bundle, announcement)

				err := e.sender.Send(ctx, bundle.Subscriber.Email, content)
				mu.Lock()
				if err != nil {
					report.Failures = append(report.Failures, Failure{
						Email:  bundle.Subscriber.Email,
						Reason: failureReason(err),
					})
					mu.Unlock()
					slog.Warn("Failed to send digest", "email", bundle.Subscriber.Email, "error", err)
					continue
				}
				report.Succeeded++
				mu.Unlock()
				slog.Debug("Digest sent", "email", bundle.Subscriber.Email)
			}
		}()
	}

	for _, bundle := range bundles {
		queue <- bundle
	}
	close(queue)
	wg.Wait()
}

func failureReason(err error) string {
	var sendErr *mailer.SendError
	if errors.As(err, &sendErr) {
		return string(sendErr.Reason)
	}
	return string(mailer.ReasonTransport)
}
