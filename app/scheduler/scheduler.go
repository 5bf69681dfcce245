package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yeonho-kim/newsdigest/app/database"
	"github.com/yeonho-kim/newsdigest/app/engine"
)

// ErrRunInProgress is returned when a trigger arrives while a dispatch
// run is still executing. Overlapping triggers are dropped, never
// queued.
var ErrRunInProgress = errors.New("dispatch run already in progress")

// DispatchRunner executes one dispatch cycle.
type DispatchRunner interface {
	Run(ctx context.Context, announcement string) *engine.Report
}

// Scheduler fires one dispatch run per day at the configured local
// wall-clock time and accepts manual triggers in between. At most one
// run executes at a time.
type Scheduler struct {
	runner        DispatchRunner
	announcements database.AnnouncementRepository
	sendAt        string

	running    atomic.Bool
	mu         sync.Mutex
	lastReport *engine.Report

	stop chan struct{}
	done chan struct{}
}

func NewScheduler(runner DispatchRunner, announcements database.AnnouncementRepository, sendAt string) *Scheduler {
	return &Scheduler{
		runner:        runner,
		announcements: announcements,
		sendAt:        sendAt,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	slog.Info("Scheduler started", "send_at", s.sendAt)
	go s.loop()
}

// Stop terminates the daily timer. A run already executing is not
// interrupted.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) loop() {
	defer close(s.done)

	for {
		wait := nextRunIn(time.Now(), s.sendAt)
		slog.Debug("Next scheduled dispatch", "in", wait.Round(time.Second))

		timer := time.NewTimer(wait)
		select {
		case <-s.stop:
			timer.Stop()
			return
		case <-timer.C:
			s.runScheduled()
		}
	}
}

func (s *Scheduler) runScheduled() {
	announcement := ""
	if stored, err := s.announcements.Get(); err != nil {
		slog.Warn("Failed to load announcement, sending without one", "error", err)
	} else {
		announcement = stored.Message
	}

	if _, err := s.run(context.Background(), announcement); err != nil {
		slog.Warn("Skipping scheduled dispatch", "error", err)
	}
}

// TriggerNow starts a dispatch run immediately. An empty announcement
// falls back to the stored one. Returns ErrRunInProgress when a run is
// already executing.
func (s *Scheduler) TriggerNow(ctx context.Context, announcement string) (*engine.Report, error) {
	if announcement == "" {
		if stored, err := s.announcements.Get(); err == nil {
			announcement = stored.Message
		}
	}
	return s.run(ctx, announcement)
}

func (s *Scheduler) run(ctx context.Context, announcement string) (*engine.Report, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer s.running.Store(false)

	report := s.runner.Run(ctx, announcement)

	s.mu.Lock()
	s.lastReport = report
	s.mu.Unlock()

	return report, nil
}

// LastReport returns the report of the most recently completed run, or
// nil when no run has completed yet.
func (s *Scheduler) LastReport() *engine.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReport
}

// nextRunIn computes the wait until the next occurrence of sendAt
// (HH:MM) in now's location. A malformed sendAt falls back to 11:00;
// the config loader rejects it earlier.
func nextRunIn(now time.Time, sendAt string) time.Duration {
	at, err := time.Parse("15:04", sendAt)
	if err != nil {
		at, _ = time.Parse("15:04", "11:00")
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}

	return next.Sub(now)
}
