package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/pricekeeper/internal/logging"
)

const DefaultSyncInterval = 5 * time.Minute

// Trigger is satisfied by *connectivity.Monitor.
type Trigger interface {
	OnlineChecker
	Online() <-chan struct{}
}

// Passer is satisfied by *SyncEngine.
type Passer interface {
	TryPass(ctx context.Context) (SyncReport, bool, error)
}

// Scheduler starts sync passes when connectivity returns and on a fixed
// interval while online.
type Scheduler struct {
	engine   Passer
	trigger  Trigger
	interval time.Duration
	log      logging.Logger

	wg sync.WaitGroup
}

// NewScheduler falls back to DefaultSyncInterval for a non-positive interval.
func NewScheduler(engine Passer, trigger Trigger, interval time.Duration, log logging.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	return &Scheduler{
		engine:   engine,
		trigger:  trigger,
		interval: interval,
		log:      log.With("module", "scheduler"),
	}
}

// Run blocks until ctx is done and every pass it started has returned.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.trigger.Online():
			s.start(ctx, "reconnect")
		case <-ticker.C:
			if s.trigger.IsOnline() {
				s.start(ctx, "interval")
			}
		case <-ctx.Done():
			s.wg.Wait()
			return
		}
	}
}

// start runs the pass in its own goroutine so a slow remote never blocks
// the trigger loop.
func (s *Scheduler) start(ctx context.Context, reason string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		report, ran, err := s.engine.TryPass(ctx)
		if !ran {
			s.log.Debug(ctx, "sync pass already running, trigger skipped", "reason", reason)
			return
		}
		if err != nil {
			s.log.Warn(ctx, "sync pass aborted", "reason", reason, "error", err)
			return
		}
		if report.Attempted > 0 {
			s.log.Debug(ctx, "sync pass triggered", "reason", reason, "synced", report.Synced)
		}
	}()
}
