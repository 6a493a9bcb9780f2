package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/pricekeeper/internal/client/client"
	"github.com/dmitrijs2005/pricekeeper/internal/client/models"
	"github.com/dmitrijs2005/pricekeeper/internal/client/repositories/pending"
	"github.com/dmitrijs2005/pricekeeper/internal/logging"
)

// OnlineChecker is satisfied by *connectivity.Monitor.
type OnlineChecker interface {
	IsOnline() bool
}

type SyncReport struct {
	Attempted int
	Synced    int
	Failed    int
}

// SyncEngine pushes queued entries to the remote store.
type SyncEngine struct {
	client         client.Client
	queue          pending.Repository
	status         OnlineChecker
	requestTimeout time.Duration
	log            logging.Logger

	running atomic.Bool
}

func NewSyncEngine(c client.Client, q pending.Repository, status OnlineChecker, requestTimeout time.Duration, log logging.Logger) *SyncEngine {
	return &SyncEngine{
		client:         c,
		queue:          q,
		status:         status,
		requestTimeout: requestTimeout,
		log:            log.With("module", "sync"),
	}
}

// Pass sends every unsynced entry once, in queue order. A failed entry is
// logged and left for the next pass; only a queue read failure or ctx
// cancellation ends the pass with an error.
//
// Pass does not guard against a concurrent pass. Two overlapping passes can
// insert the same entry twice; use TryPass from triggers.
func (s *SyncEngine) Pass(ctx context.Context) (SyncReport, error) {
	var report SyncReport

	if !s.status.IsOnline() {
		return report, nil
	}

	entries, err := s.queue.ListUnsynced(ctx)
	if err != nil {
		return report, err
	}
	if len(entries) == 0 {
		return report, nil
	}

	s.log.Info(ctx, "sync pass started", "pending", len(entries))

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Attempted++

		remoteID, err := s.insert(ctx, e.Remote())
		if err != nil {
			report.Failed++
			s.log.Warn(ctx, "entry not synced, will retry", "local_id", e.LocalID, "error", err)
			continue
		}

		if err := s.queue.MarkSynced(ctx, e.LocalID); err != nil {
			report.Failed++
			s.log.Error(ctx, "entry accepted remotely but not marked synced; it will be sent again",
				"local_id", e.LocalID, "remote_id", remoteID, "error", err)
			continue
		}
		report.Synced++
	}

	s.log.Info(ctx, "sync pass finished",
		"attempted", report.Attempted, "synced", report.Synced, "failed", report.Failed)

	return report, nil
}

func (s *SyncEngine) insert(ctx context.Context, e models.RemotePriceEntry) (string, error) {
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}
	return s.client.Insert(ctx, e)
}

// TryPass runs Pass unless another TryPass is in progress, in which case it
// returns ran=false without doing anything.
func (s *SyncEngine) TryPass(ctx context.Context) (report SyncReport, ran bool, err error) {
	if !s.running.CompareAndSwap(false, true) {
		return SyncReport{}, false, nil
	}
	defer s.running.Store(false)

	report, err = s.Pass(ctx)
	return report, true, err
}

func (s *SyncEngine) Running() bool {
	return s.running.Load()
}
