package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pricekeeper/internal/client/client"
	"github.com/dmitrijs2005/pricekeeper/internal/client/models"
	"github.com/dmitrijs2005/pricekeeper/internal/client/repositories/pending"
	"github.com/dmitrijs2005/pricekeeper/internal/logging"
)

type Outcome int

const (
	OutcomeAccepted Outcome = iota + 1
	OutcomeQueuedOffline
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeQueuedOffline:
		return "queued offline"
	default:
		return "unknown"
	}
}

// SubmitResult carries RemoteID for OutcomeAccepted and LocalID for
// OutcomeQueuedOffline.
type SubmitResult struct {
	Outcome  Outcome
	RemoteID string
	LocalID  string
}

type Submitter struct {
	client         client.Client
	queue          pending.Repository
	status         OnlineChecker
	requestTimeout time.Duration
	log            logging.Logger
}

func NewSubmitter(c client.Client, q pending.Repository, status OnlineChecker, requestTimeout time.Duration, log logging.Logger) *Submitter {
	return &Submitter{
		client:         c,
		queue:          q,
		status:         status,
		requestTimeout: requestTimeout,
		log:            log.With("module", "submit"),
	}
}

// Submit validates p and records it. Online, it is inserted remotely and a
// failure is returned as is, with nothing queued. Offline, it is appended to
// the pending queue for a later sync pass.
func (s *Submitter) Submit(ctx context.Context, p models.PriceEntryPayload) (SubmitResult, error) {
	if err := p.Validate(); err != nil {
		return SubmitResult{}, &SubmissionError{Err: fmt.Errorf("%w: %w", ErrInvalidPayload, err)}
	}

	if s.status.IsOnline() {
		return s.submitOnline(ctx, p)
	}
	return s.submitOffline(ctx, p)
}

func (s *Submitter) submitOnline(ctx context.Context, p models.PriceEntryPayload) (SubmitResult, error) {
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	id, err := s.client.Insert(ctx, models.RemoteFromPayload(p))
	if err != nil {
		s.log.Warn(ctx, "remote insert failed", "product", p.ProductRef, "error", err)
		return SubmitResult{}, &SubmissionError{Err: err}
	}

	s.log.Debug(ctx, "entry accepted", "remote_id", id)
	return SubmitResult{Outcome: OutcomeAccepted, RemoteID: id}, nil
}

func (s *Submitter) submitOffline(ctx context.Context, p models.PriceEntryPayload) (SubmitResult, error) {
	id, err := s.queue.Append(ctx, models.NewPendingPriceEntry(p))
	if err != nil {
		s.log.Error(ctx, "failed to queue entry", "product", p.ProductRef, "error", err)
		return SubmitResult{}, &SubmissionError{Err: err}
	}

	s.log.Info(ctx, "entry queued offline", "local_id", id)
	return SubmitResult{Outcome: OutcomeQueuedOffline, LocalID: id}, nil
}
