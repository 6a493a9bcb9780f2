package services

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/pricekeeper/internal/client/client"
	"github.com/dmitrijs2005/pricekeeper/internal/client/models"
	"github.com/dmitrijs2005/pricekeeper/internal/client/repositories/pending"
	"github.com/dmitrijs2005/pricekeeper/internal/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupQueue(t *testing.T) *pending.SQLiteRepository {
	t.Helper()
	db, err := client.OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return pending.NewSQLiteRepository(db)
}

func payload(product string) models.PriceEntryPayload {
	return models.PriceEntryPayload{
		OwnerID:     "owner-1",
		ProductRef:  product,
		SupplierRef: "supplier-1",
		Price:       decimal.RequireFromString("4.20"),
		Quantity:    decimal.NewFromInt(1),
		Notes:       "note " + product,
		EntryDate:   time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	}
}

func enqueue(t *testing.T, q pending.Repository, products ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(products))
	for _, p := range products {
		id, err := q.Append(context.Background(), models.NewPendingPriceEntry(payload(p)))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func unsyncedProducts(t *testing.T, q pending.Repository) []string {
	t.Helper()
	list, err := q.ListUnsynced(context.Background())
	require.NoError(t, err)
	out := []string{}
	for _, e := range list {
		out = append(out, e.ProductRef)
	}
	return out
}

type staticStatus struct{ online atomic.Bool }

func newStatus(online bool) *staticStatus {
	s := &staticStatus{}
	s.online.Store(online)
	return s
}

func (s *staticStatus) IsOnline() bool { return s.online.Load() }

// ---- fake client ----

type fakeClient struct {
	mu       sync.Mutex
	inserted []models.RemotePriceEntry
	fail     map[string]error // by ProductRef

	// gate, when set, blocks every Insert until it is closed.
	gate    chan struct{}
	entered atomic.Int32

	pingErr error
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeClient) Insert(ctx context.Context, e models.RemotePriceEntry) (string, error) {
	f.entered.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", &client.RemoteWriteError{Err: client.ErrUnavailable}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fail[e.ProductRef]; ok {
		return "", err
	}
	f.inserted = append(f.inserted, e)
	return uuid.NewString(), nil
}

func (f *fakeClient) setFail(product string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail == nil {
		f.fail = map[string]error{}
	}
	if err == nil {
		delete(f.fail, product)
		return
	}
	f.fail[product] = err
}

func (f *fakeClient) insertedProducts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []string{}
	for _, e := range f.inserted {
		out = append(out, e.ProductRef)
	}
	return out
}

func (f *fakeClient) insertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserted)
}

// failingMark wraps a real queue and fails every MarkSynced.
type failingMark struct {
	pending.Repository
	err error
}

func (f failingMark) MarkSynced(ctx context.Context, localID string) error { return f.err }

func quietLog() logging.Logger { return logging.Discard() }
