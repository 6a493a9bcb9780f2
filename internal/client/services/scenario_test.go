package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/pricekeeper/internal/client/client"
	"github.com/dmitrijs2005/pricekeeper/internal/client/connectivity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type switchPinger struct{ up atomic.Bool }

func (p *switchPinger) Ping(context.Context) error {
	if p.up.Load() {
		return nil
	}
	return client.ErrUnavailable
}

// Entries recorded offline reach the store after reconnecting.
func TestScenario_OfflineCaptureThenReconnect(t *testing.T) {
	ctx := context.Background()
	q := setupQueue(t)
	fc := &fakeClient{}
	pinger := &switchPinger{}
	mon := connectivity.NewMonitor(pinger, time.Hour, quietLog())
	submitter := NewSubmitter(fc, q, mon, time.Second, quietLog())
	engine := NewSyncEngine(fc, q, mon, time.Second, quietLog())

	require.False(t, mon.Probe(ctx))

	for _, p := range []string{"eggs", "flour"} {
		res, err := submitter.Submit(ctx, payload(p))
		require.NoError(t, err)
		require.Equal(t, OutcomeQueuedOffline, res.Outcome)
	}
	assert.Equal(t, 0, fc.insertCount())

	pinger.up.Store(true)
	require.True(t, mon.Probe(ctx))
	select {
	case <-mon.Online():
	default:
		t.Fatal("expected reconnect signal")
	}

	report, ran, err := engine.TryPass(ctx)
	require.NoError(t, err)
	require.True(t, ran)
	assert.Equal(t, SyncReport{Attempted: 2, Synced: 2}, report)
	assert.Equal(t, []string{"eggs", "flour"}, fc.insertedProducts())
	assert.Empty(t, unsyncedProducts(t, q))

	// Back online, new entries skip the queue.
	res, err := submitter.Submit(ctx, payload("sugar"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeAccepted, res.Outcome)
	assert.Empty(t, unsyncedProducts(t, q))
}

// A partial failure leaves only the failed entry queued, and the next pass
// delivers it without resending the others.
func TestScenario_PartialFailureThenRetry(t *testing.T) {
	ctx := context.Background()
	q := setupQueue(t)
	enqueue(t, q, "a", "b", "c")
	fc := &fakeClient{}
	fc.setFail("b", &client.RemoteWriteError{Err: errors.New("rpc error: internal")})
	pinger := &switchPinger{}
	pinger.up.Store(true)
	mon := connectivity.NewMonitor(pinger, time.Hour, quietLog())
	require.True(t, mon.Probe(ctx))
	engine := NewSyncEngine(fc, q, mon, time.Second, quietLog())

	report, err := engine.Pass(ctx)
	require.NoError(t, err)
	assert.Equal(t, SyncReport{Attempted: 3, Synced: 2, Failed: 1}, report)
	assert.Equal(t, []string{"b"}, unsyncedProducts(t, q))

	fc.setFail("b", nil)
	report, err = engine.Pass(ctx)
	require.NoError(t, err)
	assert.Equal(t, SyncReport{Attempted: 1, Synced: 1}, report)
	assert.Equal(t, []string{"a", "c", "b"}, fc.insertedProducts())
}

// Going offline again stops further passes; queued entries wait.
func TestScenario_ForcedOfflineHoldsQueue(t *testing.T) {
	ctx := context.Background()
	q := setupQueue(t)
	enqueue(t, q, "a")
	fc := &fakeClient{}
	pinger := &switchPinger{}
	pinger.up.Store(true)
	mon := connectivity.NewMonitor(pinger, time.Hour, quietLog())
	require.True(t, mon.Probe(ctx))
	engine := NewSyncEngine(fc, q, mon, time.Second, quietLog())

	mon.ForceOffline()
	report, err := engine.Pass(ctx)
	require.NoError(t, err)
	assert.Equal(t, SyncReport{}, report)
	assert.Equal(t, []string{"a"}, unsyncedProducts(t, q))

	mon.Resume()
	require.True(t, mon.Probe(ctx))
	_, err = engine.Pass(ctx)
	require.NoError(t, err)
	assert.Empty(t, unsyncedProducts(t, q))
}
