package connectivity

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/pricekeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakePinger struct {
	down  atomic.Bool
	calls atomic.Int32
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.calls.Add(1)
	if f.down.Load() {
		return errors.New("unreachable")
	}
	return nil
}

func edgeCount(m *Monitor) int {
	n := 0
	for {
		select {
		case <-m.Online():
			n++
		default:
			return n
		}
	}
}

func TestMonitor_StartsOffline(t *testing.T) {
	m := NewMonitor(&fakePinger{}, time.Second, logging.Discard())
	assert.False(t, m.IsOnline())
	assert.Equal(t, 0, edgeCount(m))
}

func TestProbe_EdgeOnlyOnTransition(t *testing.T) {
	p := &fakePinger{}
	m := NewMonitor(p, time.Second, logging.Discard())
	ctx := context.Background()

	require.True(t, m.Probe(ctx))
	assert.True(t, m.IsOnline())
	assert.Equal(t, 1, edgeCount(m))

	// steady online: no further edges
	require.True(t, m.Probe(ctx))
	require.True(t, m.Probe(ctx))
	assert.Equal(t, 0, edgeCount(m))

	p.down.Store(true)
	require.False(t, m.Probe(ctx))
	assert.False(t, m.IsOnline())
	assert.Equal(t, 0, edgeCount(m))

	p.down.Store(false)
	require.True(t, m.Probe(ctx))
	assert.Equal(t, 1, edgeCount(m))
}

func TestProbe_FlappingCoalescesUnreadEdges(t *testing.T) {
	p := &fakePinger{}
	m := NewMonitor(p, time.Second, logging.Discard())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p.down.Store(false)
		m.Probe(ctx)
		p.down.Store(true)
		m.Probe(ctx)
	}
	assert.Equal(t, 1, edgeCount(m))
}

func TestForceOffline_SkipsProbesUntilResume(t *testing.T) {
	p := &fakePinger{}
	m := NewMonitor(p, time.Second, logging.Discard())
	ctx := context.Background()

	require.True(t, m.Probe(ctx))
	edgeCount(m)

	m.ForceOffline()
	assert.False(t, m.IsOnline())
	assert.True(t, m.Forced())

	calls := p.calls.Load()
	assert.False(t, m.Probe(ctx))
	assert.Equal(t, calls, p.calls.Load(), "forced monitor must not ping")

	m.Resume()
	assert.False(t, m.IsOnline())
	require.True(t, m.Probe(ctx))
	assert.Equal(t, 1, edgeCount(m))
}

type slowPinger struct{}

func (slowPinger) Ping(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestProbe_TimeoutMeansOffline(t *testing.T) {
	m := NewMonitor(slowPinger{}, time.Second, logging.Discard(), WithProbeTimeout(20*time.Millisecond))
	start := time.Now()
	assert.False(t, m.Probe(context.Background()))
	assert.Less(t, time.Since(start), time.Second)
}

func TestRun_ProbesImmediatelyAndStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := &fakePinger{}
	m := NewMonitor(p, 10*time.Millisecond, logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	select {
	case <-m.Online():
	case <-time.After(time.Second):
		t.Fatal("expected online edge from initial probe")
	}

	require.Eventually(t, func() bool { return p.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_NonPositiveIntervalFallsBackToDefault(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewMonitor(&fakePinger{}, 0, logging.Discard())
	assert.Equal(t, DefaultInterval, m.interval)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	select {
	case <-m.Online():
	case <-time.After(time.Second):
		t.Fatal("expected online edge from initial probe")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}

	assert.Equal(t, DefaultInterval, NewMonitor(&fakePinger{}, -time.Second, logging.Discard()).interval)
}
