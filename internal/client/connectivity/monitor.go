// Package connectivity tracks whether the remote price store is reachable.
//
// A Monitor probes the store with Ping on a fixed interval. IsOnline reports
// the current state; Online delivers one signal for every offline to online
// transition so a consumer can start a sync pass right after reconnecting.
package connectivity

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/pricekeeper/internal/logging"
)

const (
	DefaultInterval     = 3 * time.Second
	DefaultProbeTimeout = 3 * time.Second
)

// Pinger is satisfied by client.Client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Monitor struct {
	pinger       Pinger
	interval     time.Duration
	probeTimeout time.Duration
	log          logging.Logger

	online atomic.Bool
	forced atomic.Bool
	edges  chan struct{}
}

type Option func(*Monitor)

func WithProbeTimeout(d time.Duration) Option {
	return func(m *Monitor) { m.probeTimeout = d }
}

// NewMonitor returns a monitor that starts offline. A non-positive interval
// is replaced by DefaultInterval.
func NewMonitor(p Pinger, interval time.Duration, log logging.Logger, opts ...Option) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	m := &Monitor{
		pinger:       p,
		interval:     interval,
		probeTimeout: DefaultProbeTimeout,
		log:          log.With("module", "connectivity"),
		edges:        make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Monitor) IsOnline() bool {
	return m.online.Load()
}

// Online is signalled once per offline to online transition. Signals
// coalesce while nobody is receiving.
func (m *Monitor) Online() <-chan struct{} {
	return m.edges
}

// Probe pings the store once and updates the state. It reports the new state.
func (m *Monitor) Probe(ctx context.Context) bool {
	if m.forced.Load() {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, m.probeTimeout)
	err := m.pinger.Ping(ctx)
	cancel()

	if err != nil {
		m.log.Debug(ctx, "ping failed", "error", err)
	}
	// ForceOffline may have been called while the ping was in flight.
	ok := err == nil && !m.forced.Load()
	m.set(ctx, ok)
	return ok
}

func (m *Monitor) set(ctx context.Context, online bool) {
	prev := m.online.Swap(online)
	switch {
	case !prev && online:
		m.log.Info(ctx, "switched to online mode")
		select {
		case m.edges <- struct{}{}:
		default:
		}
	case prev && !online:
		m.log.Info(ctx, "switched to offline mode")
	}
}

// ForceOffline keeps the monitor offline until Resume is called.
func (m *Monitor) ForceOffline() {
	m.forced.Store(true)
	m.set(context.Background(), false)
}

// Resume undoes ForceOffline. The state changes on the next probe.
func (m *Monitor) Resume() {
	m.forced.Store(false)
}

func (m *Monitor) Forced() bool {
	return m.forced.Load()
}

// Run probes immediately and then every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	m.Probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}
