package connectivity

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/events"
	"github.com/hammamikhairi/tickface/internal/logger"
)

// DefaultInterval is how often the monitor polls its probe.
const DefaultInterval = 5 * time.Second

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithInterval sets the poll interval.
func WithInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithStrictHandles makes handle misuse panic instead of warn.
func WithStrictHandles(strict bool) MonitorOption {
	return func(m *Monitor) {
		m.strict = strict
	}
}

// Compile-time interface check.
var _ domain.ConnectionSource = (*Monitor)(nil)

// Monitor polls a Probe in the background and delivers transitions to its
// subscribers on the event loop. The initial state is not a transition.
type Monitor struct {
	loop     *events.Loop
	probe    Probe
	log      *logger.Logger
	interval time.Duration
	strict   bool
	subs     *events.Registry[domain.ConnectionHandler]

	mu        sync.Mutex
	connected bool
	known     bool
	running   bool
	cancel    context.CancelFunc
}

// NewMonitor creates a monitor. It assumes connected until the first poll.
func NewMonitor(loop *events.Loop, probe Probe, log *logger.Logger, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		loop:      loop,
		probe:     probe,
		log:       log,
		interval:  DefaultInterval,
		connected: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.subs = events.NewRegistry[domain.ConnectionHandler]("connection", m.strict, log)
	return m
}

// Subscribe registers handler for connectivity transitions.
func (m *Monitor) Subscribe(handler domain.ConnectionHandler) (domain.Handle, error) {
	if handler == nil {
		return 0, errors.New("connection: subscribe needs a handler")
	}
	return m.subs.Add(handler), nil
}

// Unsubscribe cancels h.
func (m *Monitor) Unsubscribe(h domain.Handle) error {
	return m.subs.Remove(h)
}

// Live returns the number of live subscriptions.
func (m *Monitor) Live() int {
	return m.subs.Live()
}

// Connected returns the last observed state.
func (m *Monitor) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Start polls once synchronously to learn the initial state, then keeps
// polling in the background. Non-blocking after the first poll.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		m.log.Warn("connection monitor already running")
		return
	}
	childCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.mu.Unlock()

	m.Poll(childCtx)
	go m.watch(childCtx)
	m.log.Info("connection monitor started (poll=%s, connected=%t)", m.interval, m.Connected())
}

// Stop halts polling.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.cancel()
	m.running = false
	m.log.Info("connection monitor stopped")
}

func (m *Monitor) watch(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Poll(ctx)
		}
	}
}

// Poll samples the probe once and posts a delivery to the loop if the state
// changed. Probe errors keep the previous state.
func (m *Monitor) Poll(ctx context.Context) {
	connected, err := m.probe.Connected(ctx)
	if err != nil {
		m.log.Warn("connection probe: %v", err)
		return
	}

	m.mu.Lock()
	first := !m.known
	changed := m.connected != connected
	m.known = true
	m.connected = connected
	m.mu.Unlock()

	if first || !changed {
		return
	}
	m.log.Debug("connection changed: connected=%t", connected)
	m.loop.Post(func() { m.deliver(connected) })
}

func (m *Monitor) deliver(connected bool) {
	m.subs.Each(func(_ domain.Handle, h domain.ConnectionHandler) {
		h(connected)
	})
}
