package connectivity

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/events"
	"github.com/hammamikhairi/tickface/internal/logger"
)

// mockProbe returns a scripted answer.
type mockProbe struct {
	mu        sync.Mutex
	connected bool
	err       error
}

func (p *mockProbe) Connected(context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected, p.err
}

func (p *mockProbe) set(connected bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connected, p.err = connected, err
}

func TestMonitorDeliversTransitionsOnly(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	loop := events.NewLoop(log)
	probe := &mockProbe{connected: false}
	m := NewMonitor(loop, probe, log)

	var got []bool
	if _, err := m.Subscribe(func(c bool) { got = append(got, c) }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	ctx := context.Background()
	m.Poll(ctx) // initial state, not a transition
	loop.RunPending()
	if len(got) != 0 {
		t.Fatalf("initial state delivered: %v", got)
	}
	if m.Connected() {
		t.Fatal("expected disconnected after first poll")
	}

	m.Poll(ctx)
	probe.set(true, nil)
	m.Poll(ctx)
	m.Poll(ctx)
	probe.set(false, nil)
	m.Poll(ctx)
	loop.RunPending()

	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Fatalf("expected [true false], got %v", got)
	}
}

func TestMonitorProbeErrorKeepsState(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	loop := events.NewLoop(log)
	probe := &mockProbe{connected: true}
	m := NewMonitor(loop, probe, log)

	ctx := context.Background()
	m.Poll(ctx)
	probe.set(false, errors.New("boom"))
	m.Poll(ctx)

	if !m.Connected() {
		t.Fatal("probe error should keep the previous state")
	}
	if loop.Pending() != 0 {
		t.Fatal("probe error should not post a delivery")
	}
}

func TestMonitorUnsubscribeBeforeDelivery(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	loop := events.NewLoop(log)
	probe := &mockProbe{connected: true}
	m := NewMonitor(loop, probe, log)

	calls := 0
	h, _ := m.Subscribe(func(bool) { calls++ })

	ctx := context.Background()
	m.Poll(ctx)
	probe.set(false, nil)
	m.Poll(ctx)

	if err := m.Unsubscribe(h); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	loop.RunPending()
	if calls != 0 {
		t.Fatal("handler ran after unsubscribe")
	}
	if m.Live() != 0 {
		t.Fatalf("expected no live subscriptions, got %d", m.Live())
	}
	if err := m.Unsubscribe(h); !errors.Is(err, domain.ErrStaleHandle) {
		t.Fatalf("expected ErrStaleHandle, got %v", err)
	}
}

func TestStaticProbe(t *testing.T) {
	ok, err := StaticProbe(true).Connected(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected (true, nil), got (%t, %v)", ok, err)
	}
}
