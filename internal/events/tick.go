package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/logger"
)

// TickOption configures the tick service.
type TickOption func(*TickService)

// WithClock replaces time.Now, for tests and replays.
func WithClock(now func() time.Time) TickOption {
	return func(s *TickService) {
		s.now = now
	}
}

// WithPollInterval sets how often the service samples the clock. Handlers
// still only run when a subscribed unit changes.
func WithPollInterval(d time.Duration) TickOption {
	return func(s *TickService) {
		s.interval = d
	}
}

// WithStrictHandles makes handle misuse panic instead of warn.
func WithStrictHandles(strict bool) TickOption {
	return func(s *TickService) {
		s.strict = strict
	}
}

type tickSub struct {
	unit    domain.TimeUnit
	handler domain.TickHandler
}

// Compile-time interface check.
var _ domain.TickSource = (*TickService)(nil)

// TickService samples the wall clock in the background and delivers tick
// events on the loop whenever a subscribed calendar unit changes.
type TickService struct {
	loop     *Loop
	log      *logger.Logger
	now      func() time.Time
	interval time.Duration
	strict   bool
	subs     *Registry[tickSub]

	// last is only touched on the loop goroutine.
	last time.Time
	fire func()

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// NewTickService creates a tick service posting to loop.
func NewTickService(loop *Loop, log *logger.Logger, opts ...TickOption) *TickService {
	s := &TickService{
		loop:     loop,
		log:      log,
		now:      time.Now,
		interval: time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.subs = NewRegistry[tickSub]("tick", s.strict, log)
	s.last = s.now()
	s.fire = func() { s.Fire(s.now()) }
	return s
}

// Subscribe registers handler for changes of unit or any coarser unit.
func (s *TickService) Subscribe(unit domain.TimeUnit, handler domain.TickHandler) (domain.Handle, error) {
	if unit == 0 || handler == nil {
		return 0, errors.New("tick: subscribe needs a unit and a handler")
	}
	return s.subs.Add(tickSub{unit: unit, handler: handler}), nil
}

// Unsubscribe cancels h, including any tick already queued on the loop.
func (s *TickService) Unsubscribe(h domain.Handle) error {
	return s.subs.Remove(h)
}

// Live returns the number of live tick subscriptions.
func (s *TickService) Live() int {
	return s.subs.Live()
}

// Start begins sampling the clock. Non-blocking.
func (s *TickService) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("tick service already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	go s.sample(childCtx)
	s.log.Info("tick service started (poll=%s)", s.interval)
}

// Stop halts sampling. Ticks already posted still run.
func (s *TickService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cancel()
	s.running = false
	s.log.Info("tick service stopped")
}

func (s *TickService) sample(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.loop.Post(s.fire)
		}
	}
}

// Fire delivers a tick for now to every subscriber whose unit changed
// since the previous tick. Must run on the loop goroutine.
func (s *TickService) Fire(now time.Time) {
	changed := ChangedUnits(s.last, now)
	s.last = now
	if changed == 0 {
		return
	}
	s.subs.Each(func(_ domain.Handle, sub tickSub) {
		if changed&atOrAbove(sub.unit) != 0 {
			sub.handler(now, changed)
		}
	})
}

// ChangedUnits reports which calendar fields differ between prev and now.
func ChangedUnits(prev, now time.Time) domain.TimeUnit {
	var u domain.TimeUnit
	if prev.Second() != now.Second() {
		u |= domain.SecondUnit
	}
	if prev.Minute() != now.Minute() {
		u |= domain.MinuteUnit
	}
	if prev.Hour() != now.Hour() {
		u |= domain.HourUnit
	}
	if prev.Day() != now.Day() {
		u |= domain.DayUnit
	}
	if prev.Month() != now.Month() {
		u |= domain.MonthUnit
	}
	if prev.Year() != now.Year() {
		u |= domain.YearUnit
	}
	return u
}

// atOrAbove returns the mask of unit's finest bit and every coarser bit.
func atOrAbove(unit domain.TimeUnit) domain.TimeUnit {
	lowest := unit & -unit
	return ^(lowest - 1)
}
