package settings

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/events"
	"github.com/hammamikhairi/tickface/internal/logger"
)

// Option configures a Service.
type Option func(*Service)

// WithMessages sets the source of inbound JSON-lines messages.
func WithMessages(r io.Reader) Option {
	return func(s *Service) {
		s.messages = r
	}
}

// WithDefaults sets the snapshot used when the store is empty.
func WithDefaults(d domain.Settings) Option {
	return func(s *Service) {
		s.defaults = d
	}
}

// WithStrictHandles makes handle misuse panic instead of warn.
func WithStrictHandles(strict bool) Option {
	return func(s *Service) {
		s.strict = strict
	}
}

// Compile-time interface check.
var _ domain.SettingsService = (*Service)(nil)

// Service holds the current settings, persists them through a Store and
// notifies subscribers on the event loop when they change.
type Service struct {
	store    Store
	loop     *events.Loop
	log      *logger.Logger
	messages io.Reader
	defaults domain.Settings
	strict   bool
	subs     *events.Registry[domain.SettingsHandler]

	mu      sync.RWMutex
	current domain.Settings
	ready   bool
	cancel  context.CancelFunc
}

// NewService creates a service. Nothing is loaded until Init.
func NewService(store Store, loop *events.Loop, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		loop:     loop,
		log:      log,
		defaults: domain.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.subs = events.NewRegistry[domain.SettingsHandler]("settings", s.strict, log)
	s.current = s.defaults
	return s
}

// Init loads the persisted snapshot. An empty store yields the defaults.
func (s *Service) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return fmt.Errorf("settings: init twice: %w", domain.ErrAlreadyLoaded)
	}
	loaded, err := s.store.Load(context.Background())
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.log.Info("no saved settings, using defaults")
		loaded = s.defaults
	case err != nil:
		return fmt.Errorf("settings: load: %w", err)
	}
	s.current = loaded
	s.ready = true
	s.log.Info("settings loaded: %s", describe(loaded))
	return nil
}

// Deinit closes the message channel and persists the current snapshot.
func (s *Service) Deinit() error {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return fmt.Errorf("settings: deinit: %w", domain.ErrNotStarted)
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.ready = false
	current := s.current
	s.mu.Unlock()

	if err := s.store.Save(context.Background(), current); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	if live := s.subs.Live(); live != 0 {
		s.log.Warn("settings deinit with %d live subscriptions", live)
	}
	s.log.Info("settings deinitialized")
	return nil
}

// SubscribeOnChange registers handler for settings changes. Handlers run
// on the event loop.
func (s *Service) SubscribeOnChange(handler domain.SettingsHandler) (domain.Handle, error) {
	if handler == nil {
		return 0, errors.New("settings: subscribe needs a handler")
	}
	return s.subs.Add(handler), nil
}

// Unsubscribe cancels h, including a notification already queued.
func (s *Service) Unsubscribe(h domain.Handle) error {
	return s.subs.Remove(h)
}

// Live returns the number of live subscriptions.
func (s *Service) Live() int {
	return s.subs.Live()
}

// OpenMessageChannel starts reading inbound messages. Each line is applied
// on the event loop. Without a message source this is a no-op.
func (s *Service) OpenMessageChannel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return fmt.Errorf("settings: open message channel: %w", domain.ErrNotStarted)
	}
	if s.messages == nil {
		s.log.Debug("no inbound message source configured")
		return nil
	}
	if s.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.read(ctx, s.messages)
	s.log.Info("inbound message channel open")
	return nil
}

func (s *Service) read(ctx context.Context, r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := append([]byte(nil), scanner.Bytes()...)
		if len(line) == 0 {
			continue
		}
		s.Inject(line)
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		s.log.Warn("inbound message channel: %v", err)
	}
	s.log.Debug("inbound message channel closed")
}

// Inject queues one raw JSON message for application on the loop.
func (s *Service) Inject(line []byte) {
	s.loop.Post(func() {
		if err := s.HandleMessage(line); err != nil {
			s.log.Warn("inbound message rejected: %v", err)
		}
	})
}

// HandleMessage decodes and applies one message. Must run on the loop.
func (s *Service) HandleMessage(line []byte) error {
	msg, err := DecodeMessage(line)
	if err != nil {
		return err
	}
	next, changed, err := ApplyMessage(s.Snapshot(), msg)
	if err != nil {
		return err
	}
	if !changed {
		s.log.Debug("inbound message changed nothing")
		return nil
	}
	return s.Set(next)
}

// Set replaces the snapshot, persists it and notifies subscribers. Must
// run on the loop.
func (s *Service) Set(next domain.Settings) error {
	s.mu.Lock()
	if s.current == next {
		s.mu.Unlock()
		return nil
	}
	s.current = next
	s.mu.Unlock()

	s.log.Info("settings changed: %s", describe(next))
	var err error
	if saveErr := s.store.Save(context.Background(), next); saveErr != nil {
		err = fmt.Errorf("settings: save: %w", saveErr)
		s.log.Error("%v", err)
	}
	s.subs.Each(func(_ domain.Handle, h domain.SettingsHandler) {
		h(next)
	})
	return err
}

// Snapshot returns the current settings.
func (s *Service) Snapshot() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Service) HourlyVibe() bool                 { return s.Snapshot().HourlyVibe }
func (s *Service) ConnectionVibe() domain.VibeState { return s.Snapshot().ConnectionVibe }
func (s *Service) HealthVibe() bool                 { return s.Snapshot().HealthVibe }
func (s *Service) BackgroundColor() domain.Color    { return s.Snapshot().Background }
func (s *Service) Invert() bool                     { return s.Snapshot().Invert }
func (s *Service) TimeFormat() domain.TimeFormat    { return s.Snapshot().TimeFormat }

func describe(s domain.Settings) string {
	return fmt.Sprintf("hourly=%t connection=%s health=%t bg=%s invert=%t format=%s",
		s.HourlyVibe, s.ConnectionVibe, s.HealthVibe, s.Background, s.Invert, s.TimeFormat)
}
