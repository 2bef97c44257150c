// Package app sequences the face's collaborators: it brings them up in
// dependency order, shows the window, runs the event loop, and tears
// everything down in exactly the reverse order.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/hammamikhairi/tickface/internal/clock"
	"github.com/hammamikhairi/tickface/internal/display"
	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/events"
	"github.com/hammamikhairi/tickface/internal/feedback"
	"github.com/hammamikhairi/tickface/internal/logger"
	"github.com/hammamikhairi/tickface/internal/watchface"
)

// Service is a background producer that posts to the loop.
type Service interface {
	Start(ctx context.Context)
	Stop()
}

// Options are the collaborators the app sequences. Settings, Connection
// and Hourly are initialized by the app; the rest must be ready to use.
type Options struct {
	Loop       *events.Loop
	Settings   domain.SettingsService
	Connection domain.Trigger
	Hourly     domain.Trigger
	Layout     domain.LayoutEngine
	Ticks      domain.TickSource
	Formatter  clock.Formatter
	Stack      *display.Stack
	Pattern    domain.Pattern
	Caps       domain.Capabilities
	Strict     bool

	// Services are started after Init and stopped before Deinit.
	Services []Service

	// OnFrame receives a freshly rendered frame after each dispatch.
	OnFrame func(frame string)

	Log *logger.Logger
}

// App owns the production display controller and its window.
type App struct {
	opts        Options
	log         *logger.Logger
	coordinator *feedback.Coordinator
	controller  *watchface.Controller
	window      *display.Window
	initialized bool
}

// New creates an app. Nothing is initialized until Init.
func New(opts Options) *App {
	if opts.Pattern == nil {
		opts.Pattern = feedback.DefaultPattern()
	}
	return &App{opts: opts, log: opts.Log}
}

// Init brings collaborators up in order: settings, connection feedback,
// hourly feedback, the pattern template, the inbound message channel, and
// finally the window. On failure everything already up is torn down and
// no window is shown.
func (a *App) Init() (err error) {
	if a.initialized {
		return fmt.Errorf("app: init: %w", domain.ErrAlreadyLoaded)
	}

	var undo []func() error
	defer func() {
		if err == nil {
			return
		}
		for i := len(undo) - 1; i >= 0; i-- {
			if uerr := undo[i](); uerr != nil {
				a.log.Warn("app: unwind: %v", uerr)
			}
		}
	}()

	if err := a.opts.Settings.Init(); err != nil {
		return fmt.Errorf("app: settings: %w", err)
	}
	undo = append(undo, a.opts.Settings.Deinit)

	if err := a.opts.Connection.Init(); err != nil {
		return fmt.Errorf("app: connection feedback: %w", err)
	}
	undo = append(undo, a.opts.Connection.Deinit)

	if err := a.opts.Hourly.Init(); err != nil {
		return fmt.Errorf("app: hourly feedback: %w", err)
	}
	undo = append(undo, a.opts.Hourly.Deinit)

	a.coordinator = feedback.NewCoordinator(a.opts.Hourly, a.opts.Connection, a.opts.Pattern, a.opts.Caps, a.log.Named("feedback"))

	if err := a.opts.Settings.OpenMessageChannel(); err != nil {
		return fmt.Errorf("app: message channel: %w", err)
	}

	a.controller = watchface.NewController(watchface.Deps{
		Layout:    a.opts.Layout,
		Ticks:     a.opts.Ticks,
		Settings:  a.opts.Settings,
		Feedback:  a.coordinator,
		Formatter: a.opts.Formatter,
		Caps:      a.opts.Caps,
		Strict:    a.opts.Strict,
		Log:       a.log.Named("watchface"),
	})
	a.window = display.NewWindow("face", a.controller, a.log)
	if err := a.opts.Stack.Push(a.window); err != nil {
		a.window = nil
		return fmt.Errorf("app: %w", err)
	}

	a.initialized = true
	a.log.Info("app initialized")
	return nil
}

// Deinit tears down in reverse: window, hourly feedback, connection
// feedback, settings. Every step runs even if an earlier one fails.
func (a *App) Deinit() error {
	if !a.initialized {
		return fmt.Errorf("app: deinit: %w", domain.ErrNotStarted)
	}
	a.initialized = false

	a.opts.Stack.Destroy(a.window)
	a.window = nil

	var errs []error
	if err := a.opts.Hourly.Deinit(); err != nil {
		errs = append(errs, fmt.Errorf("hourly feedback: %w", err))
	}
	if err := a.opts.Connection.Deinit(); err != nil {
		errs = append(errs, fmt.Errorf("connection feedback: %w", err))
	}
	if err := a.opts.Settings.Deinit(); err != nil {
		errs = append(errs, fmt.Errorf("settings: %w", err))
	}
	a.log.Info("app deinitialized")
	return errors.Join(errs...)
}

// Run initializes, runs the loop until ctx is cancelled, then deinitializes.
// Everything happens on the calling goroutine.
func (a *App) Run(ctx context.Context) error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Publish()

	for _, s := range a.opts.Services {
		s.Start(ctx)
	}

	err := a.opts.Loop.Run(ctx)

	for i := len(a.opts.Services) - 1; i >= 0; i-- {
		a.opts.Services[i].Stop()
	}
	// Drain events posted before the services stopped.
	a.opts.Loop.RunPending()

	if derr := a.Deinit(); derr != nil {
		return derr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Publish renders the window and hands the frame to OnFrame. Must run on
// the loop goroutine.
func (a *App) Publish() {
	if a.window == nil || a.opts.OnFrame == nil {
		return
	}
	a.opts.OnFrame(display.Render(a.window))
}

// Controller returns the display controller, or nil before Init.
func (a *App) Controller() *watchface.Controller { return a.controller }

// Coordinator returns the feedback coordinator, or nil before Init.
func (a *App) Coordinator() *feedback.Coordinator { return a.coordinator }
