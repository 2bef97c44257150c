// Package watchface is the display controller: it owns one window's layout
// tree and its tick and settings subscriptions, and commits formatted time
// and resolved colors to the surface.
//
// Every handler runs on the event loop. The controller therefore holds no
// locks; the only concurrency it sees is the loop's run-to-completion order.
package watchface

import (
	"errors"
	"fmt"
	"time"

	"github.com/hammamikhairi/tickface/internal/clock"
	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/layout"
	"github.com/hammamikhairi/tickface/internal/logger"
	"github.com/hammamikhairi/tickface/internal/theme"
)

// Widget and font names the face layout must provide.
const (
	TimeWidgetID  = "time"
	LabelWidgetID = "text"

	FontTime  = "ABRIL"
	FontLabel = "GOTHIC"
)

// TickUnit is the granularity the face redraws at.
const TickUnit = domain.MinuteUnit

// Deps are the controller's collaborators. All must outlive every window
// the controller is attached to.
type Deps struct {
	Layout    domain.LayoutEngine
	Ticks     domain.TickSource
	Settings  domain.SettingsService
	Feedback  domain.FeedbackApplier
	Formatter clock.Formatter
	Caps      domain.Capabilities
	Now       func() time.Time
	Strict    bool // contract violations panic instead of warn
	Log       *logger.Logger
}

// face is the per-load state. It exists only between Load and Unload.
type face struct {
	window   domain.Window
	tree     domain.LayoutTree
	timeText domain.TextWidget
	label    domain.TextWidget

	tickHandle     domain.Handle
	settingsHandle domain.Handle

	clock domain.ClockState
	theme domain.ThemeState
}

// Compile-time interface check.
var _ domain.WindowHandlers = (*Controller)(nil)

// Controller implements the window's Load/Unload handlers. One controller
// serves one window at a time; it can be loaded and unloaded any number of
// times.
type Controller struct {
	deps Deps
	log  *logger.Logger

	face    *face
	onTick  domain.TickHandler
	onApply domain.SettingsHandler
	commits int
}

// NewController creates an unloaded controller. A nil Formatter means the
// wall clock; a nil Now means time.Now.
func NewController(deps Deps) *Controller {
	if deps.Formatter == nil {
		deps.Formatter = clock.Wall{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	c := &Controller{deps: deps, log: deps.Log}
	c.onTick = c.handleTick
	c.onApply = c.handleSettings
	return c
}

// Load builds the face on w. Any failure releases what was acquired and
// leaves w untouched.
func (c *Controller) Load(w domain.Window) (err error) {
	if c.face != nil {
		return c.violation(fmt.Errorf("watchface: load: %w", domain.ErrAlreadyLoaded))
	}

	var undo []func()
	defer func() {
		if err == nil {
			return
		}
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
		c.log.Error("face load failed: %v", err)
	}()

	f := &face{window: w}

	f.tree = c.deps.Layout.Create()
	undo = append(undo, f.tree.Destroy)

	f.tree.AddStandardType(layout.TypeText)
	if err := f.tree.AddFont(FontTime, layout.ResourceFontAbril34); err != nil {
		return fmt.Errorf("watchface: %w", err)
	}
	if err := f.tree.AddFont(FontLabel, layout.ResourceFontGothic); err != nil {
		return fmt.Errorf("watchface: %w", err)
	}
	if err := f.tree.Parse(layout.ResourceLayout); err != nil {
		return fmt.Errorf("watchface: %w", err)
	}
	if f.timeText, err = f.tree.FindByID(TimeWidgetID); err != nil {
		return fmt.Errorf("watchface: %w", err)
	}
	if f.label, err = f.tree.FindByID(LabelWidgetID); err != nil {
		return fmt.Errorf("watchface: %w", err)
	}

	root := f.tree.Root()
	w.AddChild(root)
	undo = append(undo, func() { w.RemoveChild(root) })

	snapshot := c.deps.Settings.Snapshot()
	f.clock.Mode = domain.EffectiveMode(snapshot.TimeFormat, c.deps.Caps)
	c.render(f, c.deps.Now())

	if f.tickHandle, err = c.deps.Ticks.Subscribe(TickUnit, c.onTick); err != nil {
		return fmt.Errorf("watchface: subscribe ticks: %w", err)
	}
	undo = append(undo, func() { c.release("tick", c.deps.Ticks.Unsubscribe, f.tickHandle) })

	if f.settingsHandle, err = c.deps.Settings.SubscribeOnChange(c.onApply); err != nil {
		return fmt.Errorf("watchface: subscribe settings: %w", err)
	}
	undo = append(undo, func() { c.release("settings", c.deps.Settings.Unsubscribe, f.settingsHandle) })

	c.face = f
	c.handleSettings(snapshot)

	c.log.Info("face loaded: %s, %s on %s", f.clock.Text.String(), f.clock.Mode, f.theme.Background)
	return nil
}

// Unload releases settings, then ticks, then the layout tree. Unloading a
// controller that is not loaded is a contract violation.
func (c *Controller) Unload(w domain.Window) {
	f := c.face
	if f == nil {
		c.violation(fmt.Errorf("watchface: unload: %w", domain.ErrNotLoaded))
		return
	}
	if f.window != w {
		c.violation(fmt.Errorf("watchface: unload of a window the face is not on: %w", domain.ErrNotLoaded))
		return
	}

	c.release("settings", c.deps.Settings.Unsubscribe, f.settingsHandle)
	c.release("tick", c.deps.Ticks.Unsubscribe, f.tickHandle)
	w.RemoveChild(f.tree.Root())
	f.tree.Destroy()
	c.face = nil
	c.log.Info("face unloaded")
}

// Loaded reports whether a window is currently loaded.
func (c *Controller) Loaded() bool { return c.face != nil }

// Clock returns the last committed clock state.
func (c *Controller) Clock() domain.ClockState {
	if c.face == nil {
		return domain.ClockState{}
	}
	return c.face.clock
}

// Theme returns the last committed theme.
func (c *Controller) Theme() domain.ThemeState {
	if c.face == nil {
		return domain.ThemeState{}
	}
	return c.face.theme
}

// Commits returns how many times colors were committed, across loads.
func (c *Controller) Commits() int { return c.commits }

// handleTick rewrites only the time text. It does not allocate.
func (c *Controller) handleTick(now time.Time, _ domain.TimeUnit) {
	f := c.face
	if f == nil {
		return
	}
	c.render(f, now)
}

func (c *Controller) handleSettings(s domain.Settings) {
	f := c.face
	if f == nil {
		return
	}

	c.deps.Feedback.Apply(s)

	f.theme = theme.Resolve(s, c.deps.Caps)
	f.window.SetBackgroundColor(f.theme.Background)
	f.timeText.SetTextColor(f.theme.Foreground)
	f.label.SetTextColor(f.theme.Foreground)
	c.commits++

	if mode := domain.EffectiveMode(s.TimeFormat, c.deps.Caps); mode != f.clock.Mode {
		f.clock.Mode = mode
		c.render(f, c.deps.Now())
		c.log.Debug("time format now %s", mode)
	}
}

func (c *Controller) render(f *face, now time.Time) {
	c.deps.Formatter.Format(&f.clock.Text, now, f.clock.Mode)
	f.timeText.SetText(f.clock.Text.Bytes())
}

func (c *Controller) release(what string, unsubscribe func(domain.Handle) error, h domain.Handle) {
	if err := unsubscribe(h); err != nil && !errors.Is(err, domain.ErrStaleHandle) {
		c.log.Error("release %s handle %d: %v", what, h, err)
	}
}

func (c *Controller) violation(err error) error {
	if c.deps.Strict {
		panic(err)
	}
	c.log.Warn("contract violation: %v", err)
	return err
}
