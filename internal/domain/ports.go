package domain

import "time"

// Handle identifies an active subscription. The zero Handle is never issued.
type Handle uint64

// Valid reports whether h could have been issued by a registry.
func (h Handle) Valid() bool { return h != 0 }

// TickHandler receives the current time and the units that changed since
// the previous delivery.
type TickHandler func(now time.Time, changed TimeUnit)

// TickSource delivers periodic time ticks on the event loop.
type TickSource interface {
	Subscribe(unit TimeUnit, handler TickHandler) (Handle, error)
	Unsubscribe(h Handle) error
}

// SettingsHandler receives a fresh settings snapshot.
type SettingsHandler func(s Settings)

// SettingsService owns persisted user configuration and announces changes.
type SettingsService interface {
	Init() error
	Deinit() error
	SubscribeOnChange(handler SettingsHandler) (Handle, error)
	Unsubscribe(h Handle) error
	OpenMessageChannel() error

	Snapshot() Settings
	HourlyVibe() bool
	ConnectionVibe() VibeState
	HealthVibe() bool
	BackgroundColor() Color
	Invert() bool
	TimeFormat() TimeFormat
}

// ConnectionHandler receives the new connectivity state.
type ConnectionHandler func(connected bool)

// ConnectionSource announces connectivity transitions on the event loop.
type ConnectionSource interface {
	Subscribe(handler ConnectionHandler) (Handle, error)
	Unsubscribe(h Handle) error
	Connected() bool
}

// Pattern is a vibration pattern: alternating on/off segment durations,
// starting with "on".
type Pattern []time.Duration

// Total returns the summed duration of all segments.
func (p Pattern) Total() time.Duration {
	var d time.Duration
	for _, s := range p {
		d += s
	}
	return d
}

// Trigger is a haptic feedback collaborator (hourly chime, connection alert).
type Trigger interface {
	Init() error
	Deinit() error
	SetPattern(p Pattern)
	SetEnabled(enabled bool)
	SetIntensity(v VibeState)
	EnableHealthGating(enabled bool)
}

// Actuator drives the vibration motor. Vibrate must not block the caller.
type Actuator interface {
	Vibrate(p Pattern)
}

// HealthMonitor reports whether the wearer is asleep.
type HealthMonitor interface {
	Sleeping(now time.Time) bool
}

// FeedbackApplier reconciles haptic configuration against settings.
type FeedbackApplier interface {
	Apply(s Settings)
}

// ResourceID names an entry in the resource bundle.
type ResourceID string

// Node is an opaque subtree the window can attach and draw.
type Node interface {
	ID() string
	Children() []Node
}

// TextWidget is a text element of the rendering surface. SetText copies
// text into widget-owned storage; the caller keeps its buffer.
type TextWidget interface {
	Node
	SetText(text []byte)
	Text() string
	SetTextColor(c Color)
	TextColor() Color
}

// LayoutTree is one parsed widget hierarchy. Exactly one is alive per
// loaded window.
type LayoutTree interface {
	AddStandardType(kind string)
	AddFont(name string, resource ResourceID) error
	Parse(resource ResourceID) error
	FindByID(id string) (TextWidget, error)
	Root() Node
	Destroy()
}

// LayoutEngine creates layout trees.
type LayoutEngine interface {
	Create() LayoutTree
}

// Window is the top-level rendering surface.
type Window interface {
	SetBackgroundColor(c Color)
	BackgroundColor() Color
	AddChild(n Node)
	RemoveChild(n Node)
}

// WindowHandlers receive window lifecycle events.
type WindowHandlers interface {
	Load(w Window) error
	Unload(w Window)
}
