package domain

// VibeState selects the connection-change haptic intensity.
type VibeState int

const (
	VibeOff VibeState = iota
	VibeShort
	VibeLong
)

// String returns a human-readable vibe state.
func (v VibeState) String() string {
	switch v {
	case VibeOff:
		return "off"
	case VibeShort:
		return "short"
	case VibeLong:
		return "long"
	default:
		return "unknown"
	}
}

// vibeNames maps names used in settings files and messages to VibeState.
var vibeNames = map[string]VibeState{
	"off":   VibeOff,
	"none":  VibeOff,
	"0":     VibeOff,
	"short": VibeShort,
	"1":     VibeShort,
	"long":  VibeLong,
	"2":     VibeLong,
}

// VibeStateFromString converts a name ("off", "short", "long") or the
// companion-app index ("0", "1", "2") to a VibeState.
func VibeStateFromString(name string) (VibeState, bool) {
	v, ok := vibeNames[name]
	return v, ok
}

// TimeFormat is the user's clock-style preference.
type TimeFormat int

const (
	// TimeFormatSystem defers to the platform clock style.
	TimeFormatSystem TimeFormat = iota
	TimeFormat24h
	TimeFormat12h
)

// String returns a human-readable time format.
func (f TimeFormat) String() string {
	switch f {
	case TimeFormat24h:
		return "24h"
	case TimeFormat12h:
		return "12h"
	default:
		return "system"
	}
}

// TimeFormatFromString parses "system", "24h" or "12h".
func TimeFormatFromString(name string) (TimeFormat, bool) {
	switch name {
	case "system", "":
		return TimeFormatSystem, true
	case "24h", "24":
		return TimeFormat24h, true
	case "12h", "12":
		return TimeFormat12h, true
	}
	return TimeFormatSystem, false
}

// Settings is an immutable snapshot of the persisted user configuration.
// It is passed by value; handlers must not retain it past one event.
type Settings struct {
	HourlyVibe     bool
	ConnectionVibe VibeState
	HealthVibe     bool  // only meaningful with the health capability
	Background     Color // only meaningful with the color capability
	Invert         bool  // monochrome fallback
	TimeFormat     TimeFormat
}

// DefaultSettings returns the snapshot used before anything is persisted.
func DefaultSettings() Settings {
	return Settings{
		HourlyVibe:     true,
		ConnectionVibe: VibeShort,
		HealthVibe:     true,
		Background:     ColorBlack,
		Invert:         false,
		TimeFormat:     TimeFormatSystem,
	}
}

// Capabilities are the platform feature flags known at startup.
type Capabilities struct {
	Color    bool // full-color display; false means monochrome
	Health   bool // health/activity subsystem available
	Clock24h bool // platform clock style when TimeFormat is system
}
