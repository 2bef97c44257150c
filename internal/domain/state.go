package domain

// FormatMode is the effective clock style used by the formatter.
type FormatMode int

const (
	H24 FormatMode = iota
	H12
)

// String returns a human-readable format mode.
func (m FormatMode) String() string {
	if m == H12 {
		return "12h"
	}
	return "24h"
}

// EffectiveMode resolves a user preference against the platform clock style.
func EffectiveMode(f TimeFormat, caps Capabilities) FormatMode {
	switch f {
	case TimeFormat24h:
		return H24
	case TimeFormat12h:
		return H12
	}
	if caps.Clock24h {
		return H24
	}
	return H12
}

// TextBufferSize is the capacity of the time text buffer, terminator included.
const TextBufferSize = 8

// TextBuffer is a fixed-capacity, NUL-terminated character buffer.
// The formatter writes into it in place so ticks never allocate.
type TextBuffer [TextBufferSize]byte

// Len returns the number of bytes before the terminator.
func (b *TextBuffer) Len() int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return len(b)
}

// Bytes returns the content up to the terminator, aliasing the buffer.
func (b *TextBuffer) Bytes() []byte {
	return b[:b.Len()]
}

// String copies the content out of the buffer.
func (b *TextBuffer) String() string {
	return string(b.Bytes())
}

// ClockState is what the controller last committed to the "time" widget.
type ClockState struct {
	Text TextBuffer
	Mode FormatMode
}

// ThemeState is the pure projection of a settings snapshot onto colors.
type ThemeState struct {
	Background Color
	Foreground Color
	Invert     bool
}

// TimeUnit is a bit set of calendar units, used for tick granularity and
// for reporting which units changed between two ticks.
type TimeUnit uint8

const (
	SecondUnit TimeUnit = 1 << iota
	MinuteUnit
	HourUnit
	DayUnit
	MonthUnit
	YearUnit
)

// Has reports whether all bits of u are set in t.
func (t TimeUnit) Has(u TimeUnit) bool {
	return t&u == u
}

// String returns the coarsest unit set, for logging.
func (t TimeUnit) String() string {
	switch {
	case t.Has(YearUnit):
		return "year"
	case t.Has(MonthUnit):
		return "month"
	case t.Has(DayUnit):
		return "day"
	case t.Has(HourUnit):
		return "hour"
	case t.Has(MinuteUnit):
		return "minute"
	case t.Has(SecondUnit):
		return "second"
	default:
		return "none"
	}
}
