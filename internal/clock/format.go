// Package clock formats wall-clock time for the face.
//
// Formatters write into a caller-owned [domain.TextBuffer] and never
// allocate, so they are safe to call on every tick.
package clock

import (
	"time"

	"github.com/hammamikhairi/tickface/internal/domain"
)

// DefaultDemoText is shown by the Fixed formatter when no literal is given.
const DefaultDemoText = "12:34"

// Formatter renders a time into a fixed buffer.
type Formatter interface {
	Format(dst *domain.TextBuffer, t time.Time, mode domain.FormatMode)
}

// Compile-time interface checks.
var (
	_ Formatter = Wall{}
	_ Formatter = Fixed{}
)

// Wall formats the actual time: "HH:MM" in 24h mode, "hh:mm" in 12h mode
// (hours 01-12, leading zero kept).
type Wall struct{}

// Format writes exactly five characters and a terminator.
func (Wall) Format(dst *domain.TextBuffer, t time.Time, mode domain.FormatMode) {
	h, m := t.Hour(), t.Minute()
	if mode == domain.H12 {
		h %= 12
		if h == 0 {
			h = 12
		}
	}
	dst[0] = '0' + byte(h/10)
	dst[1] = '0' + byte(h%10)
	dst[2] = ':'
	dst[3] = '0' + byte(m/10)
	dst[4] = '0' + byte(m%10)
	clear(dst[5:])
}

// Fixed ignores the time and always writes the same literal. It exists for
// deterministic screenshots.
type Fixed struct {
	Text string
}

// Format copies the literal, truncated so a terminator always fits.
func (f Fixed) Format(dst *domain.TextBuffer, _ time.Time, _ domain.FormatMode) {
	text := f.Text
	if text == "" {
		text = DefaultDemoText
	}
	n := copy(dst[:len(dst)-1], text)
	clear(dst[n:])
}

// New picks the strategy: Fixed when demo is set, Wall otherwise.
func New(demo bool, literal string) Formatter {
	if demo {
		return Fixed{Text: literal}
	}
	return Wall{}
}
