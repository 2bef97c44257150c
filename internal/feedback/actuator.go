package feedback

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.Actuator = (*NoOp)(nil)
	_ domain.Actuator = (*PrintActuator)(nil)
	_ domain.Actuator = Multi(nil)
	_ domain.Actuator = (*Recorder)(nil)
)

// NoOp is an actuator that only logs. Used when no motor or audio device
// is available.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a no-op actuator.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Vibrate logs the pattern.
func (n *NoOp) Vibrate(p domain.Pattern) {
	n.log.Debug("actuator no-op: would vibrate %s", FormatPattern(p))
}

// PrintFunc is a function used to print formatted output.
// Matches the signature of both fmt.Printf and display.UI.Printf.
type PrintFunc func(format string, a ...interface{})

// PrintActuator shows vibrations as a line of text above the face.
type PrintActuator struct {
	printFn PrintFunc
}

// NewPrintActuator creates a text actuator. If printFn is nil, fmt.Printf
// is used.
func NewPrintActuator(printFn PrintFunc) *PrintActuator {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &PrintActuator{printFn: printFn}
}

// Vibrate prints one "bz" per 100ms of "on" time.
func (a *PrintActuator) Vibrate(p domain.Pattern) {
	var b strings.Builder
	for i, seg := range p {
		if i%2 != 0 {
			b.WriteString(" ")
			continue
		}
		n := int(seg / DefaultPulse)
		if n < 1 {
			n = 1
		}
		b.WriteString(strings.Repeat("bz", n))
	}
	a.printFn("~ %s ~", b.String())
}

// Multi fans a vibration out to several actuators.
type Multi []domain.Actuator

// Vibrate forwards p to every actuator.
func (m Multi) Vibrate(p domain.Pattern) {
	for _, a := range m {
		a.Vibrate(p)
	}
}

// Recorder remembers every pattern it receives. Handy in tests and for the
// status line.
type Recorder struct {
	mu       sync.Mutex
	patterns []domain.Pattern
}

// Vibrate records a copy of p.
func (r *Recorder) Vibrate(p domain.Pattern) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patterns = append(r.patterns, append(domain.Pattern(nil), p...))
}

// Patterns returns the recorded patterns.
func (r *Recorder) Patterns() []domain.Pattern {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Pattern(nil), r.patterns...)
}

// FormatPattern renders a pattern as "on 100ms, off 50ms, on 100ms".
func FormatPattern(p domain.Pattern) string {
	parts := make([]string, len(p))
	for i, seg := range p {
		state := "on"
		if i%2 == 1 {
			state = "off"
		}
		parts[i] = state + " " + seg.String()
	}
	return strings.Join(parts, ", ")
}
