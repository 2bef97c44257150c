package feedback

import (
	"fmt"
	"time"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/logger"
)

// longFactor stretches the template for the long connection pattern.
const longFactor = 5

// Compile-time interface check.
var _ domain.Trigger = (*ConnectionAlert)(nil)

// ConnectionAlert vibrates when connectivity is lost or regained. The
// initial state never vibrates; only transitions do.
type ConnectionAlert struct {
	source   domain.ConnectionSource
	actuator domain.Actuator
	health   domain.HealthMonitor
	now      func() time.Time
	log      *logger.Logger

	short     domain.Pattern
	long      domain.Pattern
	intensity domain.VibeState
	enabled   bool
	gated     bool
	handle    domain.Handle
	fired     int
}

// NewConnectionAlert creates a disabled alert. health may be nil.
func NewConnectionAlert(source domain.ConnectionSource, actuator domain.Actuator, health domain.HealthMonitor, log *logger.Logger) *ConnectionAlert {
	return &ConnectionAlert{
		source:   source,
		actuator: actuator,
		health:   health,
		now:      time.Now,
		log:      log,
	}
}

// Init subscribes to connectivity transitions.
func (c *ConnectionAlert) Init() error {
	if c.handle.Valid() {
		return fmt.Errorf("connection alert: init twice: %w", domain.ErrAlreadyLoaded)
	}
	handle, err := c.source.Subscribe(c.onChange)
	if err != nil {
		return fmt.Errorf("connection alert: subscribe: %w", err)
	}
	c.handle = handle
	c.log.Debug("connection alert initialized (connected=%t)", c.source.Connected())
	return nil
}

// Deinit cancels the connectivity subscription.
func (c *ConnectionAlert) Deinit() error {
	if !c.handle.Valid() {
		return fmt.Errorf("connection alert: deinit: %w", domain.ErrNotStarted)
	}
	err := c.source.Unsubscribe(c.handle)
	c.handle = 0
	c.log.Debug("connection alert deinitialized")
	return err
}

// SetPattern copies p as the short pattern and derives the long one.
// Both reuse their existing capacity.
func (c *ConnectionAlert) SetPattern(p domain.Pattern) {
	c.short = append(c.short[:0], p...)
	c.long = append(c.long[:0], p...)
	for i := range c.long {
		if i%2 == 0 {
			c.long[i] *= longFactor
		}
	}
}

// SetEnabled turns the alert on or off.
func (c *ConnectionAlert) SetEnabled(enabled bool) { c.enabled = enabled }

// SetIntensity selects the short or long pattern; VibeOff silences it.
func (c *ConnectionAlert) SetIntensity(v domain.VibeState) { c.intensity = v }

// EnableHealthGating suppresses the alert while the wearer sleeps.
func (c *ConnectionAlert) EnableHealthGating(enabled bool) { c.gated = enabled }

// Intensity returns the selected intensity.
func (c *ConnectionAlert) Intensity() domain.VibeState { return c.intensity }

// Fired returns how many times the alert has vibrated.
func (c *ConnectionAlert) Fired() int { return c.fired }

// Pattern returns the pattern the current intensity plays, or nil.
func (c *ConnectionAlert) Pattern() domain.Pattern {
	switch c.intensity {
	case domain.VibeShort:
		return c.short
	case domain.VibeLong:
		return c.long
	}
	return nil
}

func (c *ConnectionAlert) onChange(connected bool) {
	p := c.Pattern()
	if !c.enabled || len(p) == 0 {
		return
	}
	if c.gated && c.health != nil && c.health.Sleeping(c.now()) {
		c.log.Debug("connection alert suppressed (connected=%t): wearer asleep", connected)
		return
	}
	c.fired++
	c.log.Info("connection %s, vibrating %s", connectedWord(connected), c.intensity)
	c.actuator.Vibrate(p)
}

func connectedWord(connected bool) string {
	if connected {
		return "restored"
	}
	return "lost"
}
