// Package feedback drives haptic feedback: the hourly chime, the
// connection alert, the coordinator that configures both from settings,
// and the actuators that make the motor (or a speaker) buzz.
package feedback

import (
	"time"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/logger"
)

// DefaultPulse is the single segment of the shared pattern template.
const DefaultPulse = 100 * time.Millisecond

// DefaultPattern returns the one-pulse template installed at startup.
func DefaultPattern() domain.Pattern {
	return domain.Pattern{DefaultPulse}
}

// Config is the actuator configuration last applied by the coordinator.
type Config struct {
	HourlyEnabled     bool
	ConnectionEnabled bool
	Intensity         domain.VibeState
	HealthGating      bool
}

// Compile-time interface check.
var _ domain.FeedbackApplier = (*Coordinator)(nil)

// Coordinator reconciles both feedback triggers against a settings
// snapshot. It only flips flags on existing collaborators.
type Coordinator struct {
	hourly     domain.Trigger
	connection domain.Trigger
	caps       domain.Capabilities
	config     Config
	log        *logger.Logger
}

// NewCoordinator installs pattern on both triggers. The pattern is set
// once here and never again.
func NewCoordinator(hourly, connection domain.Trigger, pattern domain.Pattern, caps domain.Capabilities, log *logger.Logger) *Coordinator {
	hourly.SetPattern(pattern)
	connection.SetPattern(pattern)
	log.Debug("pattern template installed (%d segments, %s)", len(pattern), pattern.Total())
	return &Coordinator{
		hourly:     hourly,
		connection: connection,
		caps:       caps,
		log:        log,
	}
}

// Apply configures the triggers from s. Applying the same snapshot twice
// leaves the same configuration as applying it once.
func (c *Coordinator) Apply(s domain.Settings) {
	cfg := Config{
		HourlyEnabled:     s.HourlyVibe,
		ConnectionEnabled: s.ConnectionVibe != domain.VibeOff,
		Intensity:         s.ConnectionVibe,
	}

	c.hourly.SetEnabled(cfg.HourlyEnabled)
	c.connection.SetIntensity(cfg.Intensity)
	c.connection.SetEnabled(cfg.ConnectionEnabled)

	if c.caps.Health {
		cfg.HealthGating = s.HealthVibe
		c.hourly.EnableHealthGating(cfg.HealthGating)
		c.connection.EnableHealthGating(cfg.HealthGating)
	}

	if cfg != c.config {
		c.log.Info("feedback: hourly=%t connection=%s health_gating=%t",
			cfg.HourlyEnabled, cfg.Intensity, cfg.HealthGating)
	}
	c.config = cfg
}

// Config returns the configuration last applied.
func (c *Coordinator) Config() Config {
	return c.config
}
