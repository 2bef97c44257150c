package feedback

import (
	"fmt"
	"time"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/logger"
)

// Compile-time interface check.
var _ domain.Trigger = (*HourlyChime)(nil)

// HourlyChime vibrates once whenever the hour changes. It owns its own tick
// subscription between Init and Deinit.
type HourlyChime struct {
	ticks    domain.TickSource
	actuator domain.Actuator
	health   domain.HealthMonitor
	log      *logger.Logger

	pattern domain.Pattern
	enabled bool
	gated   bool
	handle  domain.Handle
	fired   int
}

// NewHourlyChime creates a disabled chime. health may be nil when the
// platform has no health subsystem.
func NewHourlyChime(ticks domain.TickSource, actuator domain.Actuator, health domain.HealthMonitor, log *logger.Logger) *HourlyChime {
	return &HourlyChime{
		ticks:    ticks,
		actuator: actuator,
		health:   health,
		log:      log,
	}
}

// Init subscribes to hour changes.
func (h *HourlyChime) Init() error {
	if h.handle.Valid() {
		return fmt.Errorf("hourly chime: init twice: %w", domain.ErrAlreadyLoaded)
	}
	handle, err := h.ticks.Subscribe(domain.HourUnit, h.onHour)
	if err != nil {
		return fmt.Errorf("hourly chime: subscribe: %w", err)
	}
	h.handle = handle
	h.log.Debug("hourly chime initialized")
	return nil
}

// Deinit cancels the hour subscription.
func (h *HourlyChime) Deinit() error {
	if !h.handle.Valid() {
		return fmt.Errorf("hourly chime: deinit: %w", domain.ErrNotStarted)
	}
	err := h.ticks.Unsubscribe(h.handle)
	h.handle = 0
	h.log.Debug("hourly chime deinitialized")
	return err
}

// SetPattern copies p into the chime's own storage, reusing capacity.
func (h *HourlyChime) SetPattern(p domain.Pattern) {
	h.pattern = append(h.pattern[:0], p...)
}

// SetEnabled turns the chime on or off.
func (h *HourlyChime) SetEnabled(enabled bool) { h.enabled = enabled }

// SetIntensity is accepted for interface symmetry; the chime always plays
// the template as-is.
func (h *HourlyChime) SetIntensity(domain.VibeState) {}

// EnableHealthGating suppresses the chime while the wearer sleeps.
func (h *HourlyChime) EnableHealthGating(enabled bool) { h.gated = enabled }

// Enabled reports whether the chime is on.
func (h *HourlyChime) Enabled() bool { return h.enabled }

// Fired returns how many times the chime has vibrated.
func (h *HourlyChime) Fired() int { return h.fired }

func (h *HourlyChime) onHour(now time.Time, _ domain.TimeUnit) {
	if !h.enabled || len(h.pattern) == 0 {
		return
	}
	if h.gated && h.health != nil && h.health.Sleeping(now) {
		h.log.Debug("hourly chime suppressed at %s: wearer asleep", now.Format("15:04"))
		return
	}
	h.fired++
	h.log.Debug("hourly chime at %s", now.Format("15:04"))
	h.actuator.Vibrate(h.pattern)
}
