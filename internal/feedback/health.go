package feedback

import (
	"fmt"
	"time"

	"github.com/hammamikhairi/tickface/internal/domain"
)

// Compile-time interface check.
var _ domain.HealthMonitor = QuietHours{}

// QuietHours treats a fixed daily window as sleep. The window may wrap
// midnight ("22:00" to "07:00").
type QuietHours struct {
	Start time.Duration // offset from midnight
	End   time.Duration
}

// ParseQuietHours parses two "15:04" clock times.
func ParseQuietHours(start, end string) (QuietHours, error) {
	s, err := parseClock(start)
	if err != nil {
		return QuietHours{}, fmt.Errorf("quiet hours start: %w", err)
	}
	e, err := parseClock(end)
	if err != nil {
		return QuietHours{}, fmt.Errorf("quiet hours end: %w", err)
	}
	return QuietHours{Start: s, End: e}, nil
}

// Sleeping reports whether now falls inside the window. An empty window
// (start == end) never sleeps.
func (q QuietHours) Sleeping(now time.Time) bool {
	t := time.Duration(now.Hour())*time.Hour + time.Duration(now.Minute())*time.Minute
	switch {
	case q.Start == q.End:
		return false
	case q.Start < q.End:
		return t >= q.Start && t < q.End
	default:
		return t >= q.Start || t < q.End
	}
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
