package combat

import "time"

// Throttle lets the first event through and then drops events until period
// has elapsed since the last passed one. Dropped events never accumulate.
type Throttle struct {
	period time.Duration
	last   time.Duration
	fired  bool
}

// NewThrottle creates a throttle with the given period.
func NewThrottle(period time.Duration) Throttle {
	return Throttle{period: period}
}

// Allow reports whether an event at now passes, recording it if so.
func (t *Throttle) Allow(now time.Duration) bool {
	if t.fired && now-t.last < t.period {
		return false
	}
	t.fired = true
	t.last = now
	return true
}

// Last returns the time of the last passed event.
func (t *Throttle) Last() (time.Duration, bool) {
	return t.last, t.fired
}

// Reset forgets the last event.
func (t *Throttle) Reset() {
	t.fired = false
	t.last = 0
}
