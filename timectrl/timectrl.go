package timectrl

import (
	"sync"
	"time"
)

// Clock is the source of "now" for components that split catalogues by
// activity or build default query windows. Tests substitute a ManualClock.
type Clock interface {
	// Now returns the current time in UTC.
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now in UTC.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// ManualClock is a Clock whose time only moves when told to.
type ManualClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewManualClock constructs a clock fixed at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{current: UTC(start)}
}

// Now returns the clock's current time. Implements Clock.
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// SetTime moves the clock to t.
func (c *ManualClock) SetTime(t time.Time) {
	c.mu.Lock()
	c.current = UTC(t)
	c.mu.Unlock()
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}

// UTC normalises t to the UTC location. The zero time stays zero.
func UTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// Window returns [now, now+d] from clock, both in UTC.
func Window(clock Clock, d time.Duration) (time.Time, time.Time) {
	if clock == nil {
		clock = SystemClock{}
	}
	start := UTC(clock.Now())
	return start, start.Add(d)
}

// Steps returns the instants start, start+tick, ... up to and including end,
// stopping after max samples when max > 0. The second return value reports
// whether the sequence was cut short by max. A non-positive tick or an
// inverted range yields no samples.
func Steps(start, end time.Time, tick time.Duration, max int) ([]time.Time, bool) {
	if tick <= 0 || end.Before(start) {
		return nil, false
	}
	start, end = UTC(start), UTC(end)

	var out []time.Time
	for t := start; !t.After(end); t = t.Add(tick) {
		if max > 0 && len(out) == max {
			return out, true
		}
		out = append(out, t)
	}
	return out, false
}
