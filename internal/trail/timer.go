package trail

import "time"

// DefaultPeriod is the wall-clock interval between trail samples.
const DefaultPeriod = 60 * time.Millisecond

// Timer is a repeating timer advanced by elapsed frame time. It is
// independent of the physics step so trail density does not depend on dt.
type Timer struct {
	period  time.Duration
	elapsed time.Duration
}

func NewTimer(period time.Duration) *Timer {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Timer{period: period}
}

// Advance adds d to the timer and reports whether at least one period
// completed. Several completions within one call count as one sample.
func (t *Timer) Advance(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	t.elapsed += d
	if t.elapsed < t.period {
		return false
	}
	t.elapsed %= t.period
	return true
}

func (t *Timer) Period() time.Duration { return t.period }

func (t *Timer) Reset() { t.elapsed = 0 }
