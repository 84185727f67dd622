package cooldown

import (
	"sync"
	"time"

	"banwatch/internal/utils"
)

// minSweep is the number of tracked keys at which idle windows are first
// swept.
const minSweep = 64

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Limiter allows at most calls invocations per key inside a sliding window.
type Limiter struct {
	mu      sync.Mutex
	calls   int
	window  time.Duration
	clock   Clock
	windows map[string]*utils.SlidingWindow
	sweepAt int
}

func New(calls int, window time.Duration) *Limiter {
	return NewWithClock(calls, window, realClock{})
}

func NewWithClock(calls int, window time.Duration, clock Clock) *Limiter {
	if calls <= 0 {
		calls = 1
	}
	if clock == nil {
		clock = realClock{}
	}
	return &Limiter{
		calls:   calls,
		window:  window,
		clock:   clock,
		windows: make(map[string]*utils.SlidingWindow),
		sweepAt: minSweep,
	}
}

// Allow consumes one call for key. When the limit is reached it returns
// false and the time left until the oldest call leaves the window; rejected
// calls are not recorded.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	if l.window <= 0 {
		return true, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	window := l.windows[key]
	if window == nil {
		if len(l.windows) >= l.sweepAt {
			l.sweepLocked(now)
		}
		window = utils.NewSlidingWindow(l.window)
		l.windows[key] = window
	}
	return window.Reserve(now, l.calls)
}

// sweepLocked forgets keys whose window holds no calls, then raises the
// threshold so the next sweep runs once the map has doubled.
func (l *Limiter) sweepLocked(now time.Time) {
	for key, window := range l.windows {
		if window.Count(now) == 0 {
			delete(l.windows, key)
		}
	}
	l.sweepAt = 2 * len(l.windows)
	if l.sweepAt < minSweep {
		l.sweepAt = minSweep
	}
}

// RetrySeconds rounds a wait up to whole seconds, never below one.
func RetrySeconds(wait time.Duration) int {
	secs := int((wait + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
