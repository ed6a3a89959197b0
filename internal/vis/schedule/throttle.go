package schedule

import (
	"sync"
	"time"
)

// Throttle is a trailing-edge throttle. The first Call in a quiet period
// opens a window of length interval; calls inside the window replace the
// pending argument, and fn runs once with the latest argument when the
// window closes. fn therefore runs at most once per interval.
type Throttle[T any] struct {
	clock    Clock
	interval time.Duration
	fn       func(T)

	mu      sync.Mutex
	timer   Timer
	gen     uint64
	pending bool
	args    T
	stopped bool
}

// NewThrottle creates a throttle owned by s.
func NewThrottle[T any](s *Scheduler, interval time.Duration, fn func(T)) *Throttle[T] {
	t := &Throttle[T]{clock: s.clock, interval: interval, fn: fn}
	s.adopt(t)
	return t
}

// Call schedules fn(v), replacing any argument already pending.
func (t *Throttle[T]) Call(v T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	t.args = v
	t.pending = true
	if t.timer == nil {
		gen := t.gen
		t.timer = t.clock.AfterFunc(t.interval, func() { t.fire(gen) })
	}
}

func (t *Throttle[T]) fire(gen uint64) {
	t.mu.Lock()
	if t.stopped || gen != t.gen || !t.pending {
		t.mu.Unlock()
		return
	}
	v := t.take()
	t.mu.Unlock()

	t.fn(v)
}

// Flush runs the pending call now, if any, and closes the current window.
func (t *Throttle[T]) Flush() {
	t.mu.Lock()
	if t.stopped || !t.pending {
		t.mu.Unlock()
		return
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	v := t.take()
	t.mu.Unlock()

	t.fn(v)
}

// Cancel drops the pending call. Later calls are accepted.
func (t *Throttle[T]) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reset()
}

// Stop drops the pending call and ignores all later calls.
func (t *Throttle[T]) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reset()
	t.stopped = true
}

// Pending reports whether a call is waiting for its window to close.
func (t *Throttle[T]) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

func (t *Throttle[T]) take() T {
	v := t.args
	var zero T
	t.args = zero
	t.pending = false
	t.timer = nil
	return v
}

func (t *Throttle[T]) reset() {
	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	t.take()
}
