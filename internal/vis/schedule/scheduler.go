// Package schedule rate-limits callbacks coming out of the interaction
// layer. Throttle caps high-frequency updates (drag positions), Debounce
// collapses bursts into one trailing call (position persistence).
//
// Every primitive is created through a Scheduler, which owns its timers.
// Closing the Scheduler stops every primitive it created; once Close
// returns no pending call is started.
package schedule

import (
	"sync"
	"time"
)

// Timer is a pending callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock abstracts time so tests can drive timers by hand.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns the wall clock.
func RealClock() Clock {
	return realClock{}
}

type stopper interface {
	Stop()
}

// Scheduler owns a set of throttles and debounces.
type Scheduler struct {
	clock Clock

	mu       sync.Mutex
	children []stopper
	closed   bool
}

// New creates a scheduler. A nil clock means the wall clock.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = RealClock()
	}
	return &Scheduler{clock: clock}
}

// Clock returns the scheduler's clock.
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// Close stops every primitive created by s. Primitives created afterwards
// are born stopped. Close is idempotent.
func (s *Scheduler) Close() {
	s.mu.Lock()
	children := s.children
	s.children = nil
	s.closed = true
	s.mu.Unlock()

	for _, c := range children {
		c.Stop()
	}
}

// Closed reports whether Close has been called.
func (s *Scheduler) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Scheduler) adopt(c stopper) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		c.Stop()
		return
	}
	s.children = append(s.children, c)
	s.mu.Unlock()
}
