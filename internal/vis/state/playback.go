package state

import (
	"math"
	"time"

	"github.com/elektrokombinacija/topograph/internal/vis/schedule"
)

// FlowClock drives the markers that travel along edges. Phase cycles
// through [0,1) once per Cycle. It is owned by the UI loop.
type FlowClock struct {
	Cycle   time.Duration
	Speed   float64 // Multiplier (1.0 = one trip per Cycle)
	Playing bool

	clock      schedule.Clock
	phase      float64
	lastUpdate time.Time
}

// NewFlowClock creates a running flow clock.
func NewFlowClock(cycle time.Duration, clock schedule.Clock) *FlowClock {
	if clock == nil {
		clock = schedule.RealClock()
	}
	return &FlowClock{
		Cycle:      cycle,
		Speed:      1.0,
		Playing:    true,
		clock:      clock,
		lastUpdate: clock.Now(),
	}
}

// TogglePlay toggles the animation on/off.
func (f *FlowClock) TogglePlay() {
	if f.Playing {
		f.Pause()
	} else {
		f.Play()
	}
}

// Play resumes the animation.
func (f *FlowClock) Play() {
	f.Playing = true
	f.lastUpdate = f.clock.Now()
}

// Pause freezes the markers where they are.
func (f *FlowClock) Pause() {
	f.Playing = false
}

// Reset moves the markers back to the start of their edges.
func (f *FlowClock) Reset() {
	f.phase = 0
	f.lastUpdate = f.clock.Now()
}

// Advance moves the phase on by the time elapsed since the last call and
// returns it.
func (f *FlowClock) Advance() float64 {
	now := f.clock.Now()
	elapsed := now.Sub(f.lastUpdate)
	f.lastUpdate = now
	if !f.Playing || f.Cycle <= 0 {
		return f.phase
	}

	f.phase += elapsed.Seconds() / f.Cycle.Seconds() * f.Speed
	f.phase -= math.Floor(f.phase)
	return f.phase
}

// Phase returns the current phase without advancing.
func (f *FlowClock) Phase() float64 {
	return f.phase
}

// SetSpeed sets the speed multiplier.
func (f *FlowClock) SetSpeed(speed float64) {
	if speed < 0.1 {
		speed = 0.1
	}
	if speed > 10 {
		speed = 10
	}
	f.Speed = speed
}
