// Package sim provides the fixed-timestep clock, frame statistics, and
// configuration for driving a bounce world.
package sim

import (
	"time"
)

// maxCatchUpSteps caps how far a slow frame may run the simulation ahead,
// to avoid a death spiral after a stall.
const maxCatchUpSteps = 5

// Clock turns wall time into a whole number of fixed simulation steps plus
// an interpolation fraction.
type Clock struct {
	// SimTime is total simulated time, advancing in whole timesteps.
	SimTime time.Duration

	timestep    time.Duration
	lastUpdate  time.Time
	accumulator time.Duration
	paused      bool
	scale       float64
}

// NewClock returns a clock with the given fixed timestep, started at now.
func NewClock(now time.Time, timestep time.Duration) *Clock {
	return &Clock{
		timestep:   timestep,
		lastUpdate: now,
		scale:      1,
	}
}

func (c *Clock) Timestep() time.Duration {
	return c.timestep
}

func (c *Clock) Paused() bool {
	return c.paused
}

// Tick advances the clock to now and returns the number of fixed steps the
// simulation must run, whether a redraw is justified, and the
// interpolation fraction in [0, 1] of the partial step left in the
// accumulator.
func (c *Clock) Tick(now time.Time) (steps int, redraw bool, alpha float64) {
	frame := now.Sub(c.lastUpdate)
	c.lastUpdate = now

	if c.paused {
		c.accumulator = 0
		return 0, false, 0
	}

	frame = min(frame, c.timestep*maxCatchUpSteps)
	c.accumulator += time.Duration(float64(frame) * c.scale)

	for c.accumulator >= c.timestep {
		c.accumulator -= c.timestep
		c.SimTime += c.timestep
		steps++
	}

	alpha = float64(c.accumulator) / float64(c.timestep)
	alpha = min(max(alpha, 0), 1)
	return steps, steps > 0, alpha
}

// TogglePause flips the pause state. Resuming resets the accumulator so
// the paused span isn't simulated.
func (c *Clock) TogglePause(now time.Time) {
	c.paused = !c.paused
	if !c.paused {
		c.lastUpdate = now
		c.accumulator = 0
	}
}

// SetScale changes the speed of simulated time relative to wall time.
func (c *Clock) SetScale(scale float64) {
	c.scale = scale
}

// NextWake is the earliest time another step can be due.
func (c *Clock) NextWake() time.Time {
	return c.lastUpdate.Add(c.timestep)
}
