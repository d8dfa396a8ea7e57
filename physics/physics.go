// Package physics advances a bounce.World by fixed timesteps: force and
// position integration followed by iterative impulse-based collision
// resolution between circles and rectangles.
package physics

import (
	"log/slog"
	"time"

	"honnef.co/go/bounce"
	"honnef.co/go/curve"
)

// System is the fixed-step rigid-body simulation. The zero value is not
// usable; call NewSystem.
type System struct {
	Gravity curve.Vec2
	// Iterations is the number of collision resolution passes per step.
	Iterations int
	// SleepSpeed is the velocity below which a body is considered at rest
	// and its velocity zeroed, to prevent jitter.
	SleepSpeed float64
	// AirDamping is the per-step velocity multiplier (1 = no damping).
	AirDamping float64

	// Impulses are applied at most once per colliding pair per step, while
	// positional correction runs every iteration.
	impulseApplied map[[2]int]struct{}
}

func NewSystem() *System {
	return &System{
		Gravity:        curve.Vec(0, -0.5),
		Iterations:     4,
		SleepSpeed:     0.001,
		AirDamping:     0.98,
		impulseApplied: make(map[[2]int]struct{}),
	}
}

// Step runs one fixed timestep: integrate velocities, integrate positions,
// then resolve collisions.
func (sys *System) Step(w *bounce.World, dt time.Duration) {
	dts := dt.Seconds()

	sys.integrateForces(w, dts)
	sys.integratePositions(w, dts)

	clear(sys.impulseApplied)
	for range sys.Iterations {
		sys.resolveCollisions(w)
	}
}

func (sys *System) integrateForces(w *bounce.World, dts float64) {
	for _, ent := range w.Entities() {
		body := ent.Body
		if body == nil || !body.Dynamic {
			continue
		}

		if body.Gravity {
			body.Accel = body.Accel.Add(sys.Gravity)
		}
		body.Velocity = body.Velocity.Add(body.Accel.Mul(dts))
		body.Velocity = body.Velocity.Mul(sys.AirDamping)

		if body.Velocity.Hypot() < sys.SleepSpeed {
			body.Velocity = curve.Vec2{}
		}

		// Acceleration is re-accumulated every step.
		body.Accel = curve.Vec2{}
	}
}

func (sys *System) integratePositions(w *bounce.World, dts float64) {
	for i, ent := range w.Entities() {
		body := ent.Body
		if body == nil || !body.Dynamic {
			continue
		}

		ent.Position = curve.Point{
			X: ent.Position.X + body.Velocity.X*dts,
			Y: ent.Position.Y + body.Velocity.Y*dts,
		}

		if ent.Position.Y < -1.5 || ent.Position.Y > 1.5 {
			slog.Warn("entity out of bounds",
				"entity", i,
				"x", ent.Position.X,
				"y", ent.Position.Y,
				"vx", body.Velocity.X,
				"vy", body.Velocity.Y)
		}
	}
}
