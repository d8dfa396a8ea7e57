// Copyright 2025 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package physics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/bounce"
	"honnef.co/go/bounce/gfx"
	"honnef.co/go/curve"
)

const dt = 8 * time.Millisecond

func ball(x, y, radius float64) *bounce.Entity {
	return bounce.NewCircle(curve.Point{X: x, Y: y}, radius, gfx.SRGB(1, 0, 0)).
		WithBody(bounce.NewBody())
}

func floor() *bounce.Entity {
	return bounce.NewRectangle(curve.Point{Y: -0.9}, 1.8, 0.1, gfx.SRGB(0.3, 0.3, 0.3)).
		WithBody(bounce.NewStaticBody())
}

func TestGravityIntegration(t *testing.T) {
	sys := NewSystem()
	sys.AirDamping = 1

	w := bounce.NewWorld()
	ent := ball(0, 0.5, 0.1)
	w.Add(ent)

	sys.Step(w, dt)

	dts := dt.Seconds()
	assert.InDelta(t, sys.Gravity.Y*dts, ent.Body.Velocity.Y, 1e-12)
	assert.InDelta(t, 0.5+sys.Gravity.Y*dts*dts, ent.Position.Y, 1e-12)
	assert.Zero(t, ent.Body.Velocity.X)

	// Acceleration accumulates afresh each step.
	assert.Zero(t, ent.Body.Accel)

	sys.Step(w, dt)
	assert.InDelta(t, 2*sys.Gravity.Y*dts, ent.Body.Velocity.Y, 1e-12)
}

func TestAirDamping(t *testing.T) {
	sys := NewSystem()
	sys.AirDamping = 0.5

	w := bounce.NewWorld()
	ent := ball(0, 0.5, 0.1)
	ent.Body.Gravity = false
	ent.Body.Velocity = curve.Vec(1, 0)
	w.Add(ent)

	sys.Step(w, dt)
	assert.InDelta(t, 0.5, ent.Body.Velocity.X, 1e-12)
	sys.Step(w, dt)
	assert.InDelta(t, 0.25, ent.Body.Velocity.X, 1e-12)
}

func TestSleepThreshold(t *testing.T) {
	sys := NewSystem()
	sys.AirDamping = 1

	w := bounce.NewWorld()
	ent := ball(0, 0.5, 0.1)
	ent.Body.Gravity = false
	ent.Body.Velocity = curve.Vec(sys.SleepSpeed/2, 0)
	w.Add(ent)

	sys.Step(w, dt)
	assert.Zero(t, ent.Body.Velocity)
	assert.Equal(t, 0.5, ent.Position.Y)
}

func TestStaticBodyNeverMoves(t *testing.T) {
	sys := NewSystem()

	w := bounce.NewWorld()
	fl := floor()
	// Dropping a ball straight into the floor must not displace it.
	w.Add(fl)
	w.Add(ball(0, -0.78, 0.1))

	for range 100 {
		sys.Step(w, dt)
	}
	assert.Equal(t, curve.Point{Y: -0.9}, fl.Position)
	assert.Zero(t, fl.Body.Velocity)
}

func TestBallBouncesOffFloor(t *testing.T) {
	sys := NewSystem()

	w := bounce.NewWorld()
	w.Add(floor())
	ent := ball(0, -0.78, 0.1)
	ent.Body.Velocity = curve.Vec(0, -0.5)
	w.Add(ent)

	// Overlapping and moving down; one step must reverse the motion.
	sys.Step(w, dt)
	assert.Greater(t, ent.Body.Velocity.Y, 0.0)
}

func TestBallSettlesOnFloor(t *testing.T) {
	sys := NewSystem()

	w := bounce.NewWorld()
	w.Add(floor())
	ent := ball(0, 0.2, 0.1)
	w.Add(ent)

	for range 5000 {
		sys.Step(w, dt)
	}

	// At rest on top of the floor: floor top is -0.85, so the center sits
	// near -0.75, give or take the correction slop.
	assert.InDelta(t, -0.75, ent.Position.Y, 0.02)
	assert.InDelta(t, 0, ent.Body.Velocity.Y, 0.05)
}

func TestHeadOnCircleCollision(t *testing.T) {
	sys := NewSystem()
	sys.AirDamping = 1

	w := bounce.NewWorld()
	a := ball(-0.05, 0, 0.1)
	b := ball(0.11, 0, 0.1)
	a.Body.Gravity = false
	b.Body.Gravity = false
	a.Body.Velocity = curve.Vec(1, 0)
	b.Body.Velocity = curve.Vec(-1, 0)
	w.Add(a)
	w.Add(b)

	sys.Step(w, dt)

	// Equal masses and a head-on hit swap and damp the velocities.
	assert.Less(t, a.Body.Velocity.X, 0.0)
	assert.Greater(t, b.Body.Velocity.X, 0.0)
	assert.InDelta(t, a.Body.Velocity.X, -b.Body.Velocity.X, 1e-9)
	// Restitution 0.8 on both sides loses energy.
	assert.Less(t, b.Body.Velocity.X, 1.0)
}

func TestUnequalMassCollision(t *testing.T) {
	sys := NewSystem()
	sys.AirDamping = 1

	w := bounce.NewWorld()
	light := ball(-0.05, 0, 0.1)
	heavy := ball(0.11, 0, 0.1)
	light.Body.Gravity = false
	heavy.Body.Gravity = false
	heavy.Body.Mass = 100
	light.Body.Velocity = curve.Vec(1, 0)
	w.Add(light)
	w.Add(heavy)

	sys.Step(w, dt)

	// The light body rebounds, the heavy one barely budges.
	assert.Less(t, light.Body.Velocity.X, 0.0)
	assert.Greater(t, heavy.Body.Velocity.X, 0.0)
	assert.Less(t, heavy.Body.Velocity.X, 0.1)
}

func TestImpulseOncePerPairPerStep(t *testing.T) {
	sys := NewSystem()
	sys.AirDamping = 1
	sys.Iterations = 1

	one := NewSystem()
	one.AirDamping = 1
	one.Iterations = 8

	mkWorld := func() (*bounce.World, *bounce.Entity) {
		w := bounce.NewWorld()
		ent := ball(0, -0.84, 0.1)
		ent.Body.Velocity = curve.Vec(0, -0.5)
		w.Add(floor())
		w.Add(ent)
		return w, ent
	}

	wA, entA := mkWorld()
	sys.Step(wA, dt)
	wB, entB := mkWorld()
	one.Step(wB, dt)

	// Extra iterations refine positions but never re-apply the impulse.
	assert.InDelta(t, entA.Body.Velocity.Y, entB.Body.Velocity.Y, 1e-9)
}

func TestVisualOnlyEntitiesIgnored(t *testing.T) {
	sys := NewSystem()

	w := bounce.NewWorld()
	deco := bounce.NewCircle(curve.Point{X: 0, Y: 0}, 0.3, gfx.SRGB(1, 1, 1))
	ent := ball(0, 0.01, 0.05)
	ent.Body.Gravity = false
	w.Add(deco)
	w.Add(ent)

	sys.Step(w, dt)

	// Overlapping a bodiless shape produces no contact.
	assert.Equal(t, 0.01, ent.Position.Y)
	assert.Zero(t, ent.Body.Velocity)
}

func TestCheckCollisionGeometry(t *testing.T) {
	mkCircle := func(x, y, r float64) *bounce.Entity {
		return ball(x, y, r)
	}
	mkRect := func(x, y, w, h float64) *bounce.Entity {
		return bounce.NewRectangle(curve.Point{X: x, Y: y}, w, h, gfx.SRGB(1, 1, 1)).
			WithBody(bounce.NewStaticBody())
	}

	t.Run("circles apart", func(t *testing.T) {
		_, ok := checkCollision(mkCircle(0, 0, 0.1), mkCircle(0.3, 0, 0.1))
		assert.False(t, ok)
	})
	t.Run("circles overlapping", func(t *testing.T) {
		c, ok := checkCollision(mkCircle(0, 0, 0.1), mkCircle(0.15, 0, 0.1))
		require.True(t, ok)
		assert.InDelta(t, 1, c.normal.X, 1e-12)
		assert.InDelta(t, 0, c.normal.Y, 1e-12)
		assert.InDelta(t, 0.05, c.depth, 1e-12)
	})
	t.Run("circles coincident", func(t *testing.T) {
		// No meaningful normal; reported as no contact.
		_, ok := checkCollision(mkCircle(0, 0, 0.1), mkCircle(0, 0, 0.1))
		assert.False(t, ok)
	})
	t.Run("circle above rect", func(t *testing.T) {
		c, ok := checkCollision(mkCircle(0, 0.12, 0.1), mkRect(0, 0, 1, 0.1))
		require.True(t, ok)
		// Normal points from the circle towards the rectangle.
		assert.InDelta(t, -1, c.normal.Y, 1e-12)
		assert.InDelta(t, 0.03, c.depth, 1e-12)
	})
	t.Run("rect then circle", func(t *testing.T) {
		c, ok := checkCollision(mkRect(0, 0, 1, 0.1), mkCircle(0, 0.12, 0.1))
		require.True(t, ok)
		assert.InDelta(t, 1, c.normal.Y, 1e-12)
	})
	t.Run("circle center inside rect", func(t *testing.T) {
		c, ok := checkCollision(mkCircle(0.4, 0, 0.05), mkRect(0, 0, 1, 1))
		require.True(t, ok)
		// Pushed out along the shortest axis, towards +x, so the a-to-b
		// normal points back at the rectangle's center.
		assert.InDelta(t, -1, c.normal.X, 1e-12)
		assert.InDelta(t, 0.05+0.1, c.depth, 1e-12)
	})
	t.Run("rects overlapping", func(t *testing.T) {
		c, ok := checkCollision(mkRect(0, 0, 1, 1), mkRect(0.9, 0, 1, 1))
		require.True(t, ok)
		assert.InDelta(t, 1, c.normal.X, 1e-12)
		assert.InDelta(t, 0.1, c.depth, 1e-12)
	})
	t.Run("rects apart", func(t *testing.T) {
		_, ok := checkCollision(mkRect(0, 0, 1, 1), mkRect(2, 0, 1, 1))
		assert.False(t, ok)
	})
}
