package bounce

import (
	"math"

	"honnef.co/go/curve"
)

// Body holds the dynamic state of an entity. Entities without a body are
// purely visual and ignored by the physics system.
type Body struct {
	Velocity curve.Vec2
	Accel    curve.Vec2
	// Mass in arbitrary units. Static bodies have infinite mass.
	Mass float64

	// Gravity applies gravitational acceleration every step.
	Gravity bool
	// Dynamic bodies move and respond to collisions. Non-dynamic bodies
	// still collide but never change state.
	Dynamic bool

	// Restitution is the bounciness of collisions, in [0, 1].
	Restitution float64
	// Friction is the tangential energy loss on contact, in [0, 1].
	Friction float64
}

// NewBody returns a unit-mass dynamic body affected by gravity.
func NewBody() *Body {
	return &Body{
		Mass:        1,
		Gravity:     true,
		Dynamic:     true,
		Restitution: 0.8,
		Friction:    0.5,
	}
}

// NewStaticBody returns an immovable body. It participates in collisions
// but never moves.
func NewStaticBody() *Body {
	b := NewBody()
	b.Mass = math.Inf(1)
	b.Gravity = false
	b.Dynamic = false
	b.Restitution = 0.5
	return b
}

// WithVelocity sets the initial velocity and returns the body, for use in
// builder chains.
func (b *Body) WithVelocity(v curve.Vec2) *Body {
	b.Velocity = v
	return b
}

// InvMass returns the inverse mass used for collision response. Static and
// infinite-mass bodies have an inverse mass of zero.
func (b *Body) InvMass() float64 {
	if b == nil || !b.Dynamic || math.IsInf(b.Mass, 1) {
		return 0
	}
	return 1 / b.Mass
}
