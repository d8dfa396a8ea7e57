package physics

import (
	"log/slog"
	"math"

	"honnef.co/go/bounce"
	"honnef.co/go/curve"
)

// contact is a detected overlap: the normal points from the first body
// towards the second, depth is the penetration along it.
type contact struct {
	normal curve.Vec2
	depth  float64
}

// correctionPercent is how much of the penetration is corrected per
// iteration. Correcting all of it at once causes jitter.
const correctionPercent = 0.8

// slop is the penetration depth tolerated without correction.
const slop = 0.01

// minSeparation below this squared distance, centers are treated as
// coincident and no meaningful normal exists.
const minSeparation = 1e-4

func (sys *System) resolveCollisions(w *bounce.World) {
	entities := w.Entities()
	for i := range entities {
		for j := i + 1; j < len(entities); j++ {
			c, ok := checkCollision(entities[i], entities[j])
			if !ok {
				continue
			}
			slog.Debug("contact",
				"a", i, "b", j,
				"nx", c.normal.X, "ny", c.normal.Y,
				"depth", c.depth)
			sys.resolvePair(entities[i], entities[j], i, j, c)
		}
	}
}

func checkCollision(a, b *bounce.Entity) (contact, bool) {
	// Entities without a body are purely visual and never collide.
	if a.Body == nil || b.Body == nil {
		return contact{}, false
	}

	switch sa := a.Shape.(type) {
	case bounce.Circle:
		switch sb := b.Shape.(type) {
		case bounce.Circle:
			return circleCircle(a.Position, sa.Radius, b.Position, sb.Radius)
		case bounce.Rectangle:
			// circleRect's normal points at the circle; flip it to point
			// from a towards b.
			c, ok := circleRect(a.Position, sa.Radius, b.Position, sb.Width, sb.Height)
			if ok {
				c.normal = c.normal.Mul(-1)
			}
			return c, ok
		}
	case bounce.Rectangle:
		switch sb := b.Shape.(type) {
		case bounce.Circle:
			return circleRect(b.Position, sb.Radius, a.Position, sa.Width, sa.Height)
		case bounce.Rectangle:
			return rectRect(a.Position, sa.Width, sa.Height, b.Position, sb.Width, sb.Height)
		}
	}
	return contact{}, false
}

func circleCircle(posA curve.Point, rA float64, posB curve.Point, rB float64) (contact, bool) {
	d := curve.Vec(posB.X-posA.X, posB.Y-posA.Y)
	distSq := d.X*d.X + d.Y*d.Y
	minDist := rA + rB

	if distSq >= minDist*minDist || distSq <= minSeparation {
		return contact{}, false
	}
	dist := math.Sqrt(distSq)
	return contact{
		normal: d.Mul(1 / dist),
		depth:  minDist - dist,
	}, true
}

func circleRect(circlePos curve.Point, radius float64, rectPos curve.Point, width, height float64) (contact, bool) {
	halfW := width / 2
	halfH := height / 2

	// Closest point on or in the rectangle to the circle's center.
	closestX := clamp(circlePos.X-rectPos.X, -halfW, halfW) + rectPos.X
	closestY := clamp(circlePos.Y-rectPos.Y, -halfH, halfH) + rectPos.Y

	d := curve.Vec(circlePos.X-closestX, circlePos.Y-closestY)
	distSq := d.X*d.X + d.Y*d.Y
	if distSq >= radius*radius {
		return contact{}, false
	}

	if distSq > minSeparation {
		// Circle overlapping an edge or corner.
		dist := math.Sqrt(distSq)
		return contact{
			normal: d.Mul(1 / dist),
			depth:  radius - dist,
		}, true
	}

	// Circle center inside the rectangle; push out along the shortest axis.
	dxToEdge := halfW - math.Abs(circlePos.X-rectPos.X)
	dyToEdge := halfH - math.Abs(circlePos.Y-rectPos.Y)
	if dxToEdge < dyToEdge {
		sign := 1.0
		if circlePos.X < rectPos.X {
			sign = -1
		}
		return contact{normal: curve.Vec(sign, 0), depth: radius + dxToEdge}, true
	}
	sign := 1.0
	if circlePos.Y < rectPos.Y {
		sign = -1
	}
	return contact{normal: curve.Vec(0, sign), depth: radius + dyToEdge}, true
}

func rectRect(posA curve.Point, wA, hA float64, posB curve.Point, wB, hB float64) (contact, bool) {
	dx := posB.X - posA.X
	dy := posB.Y - posA.Y

	overlapX := (wA+wB)/2 - math.Abs(dx)
	overlapY := (hA+hB)/2 - math.Abs(dy)
	if overlapX <= 0 || overlapY <= 0 {
		return contact{}, false
	}

	// Minimum translation vector along the axis of least overlap.
	if overlapX < overlapY {
		if dx > 0 {
			return contact{normal: curve.Vec(1, 0), depth: overlapX}, true
		}
		return contact{normal: curve.Vec(-1, 0), depth: overlapX}, true
	}
	if dy > 0 {
		return contact{normal: curve.Vec(0, 1), depth: overlapY}, true
	}
	return contact{normal: curve.Vec(0, -1), depth: overlapY}, true
}

func (sys *System) resolvePair(a, b *bounce.Entity, idxA, idxB int, c contact) {
	bodyA, bodyB := a.Body, b.Body

	dynamicA := bodyA != nil && bodyA.Dynamic
	dynamicB := bodyB != nil && bodyB.Dynamic
	if !dynamicA && !dynamicB {
		return
	}

	invMassA := bodyA.InvMass()
	invMassB := bodyB.InvMass()
	totalInvMass := invMassA + invMassB

	// Positional correction, split by inverse mass so heavier bodies move
	// less.
	if totalInvMass > 0 {
		correctedDepth := max(c.depth-slop, 0)
		if invMassA > 0 {
			amount := correctedDepth * (invMassA / totalInvMass) * correctionPercent
			a.Position = curve.Point{
				X: a.Position.X - c.normal.X*amount,
				Y: a.Position.Y - c.normal.Y*amount,
			}
		}
		if invMassB > 0 {
			amount := correctedDepth * (invMassB / totalInvMass) * correctionPercent
			b.Position = curve.Point{
				X: b.Position.X + c.normal.X*amount,
				Y: b.Position.Y + c.normal.Y*amount,
			}
		}
	}

	var velA, velB curve.Vec2
	if bodyA != nil {
		velA = bodyA.Velocity
	}
	if bodyB != nil {
		velB = bodyB.Velocity
	}
	relVel := velB.Sub(velA)
	velAlongNormal := dot(relVel, c.normal)

	// Separating already; no impulse needed.
	if velAlongNormal > 0 {
		return
	}

	pair := [2]int{idxA, idxB}
	if idxB < idxA {
		pair = [2]int{idxB, idxA}
	}
	if _, ok := sys.impulseApplied[pair]; ok {
		return
	}
	sys.impulseApplied[pair] = struct{}{}

	// Geometric mean keeps a single dead surface from killing all bounce.
	restitution := math.Sqrt(restitutionOf(bodyA) * restitutionOf(bodyB))
	j := -(1 + restitution) * velAlongNormal / totalInvMass
	impulseN := c.normal.Mul(j)

	// Coulomb friction: the tangential impulse can't exceed the normal
	// impulse scaled by the friction coefficient.
	tangent := curve.Vec(-c.normal.Y, c.normal.X)
	velAlongTangent := dot(relVel, tangent)
	friction := (frictionOf(bodyA) + frictionOf(bodyB)) / 2
	frictionMag := clamp(-velAlongTangent/totalInvMass, -math.Abs(j)*friction, math.Abs(j)*friction)
	impulse := impulseN.Add(tangent.Mul(frictionMag))

	if invMassA > 0 {
		old := bodyA.Velocity
		bodyA.Velocity = bodyA.Velocity.Sub(impulse.Mul(invMassA))
		logImpulse(idxA, old, bodyA.Velocity)
	}
	if invMassB > 0 {
		old := bodyB.Velocity
		bodyB.Velocity = bodyB.Velocity.Add(impulse.Mul(invMassB))
		logImpulse(idxB, old, bodyB.Velocity)
	}
}

func logImpulse(idx int, old, now curve.Vec2) {
	slog.Debug("impulse applied",
		"entity", idx,
		"vx", now.X, "vy", now.Y,
		"dvx", now.X-old.X, "dvy", now.Y-old.Y)
}

func restitutionOf(b *bounce.Body) float64 {
	if b == nil {
		return 0.5
	}
	return b.Restitution
}

func frictionOf(b *bounce.Body) float64 {
	if b == nil {
		return 0.3
	}
	return b.Friction
}

func dot(a, b curve.Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

func clamp(x, lo, hi float64) float64 {
	return min(max(x, lo), hi)
}
