package renderer

import (
	"github.com/chewxy/math32"
)

// This file is the reference implementation of the two pipelines' stages.
// It computes exactly what the WGSL programs compute, per vertex and per
// fragment, and is what the software engine and the tests run.

// RectangleVaryings is the rectangle pipeline's vertex stage output.
type RectangleVaryings struct {
	// Position in clip space, z=0, w=1.
	Position [4]float32
	Color    [3]float32
}

// CircleVaryings is the circle pipeline's vertex stage output. Local and
// Radius are interpolated across the quad so the fragment stage can
// evaluate the disc mask per pixel.
type CircleVaryings struct {
	// Position in clip space, z=0, w=1.
	Position [4]float32
	// Local is the position relative to the circle's center, before
	// translation.
	Local  [2]float32
	Color  [3]float32
	Radius float32
}

// RectangleVertex scales the unit quad by the rectangle's half-extents and
// translates it to the instance's center. A negative width or height
// mirror-flips the quad; that is visually indistinguishable for a solid
// fill and deliberately not validated.
func RectangleVertex(v QuadVertex, inst RectangleInstance) RectangleVaryings {
	x := v.Position[0]*inst.Width/2 + inst.Center[0]
	y := v.Position[1]*inst.Height/2 + inst.Center[1]
	return RectangleVaryings{
		Position: [4]float32{x, y, 0, 1},
		Color:    inst.Color,
	}
}

// RectangleFragment emits the interpolated color at full opacity. Edges
// are left to the rasterizer's coverage; the stage applies no edge
// treatment of its own.
func RectangleFragment(vy RectangleVaryings) [4]float32 {
	return [4]float32{vy.Color[0], vy.Color[1], vy.Color[2], 1}
}

// CircleVertex scales the unit quad uniformly by the radius and translates
// it to the instance's center. A non-positive radius collapses or inverts
// the quad, yielding an invisible disc.
func CircleVertex(v QuadVertex, inst CircleInstance) CircleVaryings {
	lx := v.Position[0] * inst.Radius
	ly := v.Position[1] * inst.Radius
	return CircleVaryings{
		Position: [4]float32{lx + inst.Center[0], ly + inst.Center[1], 0, 1},
		Local:    [2]float32{lx, ly},
		Color:    inst.Color,
		Radius:   inst.Radius,
	}
}

// CircleFragment masks the quad to a smooth-edged disc. edgeWidth is the
// screen-space rate of change of the distance value, i.e. what fwidth(dist)
// evaluates to on the GPU; it sizes the anti-aliasing band to one pixel
// regardless of circle scale or resolution.
func CircleFragment(vy CircleVaryings, edgeWidth float32) [4]float32 {
	dist := math32.Hypot(vy.Local[0], vy.Local[1])
	alpha := 1 - Smoothstep(vy.Radius-edgeWidth, vy.Radius+edgeWidth, dist)
	return [4]float32{vy.Color[0], vy.Color[1], vy.Color[2], alpha}
}

// Smoothstep is the standard cubic Hermite interpolation: 0 for x <= lo,
// 1 for x >= hi, and a smooth ease in between.
func Smoothstep(lo, hi, x float32) float32 {
	if lo == hi {
		// Degenerate band; fall back to a step.
		if x < lo {
			return 0
		}
		return 1
	}
	t := (x - lo) / (hi - lo)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
