package bounce

import (
	"honnef.co/go/color"
	"honnef.co/go/curve"
)

// Shape is the visual of an entity. One of Circle, Rectangle, and Label.
type Shape interface {
	// Contains reports whether a point, relative to the shape's center,
	// lies inside the shape. Used for pointer picking.
	Contains(local curve.Vec2) bool

	isShape()
}

// Circle is a filled disc. All lengths are in normalized device
// coordinates.
type Circle struct {
	Radius float64
	Color  color.Color
}

// Rectangle is an axis-aligned filled rectangle centered on the entity's
// position. All lengths are in normalized device coordinates.
type Rectangle struct {
	Width  float64
	Height float64
	Color  color.Color
}

// Label is a piece of text anchored at the entity's position. It has no
// instanced pipeline; hosts that render text draw it separately.
type Label struct {
	Text  string
	Size  float64
	Color color.Color
}

// labelPickRadius approximates a label's extent for pointer picking,
// since labels have no measured bounding box.
const labelPickRadius = 0.1

func (Circle) isShape()    {}
func (Rectangle) isShape() {}
func (Label) isShape()     {}

func (c Circle) Contains(local curve.Vec2) bool {
	return local.Hypot() <= c.Radius
}

func (r Rectangle) Contains(local curve.Vec2) bool {
	return abs64(local.X) <= r.Width/2 && abs64(local.Y) <= r.Height/2
}

func (l Label) Contains(local curve.Vec2) bool {
	return local.Hypot() <= labelPickRadius
}

func abs64(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
