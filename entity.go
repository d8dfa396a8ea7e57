package bounce

import (
	"honnef.co/go/color"
	"honnef.co/go/curve"
)

// Click marks an entity as responsive to pointer input.
type Click struct {
	Enabled bool
	Hovered bool
}

func NewClick() *Click {
	return &Click{Enabled: true}
}

// Entity is a position plus a shape, with optional physics and pointer
// components.
type Entity struct {
	// Position is the entity's center in normalized device coordinates.
	Position curve.Point
	Shape    Shape
	Body     *Body
	Click    *Click
}

func NewCircle(pos curve.Point, radius float64, c color.Color) *Entity {
	return &Entity{
		Position: pos,
		Shape:    Circle{Radius: radius, Color: c},
	}
}

func NewRectangle(pos curve.Point, width, height float64, c color.Color) *Entity {
	return &Entity{
		Position: pos,
		Shape:    Rectangle{Width: width, Height: height, Color: c},
	}
}

func NewLabel(pos curve.Point, text string, size float64, c color.Color) *Entity {
	return &Entity{
		Position: pos,
		Shape:    Label{Text: text, Size: size, Color: c},
	}
}

func (ent *Entity) WithBody(b *Body) *Entity {
	ent.Body = b
	return ent
}

func (ent *Entity) WithClick(c *Click) *Entity {
	ent.Click = c
	return ent
}

// ContainsPoint reports whether a point in normalized device coordinates
// lies inside the entity's shape.
func (ent *Entity) ContainsPoint(pt curve.Point) bool {
	local := curve.Vec(pt.X-ent.Position.X, pt.Y-ent.Position.Y)
	return ent.Shape.Contains(local)
}
