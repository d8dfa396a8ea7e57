// Package renderer describes the instanced primitive pipelines: the
// per-instance data layouts, the WGSL programs, and a pure Go reference
// implementation of their stages. It doesn't touch a GPU; the engines
// under engine/ execute what this package describes.
package renderer

import (
	"structs"

	"honnef.co/go/bounce"
	"honnef.co/go/bounce/gfx"
	"honnef.co/go/color"
)

// QuadVertex is one corner of the shared unit quad, in [-1, 1] local
// space. Both pipelines draw the same quad per instance.
type QuadVertex struct {
	_ structs.HostLayout

	Position [2]float32
}

// QuadVertices is the unit quad as a triangle list.
var QuadVertices = [6]QuadVertex{
	{Position: [2]float32{-1, -1}},
	{Position: [2]float32{1, -1}},
	{Position: [2]float32{1, 1}},
	{Position: [2]float32{-1, -1}},
	{Position: [2]float32{1, 1}},
	{Position: [2]float32{-1, 1}},
}

// RectangleInstance is the per-instance data of the rectangle pipeline.
//
// The field order is part of the wire format; hosts bind instance buffers
// against it.
type RectangleInstance struct {
	_ structs.HostLayout

	// Center of the rectangle in normalized device coordinates.
	Center [2]float32
	Width  float32
	Height float32
	// Color as linear sRGB.
	Color [3]float32
}

// CircleInstance is the per-instance data of the circle pipeline.
//
// The field order is part of the wire format; hosts bind instance buffers
// against it.
type CircleInstance struct {
	_ structs.HostLayout

	// Center of the circle in normalized device coordinates.
	Center [2]float32
	Radius float32
	// Color as linear sRGB.
	Color [3]float32
}

// LabelItem is a piece of text to be drawn by hosts that support it.
// Labels have no instanced pipeline.
type LabelItem struct {
	Position [2]float32
	Text     string
	Size     float32
	Color    [3]float32
}

// RenderParams are the target parameters of one frame.
type RenderParams struct {
	BaseColor color.Color
	Width     uint32
	Height    uint32
}

// DisplayList holds one frame's instances, bucketed by pipeline. The
// backing arrays are reused across frames.
type DisplayList struct {
	Rectangles []RectangleInstance
	Circles    []CircleInstance
	Labels     []LabelItem
}

func (dl *DisplayList) Reset() {
	dl.Rectangles = dl.Rectangles[:0]
	dl.Circles = dl.Circles[:0]
	dl.Labels = dl.Labels[:0]
}

// Append collects the world's entities into the display list. Shapes with
// non-positive extents are kept; the stages define their degenerate
// behavior.
func (dl *DisplayList) Append(w *bounce.World) {
	for _, ent := range w.Entities() {
		pos := [2]float32{float32(ent.Position.X), float32(ent.Position.Y)}
		switch shape := ent.Shape.(type) {
		case bounce.Circle:
			dl.Circles = append(dl.Circles, CircleInstance{
				Center: pos,
				Radius: float32(shape.Radius),
				Color:  gfx.Linear32(&shape.Color),
			})
		case bounce.Rectangle:
			dl.Rectangles = append(dl.Rectangles, RectangleInstance{
				Center: pos,
				Width:  float32(shape.Width),
				Height: float32(shape.Height),
				Color:  gfx.Linear32(&shape.Color),
			})
		case bounce.Label:
			dl.Labels = append(dl.Labels, LabelItem{
				Position: pos,
				Text:     shape.Text,
				Size:     float32(shape.Size),
				Color:    gfx.Linear32(&shape.Color),
			})
		}
	}
}
