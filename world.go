// Package bounce models a small world of 2D primitives in normalized
// device coordinates: circles, rectangles, and labels, optionally with
// rigid-body state. The renderer package turns a world into instance
// streams for the shading pipelines; the physics package advances it.
package bounce

import (
	"honnef.co/go/curve"
)

// World owns all entities and provides query access for the systems that
// operate on them.
type World struct {
	entities []*Entity
}

func NewWorld() *World {
	return &World{}
}

func (w *World) Add(ent *Entity) {
	w.entities = append(w.entities, ent)
}

func (w *World) Entities() []*Entity {
	return w.entities
}

func (w *World) Clear() {
	w.entities = w.entities[:0]
}

// EntityAt returns the topmost clickable entity containing the point, or
// nil. Entities added later are considered on top.
func (w *World) EntityAt(pt curve.Point) *Entity {
	for i := len(w.entities) - 1; i >= 0; i-- {
		ent := w.entities[i]
		if ent.Click == nil || !ent.Click.Enabled {
			continue
		}
		if ent.ContainsPoint(pt) {
			return ent
		}
	}
	return nil
}
