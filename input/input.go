// Package input translates raw windowing events into application
// commands. It is host-agnostic: whatever window library drives the
// application feeds key and pointer events in.
package input

import (
	"honnef.co/go/bounce"
	"honnef.co/go/curve"
)

// Key identifies a physical key, independent of any window library.
type Key int

const (
	KeyEscape Key = iota + 1
	KeySpace
	KeyP
	KeyC
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
)

func (m Modifiers) Control() bool { return m&ModControl != 0 }
func (m Modifiers) Shift() bool   { return m&ModShift != 0 }

// Command is an application-level action derived from input.
type Command int

const (
	Exit Command = iota + 1
	TogglePause
)

// System tracks modifier and pointer state and maps keys to commands.
type System struct {
	Modifiers Modifiers

	cursor    curve.Point
	hasCursor bool
}

func NewSystem() *System {
	return &System{}
}

func (sys *System) SetModifiers(m Modifiers) {
	sys.Modifiers = m
}

// SetCursor records the pointer position in physical pixels, already
// converted to NDC by the caller via PointerNDC.
func (sys *System) SetCursor(pt curve.Point) {
	sys.cursor = pt
	sys.hasCursor = true
}

// Cursor returns the last pointer position and whether one was seen.
func (sys *System) Cursor() (curve.Point, bool) {
	return sys.cursor, sys.hasCursor
}

// HandleKey maps a key press to a command. The second return value is
// false for keys that mean nothing in the current modifier state.
func (sys *System) HandleKey(key Key) (Command, bool) {
	switch key {
	case KeyEscape:
		return Exit, true
	case KeyC:
		if sys.Modifiers.Control() {
			return Exit, true
		}
		return 0, false
	case KeyP, KeySpace:
		return TogglePause, true
	default:
		return 0, false
	}
}

// PointerNDC converts a physical pixel position to normalized device
// coordinates, with y up. Degenerate target sizes map to the origin.
func PointerNDC(x, y float64, width, height int) curve.Point {
	if width <= 0 || height <= 0 {
		return curve.Point{}
	}
	return curve.Point{
		X: x/float64(width)*2 - 1,
		Y: 1 - y/float64(height)*2,
	}
}

// UpdateHover refreshes the Hovered flag of every clickable entity for
// the current pointer position.
func (sys *System) UpdateHover(w *bounce.World) {
	if !sys.hasCursor {
		return
	}
	top := w.EntityAt(sys.cursor)
	for _, ent := range w.Entities() {
		if ent.Click != nil {
			ent.Click.Hovered = ent == top
		}
	}
}
