// Copyright 2025 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package bounce

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/bounce/gfx"
	"honnef.co/go/curve"
)

func TestShapeContains(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		local curve.Vec2
		want  bool
	}{
		{"circle center", Circle{Radius: 0.5}, curve.Vec(0, 0), true},
		{"circle inside", Circle{Radius: 0.5}, curve.Vec(0.3, 0.3), true},
		{"circle on edge", Circle{Radius: 0.5}, curve.Vec(0.5, 0), true},
		{"circle outside", Circle{Radius: 0.5}, curve.Vec(0.4, 0.4), false},
		{"rect inside", Rectangle{Width: 1, Height: 0.5}, curve.Vec(0.4, -0.2), true},
		{"rect outside x", Rectangle{Width: 1, Height: 0.5}, curve.Vec(0.6, 0), false},
		{"rect outside y", Rectangle{Width: 1, Height: 0.5}, curve.Vec(0, 0.3), false},
		{"rect corner", Rectangle{Width: 1, Height: 0.5}, curve.Vec(0.5, 0.25), true},
		{"label near", Label{Text: "x"}, curve.Vec(0.05, 0), true},
		{"label far", Label{Text: "x"}, curve.Vec(0.2, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shape.Contains(tt.local))
		})
	}
}

func TestEntityContainsPoint(t *testing.T) {
	ent := NewCircle(curve.Point{X: 0.5, Y: -0.5}, 0.2, gfx.SRGB(1, 0, 0))
	assert.True(t, ent.ContainsPoint(curve.Point{X: 0.6, Y: -0.5}))
	assert.False(t, ent.ContainsPoint(curve.Point{X: 0.5, Y: 0.5}))
}

func TestEntityAtPicksTopmost(t *testing.T) {
	w := NewWorld()
	bottom := NewCircle(curve.Point{}, 0.5, gfx.SRGB(1, 0, 0)).WithClick(NewClick())
	top := NewCircle(curve.Point{}, 0.5, gfx.SRGB(0, 1, 0)).WithClick(NewClick())
	w.Add(bottom)
	w.Add(top)

	got := w.EntityAt(curve.Point{X: 0.1, Y: 0.1})
	require.NotNil(t, got)
	assert.Same(t, top, got)
}

func TestEntityAtSkipsUnclickable(t *testing.T) {
	w := NewWorld()
	plain := NewCircle(curve.Point{}, 0.5, gfx.SRGB(1, 0, 0))
	disabled := NewCircle(curve.Point{}, 0.5, gfx.SRGB(0, 1, 0)).WithClick(&Click{Enabled: false})
	w.Add(plain)
	w.Add(disabled)

	assert.Nil(t, w.EntityAt(curve.Point{}))

	clickable := NewCircle(curve.Point{}, 0.5, gfx.SRGB(0, 0, 1)).WithClick(NewClick())
	w.Add(clickable)
	assert.Same(t, clickable, w.EntityAt(curve.Point{}))
}

func TestWorldClear(t *testing.T) {
	w := NewWorld()
	w.Add(NewCircle(curve.Point{}, 0.1, gfx.SRGB(1, 1, 1)))
	require.Len(t, w.Entities(), 1)
	w.Clear()
	assert.Empty(t, w.Entities())
}

func TestBodyInvMass(t *testing.T) {
	var nilBody *Body
	assert.Equal(t, 0.0, nilBody.InvMass())

	static := NewStaticBody()
	assert.Equal(t, 0.0, static.InvMass())
	assert.True(t, math.IsInf(static.Mass, 1))

	dynamic := NewBody()
	assert.Equal(t, 1.0, dynamic.InvMass())

	dynamic.Mass = 4
	assert.Equal(t, 0.25, dynamic.InvMass())
}

func TestBodyDefaults(t *testing.T) {
	b := NewBody()
	assert.True(t, b.Dynamic)
	assert.True(t, b.Gravity)
	assert.Equal(t, 0.8, b.Restitution)
	assert.Equal(t, 0.5, b.Friction)

	s := NewStaticBody()
	assert.False(t, s.Dynamic)
	assert.False(t, s.Gravity)
}

func TestBodyWithVelocity(t *testing.T) {
	b := NewBody().WithVelocity(curve.Vec(0.2, -0.1))
	assert.Equal(t, curve.Vec(0.2, -0.1), b.Velocity)
}
