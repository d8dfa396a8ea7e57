// Copyright 2025 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gfx

import (
	"honnef.co/go/color"
)

// SRGB returns an opaque color from sRGB components in [0, 1].
func SRGB(r, g, b float64) color.Color {
	return color.Color{
		Space:  color.SRGB,
		Values: [4]float64{r, g, b, 1},
	}
}

// Linear32 returns the color as linear sRGB values, in the form the
// instance streams carry them.
func Linear32(c *color.Color) [3]float32 {
	cc := c.Convert(color.LinearSRGB)
	return [3]float32{
		float32(cc.Values[0]),
		float32(cc.Values[1]),
		float32(cc.Values[2]),
	}
}

// Premul32 returns the alpha-premultiplied color as linear sRGB values.
func Premul32(c *color.Color) [4]float32 {
	cc := c.Convert(color.LinearSRGB)
	r := cc.Values[0]
	g := cc.Values[1]
	b := cc.Values[2]
	a := cc.Values[3]

	return [4]float32{
		float32(r * a),
		float32(g * a),
		float32(b * a),
		float32(a),
	}
}
