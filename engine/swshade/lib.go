// Package swshade executes the instanced primitive pipelines on the CPU.
// It evaluates the same stages the WGSL programs run, per pixel, into an
// image. Hosts use it for headless rendering and tests use it as the
// reference rasterizer.
//
// Rectangle edges rely on rasterizer coverage on the GPU; this rasterizer
// samples at pixel centers, so rectangle edges are hard. Circle edges are
// anti-aliased by the fragment stage itself and match the GPU output.
package swshade

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"honnef.co/go/bounce/gfx"
	"honnef.co/go/bounce/profiler"
	"honnef.co/go/bounce/renderer"
)

type Renderer struct {
	// Linear-light working framebuffer, RGBA, premultiplied not needed:
	// blending happens with straight alpha before conversion to sRGB.
	fb     []float32
	width  int
	height int
}

func New() *Renderer {
	return &Renderer{}
}

// Render draws the display list into a new image. The framebuffer works
// in linear light and is converted to 8-bit sRGB at the end.
func (r *Renderer) Render(dl *renderer.DisplayList, params *renderer.RenderParams, pgroup profiler.ProfilerGroup) *image.RGBA {
	pgroup = pgroup.Start("Render")
	defer pgroup.End()

	r.width = int(params.Width)
	r.height = int(params.Height)
	if need := r.width * r.height * 4; cap(r.fb) < need {
		r.fb = make([]float32, need)
	} else {
		r.fb = r.fb[:need]
	}

	base := gfx.Premul32(&params.BaseColor)
	for i := 0; i < len(r.fb); i += 4 {
		r.fb[i+0] = base[0]
		r.fb[i+1] = base[1]
		r.fb[i+2] = base[2]
		r.fb[i+3] = base[3]
	}

	span := pgroup.Start("rectangles")
	for _, inst := range dl.Rectangles {
		r.drawRectangle(inst)
	}
	span.End()

	span = pgroup.Start("circles")
	for _, inst := range dl.Circles {
		r.drawCircle(inst)
	}
	span.End()

	img := r.resolve()

	span = pgroup.Start("labels")
	for _, l := range dl.Labels {
		r.drawLabel(img, l)
	}
	span.End()

	return img
}

// ndcToPixel maps normalized device coordinates to continuous pixel
// coordinates, y flipped.
func (r *Renderer) ndcToPixel(x, y float32) (float32, float32) {
	return (x + 1) / 2 * float32(r.width), (1 - y) / 2 * float32(r.height)
}

// pixelCenterNDC maps a pixel's center back to normalized device
// coordinates.
func (r *Renderer) pixelCenterNDC(ix, iy int) (float32, float32) {
	x := (float32(ix)+0.5)/float32(r.width)*2 - 1
	y := 1 - (float32(iy)+0.5)/float32(r.height)*2
	return x, y
}

// quadBounds returns the pixel bounding box of an instance's quad given
// two opposite transformed corners, clamped to the target.
func (r *Renderer) quadBounds(x0, y0, x1, y1 float32) (minX, minY, maxX, maxY int, ok bool) {
	px0, py0 := r.ndcToPixel(x0, y0)
	px1, py1 := r.ndcToPixel(x1, y1)
	if px1 < px0 {
		px0, px1 = px1, px0
	}
	if py1 < py0 {
		py0, py1 = py1, py0
	}
	minX = max(int(math32.Floor(px0)), 0)
	minY = max(int(math32.Floor(py0)), 0)
	maxX = min(int(math32.Ceil(px1)), r.width)
	maxY = min(int(math32.Ceil(py1)), r.height)
	return minX, minY, maxX, maxY, minX < maxX && minY < maxY
}

func (r *Renderer) drawRectangle(inst renderer.RectangleInstance) {
	// Two opposite corners pin down the whole axis-aligned quad. Negative
	// extents mirror-flip; quadBounds reorders.
	c0 := renderer.RectangleVertex(renderer.QuadVertices[0], inst)
	c1 := renderer.RectangleVertex(renderer.QuadVertices[2], inst)
	minX, minY, maxX, maxY, ok := r.quadBounds(c0.Position[0], c0.Position[1], c1.Position[0], c1.Position[1])
	if !ok {
		return
	}

	ndcX0 := min(c0.Position[0], c1.Position[0])
	ndcX1 := max(c0.Position[0], c1.Position[0])
	ndcY0 := min(c0.Position[1], c1.Position[1])
	ndcY1 := max(c0.Position[1], c1.Position[1])

	for iy := minY; iy < maxY; iy++ {
		for ix := minX; ix < maxX; ix++ {
			x, y := r.pixelCenterNDC(ix, iy)
			if x < ndcX0 || x > ndcX1 || y < ndcY0 || y > ndcY1 {
				continue
			}
			out := renderer.RectangleFragment(renderer.RectangleVaryings{
				Position: [4]float32{x, y, 0, 1},
				Color:    inst.Color,
			})
			r.blend(ix, iy, out)
		}
	}
}

func (r *Renderer) drawCircle(inst renderer.CircleInstance) {
	c0 := renderer.CircleVertex(renderer.QuadVertices[0], inst)
	c1 := renderer.CircleVertex(renderer.QuadVertices[2], inst)
	minX, minY, maxX, maxY, ok := r.quadBounds(c0.Position[0], c0.Position[1], c1.Position[0], c1.Position[1])
	if !ok {
		return
	}

	// NDC step per pixel, for the derivative-based edge width.
	stepX := 2 / float32(r.width)
	stepY := 2 / float32(r.height)

	for iy := minY; iy < maxY; iy++ {
		for ix := minX; ix < maxX; ix++ {
			x, y := r.pixelCenterNDC(ix, iy)
			lx := x - inst.Center[0]
			ly := y - inst.Center[1]

			// fwidth(dist) with exact derivatives: dist changes by
			// lx/dist per NDC unit in x, ly/dist in y.
			dist := math32.Hypot(lx, ly)
			var edge float32
			if dist > 0 {
				edge = (math32.Abs(lx)*stepX + math32.Abs(ly)*stepY) / dist
			}

			out := renderer.CircleFragment(renderer.CircleVaryings{
				Position: [4]float32{x, y, 0, 1},
				Local:    [2]float32{lx, ly},
				Color:    inst.Color,
				Radius:   inst.Radius,
			}, edge)
			if out[3] <= 0 {
				continue
			}
			r.blend(ix, iy, out)
		}
	}
}

// blend applies one fragment with source-over blending, the same blend
// state the GPU circle pipeline uses. Opaque fragments overwrite.
func (r *Renderer) blend(ix, iy int, src [4]float32) {
	i := (iy*r.width + ix) * 4
	a := src[3]
	r.fb[i+0] = src[0]*a + r.fb[i+0]*(1-a)
	r.fb[i+1] = src[1]*a + r.fb[i+1]*(1-a)
	r.fb[i+2] = src[2]*a + r.fb[i+2]*(1-a)
	r.fb[i+3] = a + r.fb[i+3]*(1-a)
}

func (r *Renderer) resolve() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for i := 0; i < len(r.fb); i += 4 {
		o := i
		img.Pix[o+0] = linearToSRGB8(r.fb[i+0])
		img.Pix[o+1] = linearToSRGB8(r.fb[i+1])
		img.Pix[o+2] = linearToSRGB8(r.fb[i+2])
		img.Pix[o+3] = uint8(min(max(r.fb[i+3], 0), 1)*255 + 0.5)
	}
	return img
}

func linearToSRGB8(v float32) uint8 {
	v = min(max(v, 0), 1)
	var s float32
	if v <= 0.0031308 {
		s = v * 12.92
	} else {
		s = 1.055*math32.Pow(v, 1/2.4) - 0.055
	}
	return uint8(s*255 + 0.5)
}

func linearToColor(c [3]float32) color.RGBA {
	return color.RGBA{
		R: linearToSRGB8(c[0]),
		G: linearToSRGB8(c[1]),
		B: linearToSRGB8(c[2]),
		A: 255,
	}
}
