package swshade

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"honnef.co/go/bounce/renderer"
)

// Labels are drawn with a fixed bitmap face. The face ignores the label's
// size; it exists for debug text, not typography.
var face = basicfont.Face7x13

func (r *Renderer) drawLabel(img *image.RGBA, l renderer.LabelItem) {
	px, py := r.ndcToPixel(l.Position[0], l.Position[1])
	drawText(img, int(px), int(py), l.Text, linearToColor(l.Color))
}

// DrawOverlay draws multi-line text into the bottom-right corner of an
// image, for the frame stats readout.
func DrawOverlay(img *image.RGBA, text string) {
	lines := strings.Split(text, "\n")
	lineH := face.Metrics().Height.Ceil()
	const margin = 12

	widest := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > widest {
			widest = w
		}
	}

	bounds := img.Bounds()
	x := max(bounds.Max.X-widest-margin, margin)
	y := max(bounds.Max.Y-lineH*len(lines)-margin, margin)
	for i, line := range lines {
		drawText(img, x, y+(i+1)*lineH, line, overlayColor)
	}
}

var overlayColor = linearToColor([3]float32{1, 1, 0.4})

func drawText(img *image.RGBA, x, y int, text string, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
