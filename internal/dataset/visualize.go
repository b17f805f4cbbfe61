package dataset

import (
	"image"

	"github.com/fogleman/gg"

	"landmark-calib/pkg/colorutil"
	"landmark-calib/pkg/geometry"
)

// cloudDotRadius is the marker size used in the cloud visualization.
const cloudDotRadius = 2

// RenderCloud draws a scaled point cloud as black dots on a white canvas,
// with pad pixels of margin around the content. The result is the
// visualization the user picks source landmarks on, so it then goes through
// the same autocrop framing as the reference image.
func RenderCloud(points []geometry.Point2D, pad int) image.Image {
	box := geometry.BoundingBox(points)
	w := int(box.X+box.Width) + 2*pad
	h := int(box.Y+box.Height) + 2*pad
	if w < 2*pad {
		w = 2 * pad
	}
	if h < 2*pad {
		h = 2 * pad
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(colorutil.White)
	dc.Clear()

	dc.SetColor(colorutil.Black)
	for _, p := range points {
		dc.DrawCircle(p.X+float64(pad), p.Y+float64(pad), cloudDotRadius)
		dc.Fill()
	}
	return dc.Image()
}
