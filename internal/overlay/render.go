// Package overlay renders a visual QA image for a calibration result: the
// transformed data cloud and the landmark pairs drawn over the reference
// image, so the distance between paired markers shows each residual.
package overlay

import (
	"image"

	"github.com/fogleman/gg"

	"landmark-calib/pkg/colorutil"
	"landmark-calib/pkg/geometry"
)

// Options configures marker rendering.
type Options struct {
	// CanvasSize is the minimum output dimension; the canvas grows to hold
	// the base image if that is larger. Zero means base image size.
	CanvasSize int

	CloudRadius    float64 // radius of transformed cloud dots
	CrossHalfWidth float64 // half-length of reference cross arms
	CrossLineWidth float64
	LandmarkRadius float64 // radius of transformed landmark circles
}

// DefaultOptions returns the marker sizes used by the interactive tool.
func DefaultOptions() Options {
	return Options{
		CloudRadius:    2,
		CrossHalfWidth: 5,
		CrossLineWidth: 2,
		LandmarkRadius: 4,
	}
}

// Render composites the calibration overlay onto a copy of base. Every
// point of cloud is transformed and drawn as a small translucent dot;
// each paired reference point is drawn as a cross and the corresponding
// transformed source point as a filled outlined circle. base is never
// mutated.
func Render(base image.Image, cloud, refPairs, srcPairs []geometry.Point2D,
	transform geometry.AffineTransform, opts Options) image.Image {

	bounds := base.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if opts.CanvasSize > w {
		w = opts.CanvasSize
	}
	if opts.CanvasSize > h {
		h = opts.CanvasSize
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(colorutil.White)
	dc.Clear()
	dc.DrawImage(base, 0, 0)

	// The whole transformed cloud, not just the landmarks: shows how the
	// entire dataset maps onto the image.
	dc.SetColor(colorutil.CloudBlue)
	for _, p := range transform.ApplyAll(cloud) {
		dc.DrawCircle(p.X, p.Y, opts.CloudRadius)
		dc.Fill()
	}

	// Reference landmarks as crosses. These are the ground truth positions.
	dc.SetColor(colorutil.Red)
	dc.SetLineWidth(opts.CrossLineWidth)
	for _, p := range refPairs {
		dc.DrawLine(p.X-opts.CrossHalfWidth, p.Y, p.X+opts.CrossHalfWidth, p.Y)
		dc.DrawLine(p.X, p.Y-opts.CrossHalfWidth, p.X, p.Y+opts.CrossHalfWidth)
		dc.Stroke()
	}

	// Transformed source landmarks. The gap to the matching cross is that
	// pair's residual.
	for _, p := range transform.ApplyAll(srcPairs) {
		dc.DrawCircle(p.X, p.Y, opts.LandmarkRadius)
		dc.SetColor(colorutil.DarkBlue)
		dc.FillPreserve()
		dc.SetColor(colorutil.Black)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	return dc.Image()
}
