package image

import (
	"image"
)

// canvasPadding is the margin left around content when fitting to a canvas.
const canvasPadding = 25

// NormalizeOptions configures the standard preprocessing pipeline.
type NormalizeOptions struct {
	// CanvasSize is the square display canvas the image must fit into.
	CanvasSize int
	// Border is the autocrop border applied in the final framing pass.
	Border int
	// Tolerance is the background segmentation color tolerance. Zero means
	// DefaultTolerance.
	Tolerance float64
}

// DefaultNormalizeOptions returns the pipeline settings used by the
// interactive tool: a 700px canvas with a 50px framing border.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{CanvasSize: 700, Border: 50, Tolerance: DefaultTolerance}
}

// Normalize runs the standard three-stage pipeline: autocrop to remove
// incidental borders, resize to fit the canvas, then autocrop again with a
// fixed margin so the object is framed consistently regardless of input
// image variation. Each stage produces a fresh buffer.
func Normalize(img image.Image, opts NormalizeOptions) (*image.NRGBA, error) {
	tolerance := opts.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}

	cropped, err := AutoCropWithTolerance(img, 0, tolerance)
	if err != nil {
		return nil, err
	}

	scaled := ResizeToFit(cropped, opts.CanvasSize-2*canvasPadding)

	framed, err := AutoCropWithTolerance(scaled, opts.Border, tolerance)
	if err != nil {
		return nil, err
	}
	return framed, nil
}
