package image

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"landmark-calib/pkg/colorutil"
)

// ResizeToFit scales an image so its larger dimension equals maxDim,
// preserving aspect ratio, using Lanczos resampling. The smaller dimension
// is rounded; a zero input dimension returns an unscaled copy.
func ResizeToFit(img image.Image, maxDim int) *image.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 || maxDim <= 0 {
		return imaging.Clone(img)
	}

	// Passing 0 for the other dimension keeps the aspect ratio exact.
	if w >= h {
		return imaging.Resize(img, maxDim, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, maxDim, imaging.Lanczos)
}

// PadToCenter places an image at the center of a larger black canvas of the
// given size. The content offset is (target-source)/2 on each axis. Fails
// when the target is smaller than the source in either dimension.
func PadToCenter(img image.Image, width, height int) (*image.NRGBA, error) {
	bounds := img.Bounds()
	if bounds.Dx() > width || bounds.Dy() > height {
		return nil, errors.Errorf("pad target %dx%d is smaller than source %dx%d",
			width, height, bounds.Dx(), bounds.Dy())
	}

	canvas := imaging.New(width, height, colorutil.Black)
	return imaging.PasteCenter(canvas, img), nil
}
