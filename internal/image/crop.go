package image

import (
	"image"
	"image/draw"
)

// EmptyForegroundError indicates that autocrop found no foreground pixels:
// the image is uniformly one color and there is nothing to crop to.
type EmptyForegroundError struct{}

func (e *EmptyForegroundError) Error() string {
	return "autocrop found no foreground pixels in image"
}

// AutoCrop crops an image to the bounding box of its non-background
// content. The image is first padded by border pixels using the top-left
// corner color as fill, so content touching the edges stays segmentable;
// the background is then flood-segmented from the top-left corner and the
// foreground bounding box re-expanded by border/2 on each side.
func AutoCrop(img image.Image, border int) (*image.NRGBA, error) {
	return AutoCropWithTolerance(img, border, DefaultTolerance)
}

// AutoCropWithTolerance is AutoCrop with an explicit segmentation color
// tolerance.
func AutoCropWithTolerance(img image.Image, border int, tolerance float64) (*image.NRGBA, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Pad with the corner color. border is the total growth per axis, with
	// the original content offset by border/2, matching the re-expansion
	// below.
	corner := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	draw.Draw(corner, corner.Bounds(), img, bounds.Min, draw.Src)
	fill := corner.NRGBAAt(0, 0)

	padded := image.NewNRGBA(image.Rect(0, 0, w+border, h+border))
	for y := 0; y < h+border; y++ {
		for x := 0; x < w+border; x++ {
			padded.SetNRGBA(x, y, fill)
		}
	}
	offset := border / 2
	draw.Draw(padded, image.Rect(offset, offset, offset+w, offset+h), img, bounds.Min, draw.Src)

	opts := DefaultSegmentOptions()
	opts.Tolerance = tolerance
	_, mask := RemoveBackground(padded, opts)

	// Bounding box of foreground pixels.
	minX, minY := padded.Bounds().Dx(), padded.Bounds().Dy()
	maxX, maxY := -1, -1
	for y := 0; y < padded.Bounds().Dy(); y++ {
		for x := 0; x < padded.Bounds().Dx(); x++ {
			if mask.GrayAt(x, y).Y == 255 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < 0 {
		return nil, &EmptyForegroundError{}
	}

	crop := image.Rect(minX-offset, minY-offset, maxX+offset+1, maxY+offset+1)
	crop = crop.Intersect(padded.Bounds())

	out := image.NewNRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Draw(out, out.Bounds(), padded, crop.Min, draw.Src)
	return out, nil
}
