package image

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"landmark-calib/pkg/colorutil"
)

// DefaultTolerance is the default Euclidean color distance below which a
// pixel counts as background.
const DefaultTolerance = 10

// SegmentMode selects the background classification policy.
type SegmentMode int

const (
	// ModeFlood classifies as background only the 4-connected region
	// reachable from the sample position whose pixels stay within tolerance
	// of the seed color. Disconnected regions that merely share the
	// background color are kept as foreground.
	ModeFlood SegmentMode = iota
	// ModeGlobal classifies any pixel within tolerance of the seed color as
	// background, regardless of connectivity.
	ModeGlobal
)

// SegmentOptions configures RemoveBackground.
type SegmentOptions struct {
	// Tolerance is the maximum Euclidean RGB distance from the seed color.
	Tolerance float64
	// SamplePos is the pixel whose color is taken as the background seed,
	// relative to the image origin. Defaults to the top-left corner.
	SamplePos image.Point
	Mode      SegmentMode
}

// DefaultSegmentOptions returns the options used by the standard pipeline:
// flood fill from the top-left corner with DefaultTolerance.
func DefaultSegmentOptions() SegmentOptions {
	return SegmentOptions{Tolerance: DefaultTolerance, Mode: ModeFlood}
}

// RemoveBackground classifies pixels as background or foreground by color
// distance from the sampled seed pixel. It returns a 4-channel copy of the
// image whose alpha channel is the mask, and the mask itself (background 0,
// foreground 255). The input image is not modified.
func RemoveBackground(img image.Image, opts SegmentOptions) (*image.NRGBA, *image.Gray) {
	src := imaging.Clone(img)
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	seed := src.NRGBAAt(opts.SamplePos.X, opts.SamplePos.Y)
	seedColor := color.NRGBA{R: seed.R, G: seed.G, B: seed.B, A: 255}

	mask := image.NewGray(image.Rect(0, 0, w, h))
	for i := range mask.Pix {
		mask.Pix[i] = 255
	}

	within := func(x, y int) bool {
		px := src.NRGBAAt(x, y)
		return colorutil.Distance(color.NRGBA{R: px.R, G: px.G, B: px.B, A: 255}, seedColor) <= opts.Tolerance
	}

	switch opts.Mode {
	case ModeGlobal:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if within(x, y) {
					mask.SetGray(x, y, color.Gray{Y: 0})
				}
			}
		}
	default:
		floodFill(mask, opts.SamplePos, w, h, within)
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := src.NRGBAAt(x, y)
			px.A = mask.GrayAt(x, y).Y
			out.SetNRGBA(x, y, px)
		}
	}
	return out, mask
}

// floodFill marks the 4-connected region reachable from start as background
// (0) in mask, visiting only pixels accepted by within.
func floodFill(mask *image.Gray, start image.Point, w, h int, within func(x, y int) bool) {
	if start.X < 0 || start.X >= w || start.Y < 0 || start.Y >= h {
		return
	}
	if !within(start.X, start.Y) {
		return
	}

	visited := make([]bool, w*h)
	queue := []image.Point{start}
	visited[start.Y*w+start.X] = true
	mask.SetGray(start.X, start.Y, color.Gray{Y: 0})

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		for _, d := range [4]image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := p.X+d.X, p.Y+d.Y
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			idx := ny*w + nx
			if visited[idx] {
				continue
			}
			visited[idx] = true
			if within(nx, ny) {
				mask.SetGray(nx, ny, color.Gray{Y: 0})
				queue = append(queue, image.Point{X: nx, Y: ny})
			}
		}
	}
}
