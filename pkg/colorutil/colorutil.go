// Package colorutil provides shared color utilities for the calibration tool.
package colorutil

import (
	"image/color"
	"math"
)

// Common overlay colors used throughout the application.
var (
	Black    = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red      = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green    = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue     = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	DarkBlue = color.RGBA{R: 0, G: 0, B: 139, A: 255}

	// CloudBlue is the translucent marker color for transformed cloud points.
	// NRGBA because the blue channel exceeds the alpha value.
	CloudBlue = color.NRGBA{R: 0, G: 0, B: 255, A: 100}
)

// Distance returns the Euclidean distance between two colors in RGB space,
// each channel in 0-255. Alpha is ignored.
func Distance(c1, c2 color.Color) float64 {
	r1, g1, b1 := rgb8(c1)
	r2, g2, b2 := rgb8(c2)
	dr := r1 - r2
	dg := g1 - g2
	db := b1 - b2
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// rgb8 extracts 8-bit RGB channels as floats.
func rgb8(c color.Color) (r, g, b float64) {
	r16, g16, b16, _ := c.RGBA()
	return float64(r16 >> 8), float64(g16 >> 8), float64(b16 >> 8)
}
