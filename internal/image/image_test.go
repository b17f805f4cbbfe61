package image

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleImage is a 100x100 uniform-255 background with a 20x30 block of
// color (10,20,30) at rows 40-59, cols 35-64.
func sampleImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	block := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if y >= 40 && y < 60 && x >= 35 && x < 65 {
				img.SetNRGBA(x, y, block)
			} else {
				img.SetNRGBA(x, y, white)
			}
		}
	}
	return img
}

func TestAutoCropNoBorder(t *testing.T) {
	cropped, err := AutoCrop(sampleImage(), 0)
	require.NoError(t, err)

	assert.Equal(t, 30, cropped.Bounds().Dx())
	assert.Equal(t, 20, cropped.Bounds().Dy())
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, cropped.NRGBAAt(0, 0))
}

func TestAutoCropWithBorder(t *testing.T) {
	cropped, err := AutoCrop(sampleImage(), 10)
	require.NoError(t, err)

	assert.Equal(t, 40, cropped.Bounds().Dx())
	assert.Equal(t, 30, cropped.Bounds().Dy())
}

func TestAutoCropEmptyForeground(t *testing.T) {
	uniform := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	for i := range uniform.Pix {
		uniform.Pix[i] = 200
	}

	_, err := AutoCrop(uniform, 0)
	var fgErr *EmptyForegroundError
	require.ErrorAs(t, err, &fgErr)
}

func TestRemoveBackgroundFlood(t *testing.T) {
	src := sampleImage()
	rgba, mask := RemoveBackground(src, DefaultSegmentOptions())

	// Corner is background, block interior is foreground.
	assert.Equal(t, uint8(0), mask.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), mask.GrayAt(50, 50).Y)

	// Output carries the mask as alpha and the original color channels.
	assert.Equal(t, uint8(0), rgba.NRGBAAt(0, 0).A)
	px := rgba.NRGBAAt(50, 50)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, px)

	// The input buffer is untouched.
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, src.NRGBAAt(0, 0))
}

func TestRemoveBackgroundFloodIgnoresDisconnected(t *testing.T) {
	// A white background with a black frame splitting off a disconnected
	// white area: flood from the corner must leave the enclosed white area
	// as foreground, global mode must not.
	img := image.NewNRGBA(image.Rect(0, 0, 30, 30))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.NRGBA{A: 255}
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			img.SetNRGBA(x, y, white)
		}
	}
	for i := 5; i < 25; i++ {
		img.SetNRGBA(i, 5, black)
		img.SetNRGBA(i, 24, black)
		img.SetNRGBA(5, i, black)
		img.SetNRGBA(24, i, black)
	}

	_, floodMask := RemoveBackground(img, SegmentOptions{Tolerance: 10, Mode: ModeFlood})
	assert.Equal(t, uint8(0), floodMask.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), floodMask.GrayAt(15, 15).Y, "enclosed region stays foreground")

	_, globalMask := RemoveBackground(img, SegmentOptions{Tolerance: 10, Mode: ModeGlobal})
	assert.Equal(t, uint8(0), globalMask.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), globalMask.GrayAt(15, 15).Y, "global mode removes by color alone")
}

func TestRemoveBackgroundSamplePosition(t *testing.T) {
	// Seeding inside the block inverts the roles: the block becomes
	// background, the former background foreground.
	_, mask := RemoveBackground(sampleImage(), SegmentOptions{
		Tolerance: 10,
		SamplePos: image.Pt(50, 50),
		Mode:      ModeFlood,
	})
	assert.Equal(t, uint8(0), mask.GrayAt(50, 50).Y)
	assert.Equal(t, uint8(255), mask.GrayAt(0, 0).Y)
}

func TestResizeToFit(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		maxDim       int
		wantW, wantH int
	}{
		{"landscape down", 200, 100, 100, 100, 50},
		{"portrait down", 100, 200, 100, 50, 100},
		{"square up", 50, 50, 200, 200, 200},
		{"already at target", 80, 40, 80, 80, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, tt.w, tt.h))
			out := ResizeToFit(img, tt.maxDim)
			assert.Equal(t, tt.wantW, out.Bounds().Dx())
			assert.Equal(t, tt.wantH, out.Bounds().Dy())
		})
	}
}

func TestPadToCenter(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	gray := color.NRGBA{R: 50, G: 50, B: 50, A: 255}
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			img.SetNRGBA(x, y, gray)
		}
	}

	padded, err := PadToCenter(img, 30, 40)
	require.NoError(t, err)
	assert.Equal(t, 30, padded.Bounds().Dx())
	assert.Equal(t, 40, padded.Bounds().Dy())

	// Content starts at ((30-20)/2, (40-10)/2) = (5, 15).
	assert.Equal(t, gray, padded.NRGBAAt(5, 15))
	assert.Equal(t, gray, padded.NRGBAAt(5+19, 15+9))
	assert.NotEqual(t, gray, padded.NRGBAAt(0, 0))
}

func TestPadToCenterRejectsShrink(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 10))

	_, err := PadToCenter(img, 10, 40)
	assert.Error(t, err)
	_, err = PadToCenter(img, 30, 5)
	assert.Error(t, err)
}

func TestNormalizePipeline(t *testing.T) {
	// White background, a blue object with a red core: the first crop
	// isolates the blue rect, the final crop re-frames around the core
	// once the blue surround is segmented away.
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	red := color.NRGBA{R: 255, A: 255}
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			switch {
			case y >= 45 && y < 55 && x >= 40 && x < 60:
				img.SetNRGBA(x, y, red)
			case y >= 30 && y < 70 && x >= 20 && x < 80:
				img.SetNRGBA(x, y, blue)
			default:
				img.SetNRGBA(x, y, white)
			}
		}
	}

	out, err := Normalize(img, NormalizeOptions{CanvasSize: 400, Border: 20})
	require.NoError(t, err)

	// The blue rect (60x40) is fit to 350px wide, so the red core scales by
	// roughly 350/60; the final stage crops to the core plus the border.
	assert.Greater(t, out.Bounds().Dx(), 100)
	assert.Less(t, out.Bounds().Dx(), 200)
	assert.Greater(t, out.Bounds().Dy(), 50)
	assert.Less(t, out.Bounds().Dy(), 140)
}
