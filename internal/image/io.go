// Package image provides the normalization pipeline that makes heterogeneous
// input images comparable: background segmentation, content-based
// autocropping, and aspect-preserving resizing. Every operation returns a
// new buffer; inputs are never mutated.
package image

import (
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/pkg/errors"

	_ "golang.org/x/image/tiff"
)

// Load reads and decodes an image from disk. PNG, JPEG and TIFF are
// supported.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening image")
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding image %s", path)
	}
	return img, nil
}

// SavePNG writes an image to disk as PNG.
func SavePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating image file")
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	return nil
}
