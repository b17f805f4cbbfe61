// Command imageprep runs the normalizer pipeline on a single image and writes
// the processed result.
package main

import (
	"flag"
	"fmt"
	"os"

	"landmark-calib/internal/image"
	"landmark-calib/internal/version"
)

func main() {
	inPath := flag.String("in", "", "Path to input image (PNG, JPEG or TIFF)")
	outPath := flag.String("out", "processed.png", "Path to output PNG")
	defaults := image.DefaultNormalizeOptions()
	canvasSize := flag.Int("canvas", defaults.CanvasSize, "Square canvas size in pixels")
	border := flag.Int("border", defaults.Border, "Border around the cropped content")
	tolerance := flag.Float64("tolerance", defaults.Tolerance, "Background color tolerance")
	cropOnly := flag.Bool("crop-only", false, "Only autocrop, skip resize")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("imageprep %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
		return
	}

	if *inPath == "" {
		fmt.Println("Usage: imageprep -in <image> [-out <png>] [-canvas <px>] [-border <px>] [-crop-only]")
		os.Exit(1)
	}

	img, err := image.Load(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", *inPath, err)
		os.Exit(1)
	}
	bounds := img.Bounds()
	fmt.Printf("Loaded %s (%dx%d)\n", *inPath, bounds.Dx(), bounds.Dy())

	if *cropOnly {
		cropped, err := image.AutoCropWithTolerance(img, *border, *tolerance)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Autocrop failed: %v\n", err)
			os.Exit(1)
		}
		img = cropped
	} else {
		normalized, err := image.Normalize(img, image.NormalizeOptions{
			CanvasSize: *canvasSize,
			Border:     *border,
			Tolerance:  *tolerance,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Normalization failed: %v\n", err)
			os.Exit(1)
		}
		img = normalized
	}

	if err := image.SavePNG(*outPath, img); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	out := img.Bounds()
	fmt.Printf("Wrote %s (%dx%d)\n", *outPath, out.Dx(), out.Dy())
}
