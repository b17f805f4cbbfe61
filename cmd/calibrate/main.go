// Command calibrate runs the full calibration pipeline from files and writes
// all results to an output directory.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/edaniels/golog"

	"landmark-calib/internal/config"
	"landmark-calib/internal/landmark"
	"landmark-calib/internal/session"
	"landmark-calib/internal/version"
	"landmark-calib/pkg/geometry"
)

// pairsFile is the on-disk landmark pair format: two parallel point lists.
type pairsFile struct {
	Reference []geometry.Point2D `json:"reference"`
	Source    []geometry.Point2D `json:"source"`
}

func main() {
	imagePath := flag.String("image", "", "Path to reference image (PNG, JPEG or TIFF)")
	csvPath := flag.String("csv", "", "Path to point cloud CSV")
	pairsPath := flag.String("pairs", "", "Path to landmark pairs JSON")
	outDir := flag.String("out", "results", "Output directory")
	configPath := flag.String("config", "", "Optional YAML config file")
	verbose := flag.Bool("v", false, "Verbose logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("calibrate %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
		return
	}

	if *imagePath == "" || *csvPath == "" || *pairsPath == "" {
		fmt.Println("Usage: calibrate -image <png> -csv <points> -pairs <json> [-out <dir>] [-config <yaml>]")
		os.Exit(1)
	}

	logger := golog.NewLogger("calibrate")
	if *verbose {
		logger = golog.NewDevelopmentLogger("calibrate")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	s := session.New(cfg, logger)

	fmt.Printf("=== Loading image: %s ===\n", *imagePath)
	if err := s.LoadImage(*imagePath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Loading point cloud: %s ===\n", *csvPath)
	if err := s.LoadDataset(*csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load CSV: %v\n", err)
		os.Exit(1)
	}

	pairs, err := loadPairs(*pairsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load pairs: %v\n", err)
		os.Exit(1)
	}
	for _, p := range pairs.Reference {
		if _, err := s.AddLandmark(landmark.SetReference, p); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to add reference landmark: %v\n", err)
			os.Exit(1)
		}
	}
	for _, p := range pairs.Source {
		if _, err := s.AddLandmark(landmark.SetSource, p); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to add source landmark: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("\n=== Calibrating (%d pairs) ===\n", s.Registry().NumPairs())
	result, err := s.Calibrate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Calibration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Mean error: %.4f px\n", result.MeanError)
	fmt.Printf("Max error:  %.4f px\n", result.MaxError)
	fmt.Printf("Std error:  %.4f px\n", result.StdError)
	fmt.Printf("Elapsed:    %s\n", result.ComputationTime)
	if result.Degenerate {
		fmt.Println("WARNING: landmarks are collinear; transform is under-determined")
	}
	for _, row := range result.Matrix {
		fmt.Printf("  [%9.4f %9.4f %9.4f]\n", row[0], row[1], row[2])
	}

	if err := s.SaveResults(*outDir); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nResults written to %s\n", *outDir)
}

func loadPairs(path string) (*pairsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pairs pairsFile
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(pairs.Reference) != len(pairs.Source) {
		return nil, fmt.Errorf("pair count mismatch: %d reference vs %d source",
			len(pairs.Reference), len(pairs.Source))
	}
	return &pairs, nil
}
