// Package project provides calibration result file handling and persistence.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"landmark-calib/internal/calibration"
	"landmark-calib/internal/landmark"
)

// Output file names within a session directory.
const (
	ResultsFileName    = "calibration_results.json"
	OverlayFileName    = "calibration_results_overlay.png"
	CalibratedCSVName  = "calibrated_points.csv"
	ProcessedImageName = "processed_image.png"
	CloudImageName     = "points_visualization.png"
)

// File represents a saved calibration result (.json). The matrix
// serializes as 3 rows of 3 numbers and the residuals as a flat sequence,
// so downstream calibration consumers can read it directly.
type File struct {
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`

	ImageFile string `json:"image_file,omitempty"`
	CSVFile   string `json:"csv_file,omitempty"`

	Landmarks Landmarks           `json:"landmarks"`
	Results   *calibration.Result `json:"calibration_results"`
}

// Landmarks records both landmark tables as picked, including unpaired
// entries.
type Landmarks struct {
	Reference []landmark.Landmark `json:"reference"`
	Source    []landmark.Landmark `json:"source"`
}

// New creates a result file for the given inputs, stamped now.
func New(imageFile, csvFile string, marks Landmarks, results *calibration.Result) *File {
	return &File{
		Version:   1,
		Timestamp: time.Now(),
		ImageFile: imageFile,
		CSVFile:   csvFile,
		Landmarks: marks,
		Results:   results,
	}
}

// Load loads a result file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading results file")
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "parsing results file %s", path)
	}
	return &file, nil
}

// Save writes the result file, creating the directory if needed.
func (f *File) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating results directory")
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling results")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "writing results file")
}
