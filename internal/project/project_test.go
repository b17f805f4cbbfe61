package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landmark-calib/internal/calibration"
	"landmark-calib/internal/landmark"
	"landmark-calib/pkg/geometry"
)

func sampleResult(t *testing.T) *calibration.Result {
	t.Helper()
	source := []geometry.Point2D{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 10, Y: 20}}
	reference := []geometry.Point2D{{X: 30, Y: 40}, {X: 50, Y: 40}, {X: 30, Y: 60}}
	result, err := calibration.Estimate(reference, source)
	require.NoError(t, err)
	return result
}

func TestSaveLoadRoundTrip(t *testing.T) {
	marks := Landmarks{
		Reference: []landmark.Landmark{{ID: 1, Point: geometry.Point2D{X: 30, Y: 40}}},
		Source:    []landmark.Landmark{{ID: 1, Point: geometry.Point2D{X: 10, Y: 10}}},
	}
	file := New("board.png", "points.csv", marks, sampleResult(t))

	path := filepath.Join(t.TempDir(), "out", ResultsFileName)
	require.NoError(t, file.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "board.png", loaded.ImageFile)
	assert.Equal(t, "points.csv", loaded.CSVFile)
	assert.Equal(t, file.Results.Matrix, loaded.Results.Matrix)
	assert.Equal(t, file.Results.Errors, loaded.Results.Errors)
	assert.Equal(t, marks.Reference, loaded.Landmarks.Reference)
}

func TestMatrixSerializesAsThreeRows(t *testing.T) {
	file := New("", "", Landmarks{}, sampleResult(t))
	path := filepath.Join(t.TempDir(), ResultsFileName)
	require.NoError(t, file.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw struct {
		Results struct {
			Matrix [][]float64 `json:"affine_matrix"`
			Errors []float64   `json:"errors"`
		} `json:"calibration_results"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))

	require.Len(t, raw.Results.Matrix, 3)
	for _, row := range raw.Results.Matrix {
		assert.Len(t, row, 3)
	}
	assert.Equal(t, []float64{0, 0, 1}, raw.Results.Matrix[2])
	assert.Len(t, raw.Results.Errors, 3)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
