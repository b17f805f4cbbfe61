// Package dataset handles the tabular coordinate data being registered to
// the reference image: loading, scaling to the display canvas, visualizing
// the point cloud, and exporting calibrated coordinates.
package dataset

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"landmark-calib/pkg/geometry"
)

// Table holds a loaded CSV file: the full rows for later export plus the
// parsed coordinate columns.
type Table struct {
	Header []string
	Rows   [][]string

	// Points are the raw coordinates, one per row, taken from the third-
	// and second-to-last columns.
	Points []geometry.Point2D
}

// Load reads a CSV file with a header row. Coordinates are taken from the
// third- and second-to-last columns; all columns are retained for
// calibrated export.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening CSV")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parsing CSV %s", path)
	}
	if len(records) < 2 {
		return nil, errors.Errorf("CSV %s has no data rows", path)
	}

	header := records[0]
	if len(header) < 3 {
		return nil, errors.Errorf("CSV %s needs at least 3 columns, got %d", path, len(header))
	}

	table := &Table{
		Header: header,
		Rows:   records[1:],
		Points: make([]geometry.Point2D, 0, len(records)-1),
	}
	for i, row := range table.Rows {
		if len(row) < 3 {
			return nil, errors.Errorf("CSV row %d has %d columns, need at least 3", i+2, len(row))
		}
		x, err := strconv.ParseFloat(row[len(row)-3], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "CSV row %d: bad x value %q", i+2, row[len(row)-3])
		}
		y, err := strconv.ParseFloat(row[len(row)-2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "CSV row %d: bad y value %q", i+2, row[len(row)-2])
		}
		table.Points = append(table.Points, geometry.Point2D{X: x, Y: y})
	}
	return table, nil
}

// ScaleToCanvas shifts the cloud so its minimum sits at the origin and
// applies a uniform scale so it fits a canvas of the given size minus the
// margins, preserving aspect ratio. Returns the scaled points and the scale
// factor used. The input is not mutated.
func ScaleToCanvas(points []geometry.Point2D, canvasSize, margin int) ([]geometry.Point2D, float64) {
	if len(points) == 0 {
		return nil, 1
	}

	box := geometry.BoundingBox(points)
	target := float64(canvasSize - 2*margin)

	scaleX, scaleY := 1.0, 1.0
	if box.Width > 0 {
		scaleX = target / box.Width
	}
	if box.Height > 0 {
		scaleY = target / box.Height
	}
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	scaled := make([]geometry.Point2D, len(points))
	for i, p := range points {
		scaled[i] = geometry.Point2D{
			X: (p.X - box.X) * scale,
			Y: (p.Y - box.Y) * scale,
		}
	}
	return scaled, scale
}

// WriteCalibrated writes the original CSV rows plus x_transformed and
// y_transformed columns, one transformed point per row in row order.
func WriteCalibrated(path string, table *Table, transformed []geometry.Point2D) error {
	if len(transformed) != len(table.Rows) {
		return errors.Errorf("have %d transformed points for %d rows",
			len(transformed), len(table.Rows))
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating calibrated CSV")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := append(append([]string{}, table.Header...), "x_transformed", "y_transformed")
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "writing header")
	}

	for i, row := range table.Rows {
		out := append(append([]string{}, row...),
			strconv.FormatFloat(transformed[i].X, 'g', -1, 64),
			strconv.FormatFloat(transformed[i].Y, 'g', -1, 64))
		if err := writer.Write(out); err != nil {
			return errors.Wrapf(err, "writing row %d", i+2)
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "flushing calibrated CSV")
}
