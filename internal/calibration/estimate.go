// Package calibration computes the best-fit affine registration between two
// ordered, paired point sets and reports per-pair residual statistics.
package calibration

import (
	"time"

	"landmark-calib/pkg/geometry"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// degeneracyTol is the perpendicular-distance tolerance used to flag a
// collinear source configuration. The fit along one axis is under-determined
// in that case; the solver still returns a minimum-norm solution.
const degeneracyTol = 1e-6

// Result holds one complete estimation outcome. It is a value produced
// fresh by each Estimate call and never mutated afterwards.
type Result struct {
	// Matrix is the homogeneous transform mapping source points into the
	// reference frame. Its bottom row is exactly [0 0 1].
	Matrix geometry.Matrix3 `json:"affine_matrix"`

	// Errors holds the Euclidean residual of each pair, in input order.
	Errors []float64 `json:"errors"`

	MinError  float64 `json:"min_error"`
	MaxError  float64 `json:"max_error"`
	MeanError float64 `json:"mean_error"`
	StdError  float64 `json:"std_error"`

	// ComputationTime is the wall-clock duration of the solve, for
	// diagnostic display.
	ComputationTime time.Duration `json:"computation_time_ns"`

	// Degenerate is set when the source points are collinear. The matrix is
	// still the least-squares solution, but the fit is under-determined
	// perpendicular to the line and residuals should be inspected.
	Degenerate bool `json:"degenerate,omitempty"`
}

// Transform returns the result matrix as an AffineTransform.
func (r *Result) Transform() geometry.AffineTransform {
	return geometry.FromMatrix3(r.Matrix)
}

// Estimate solves for the affine transform that best maps source points onto
// reference points in the least-squares sense. Both slices must have the
// same length, at least MinimumPairs. The inputs are never mutated.
func Estimate(reference, source []geometry.Point2D) (*Result, error) {
	if len(reference) != len(source) {
		return nil, &MismatchedPointsError{Reference: len(reference), Source: len(source)}
	}
	if len(source) < MinimumPairs {
		return nil, &InsufficientPointsError{Got: len(source)}
	}

	start := time.Now()

	n := len(source)

	// Homogeneous design and target matrices: each row is [x y 1].
	a := mat.NewDense(n, 3, nil)
	b := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		a.SetRow(i, []float64{source[i].X, source[i].Y, 1})
		b.SetRow(i, []float64{reference[i].X, reference[i].Y, 1})
	}

	// Least-squares solve of A·X ≈ B. Solve uses QR for the overdetermined
	// case; a mat.Condition error signals an ill-conditioned system but
	// still carries the computed solution, so it is not fatal here.
	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, err
		}
	}

	// The solution acts on row vectors; transpose into the conventional
	// row-major affine layout and force the bottom row to [0 0 1], which
	// the solver only approximates under noise.
	matrix := geometry.Matrix3{
		{x.At(0, 0), x.At(1, 0), x.At(2, 0)},
		{x.At(0, 1), x.At(1, 1), x.At(2, 1)},
		{0, 0, 1},
	}
	transform := geometry.FromMatrix3(matrix)

	errs := make([]float64, n)
	for i := 0; i < n; i++ {
		errs[i] = transform.Apply(source[i]).Distance(reference[i])
	}

	elapsed := time.Since(start)

	return &Result{
		Matrix:          matrix,
		Errors:          errs,
		MinError:        floats.Min(errs),
		MaxError:        floats.Max(errs),
		MeanError:       stat.Mean(errs, nil),
		StdError:        stat.PopStdDev(errs, nil),
		ComputationTime: elapsed,
		Degenerate:      geometry.Collinear(source, degeneracyTol),
	}, nil
}
