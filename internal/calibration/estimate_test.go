package calibration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landmark-calib/pkg/geometry"
)

func TestEstimateScaleTranslate(t *testing.T) {
	// reference = 2*source + (10, 20), an exactly consistent configuration.
	source := []geometry.Point2D{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 10, Y: 20}}
	reference := []geometry.Point2D{{X: 30, Y: 40}, {X: 50, Y: 40}, {X: 30, Y: 60}}

	result, err := Estimate(reference, source)
	require.NoError(t, err)

	expected := geometry.Matrix3{
		{2, 0, 10},
		{0, 2, 20},
		{0, 0, 1},
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, expected[i][j], result.Matrix[i][j], 1e-6,
				"matrix[%d][%d]", i, j)
		}
	}
	assert.Less(t, result.MeanError, 1e-6)
	assert.False(t, result.Degenerate)
}

func TestEstimateRecoversSimilarity(t *testing.T) {
	// A similarity transform applied to non-collinear points must be
	// recovered exactly, up to floating-point tolerance.
	tf := geometry.Translation(-3.5, 12).
		Compose(geometry.Rotation(0.7)).
		Compose(geometry.Scale(1.8, 1.8))

	source := []geometry.Point2D{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}, {X: 60, Y: 40}, {X: -20, Y: 75}}
	reference := tf.ApplyAll(source)

	result, err := Estimate(reference, source)
	require.NoError(t, err)

	got := result.Transform()
	assert.InDelta(t, tf.A, got.A, 1e-9)
	assert.InDelta(t, tf.B, got.B, 1e-9)
	assert.InDelta(t, tf.TX, got.TX, 1e-9)
	assert.InDelta(t, tf.C, got.C, 1e-9)
	assert.InDelta(t, tf.D, got.D, 1e-9)
	assert.InDelta(t, tf.TY, got.TY, 1e-9)
	assert.Less(t, result.MaxError, 1e-6)
}

func TestEstimateInsufficientPoints(t *testing.T) {
	cases := [][]geometry.Point2D{
		{},
		{{X: 10, Y: 10}},
		{{X: 10, Y: 10}, {X: 20, Y: 10}},
	}
	for _, pts := range cases {
		_, err := Estimate(pts, pts)
		var insufficientErr *InsufficientPointsError
		require.ErrorAs(t, err, &insufficientErr)
		assert.Equal(t, len(pts), insufficientErr.Got)
	}
}

func TestEstimateMismatchedLengths(t *testing.T) {
	reference := []geometry.Point2D{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 1}}
	source := []geometry.Point2D{{X: 1, Y: 1}, {X: 2, Y: 2}}

	_, err := Estimate(reference, source)
	var mismatchErr *MismatchedPointsError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, 3, mismatchErr.Reference)
	assert.Equal(t, 2, mismatchErr.Source)
}

func TestEstimateResidualStats(t *testing.T) {
	// Four pairs where the fourth reference point is perturbed: residuals
	// must be nonzero and the stats consistent with the error slice.
	source := []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}}
	reference := []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 12, Y: 12}}

	result, err := Estimate(reference, source)
	require.NoError(t, err)
	require.Len(t, result.Errors, 4)

	min, max, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, e := range result.Errors {
		min = math.Min(min, e)
		max = math.Max(max, e)
		sum += e
	}
	assert.InDelta(t, min, result.MinError, 1e-12)
	assert.InDelta(t, max, result.MaxError, 1e-12)
	assert.InDelta(t, sum/4, result.MeanError, 1e-12)

	variance := 0.0
	for _, e := range result.Errors {
		variance += (e - result.MeanError) * (e - result.MeanError)
	}
	// Population standard deviation, dividing by N rather than N-1.
	assert.InDelta(t, math.Sqrt(variance/4), result.StdError, 1e-12)
	assert.Greater(t, result.MaxError, 0.0)
}

func TestEstimateDegenerateFlag(t *testing.T) {
	// Near-collinear source points, well within the collinearity tolerance:
	// the solve still succeeds but the result is flagged so callers can
	// surface it.
	source := []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 1e-9}, {X: 20, Y: 0}, {X: 30, Y: 1e-9}}
	reference := []geometry.Point2D{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 25, Y: 5}, {X: 35, Y: 5}}

	result, err := Estimate(reference, source)
	require.NoError(t, err)
	assert.True(t, result.Degenerate)
}

func TestEstimateIsPure(t *testing.T) {
	source := []geometry.Point2D{{X: 1, Y: 2}, {X: 30, Y: 4}, {X: 5, Y: 60}, {X: 70, Y: 8}}
	reference := []geometry.Point2D{{X: 10, Y: 20}, {X: 31, Y: 42}, {X: 53, Y: 64}, {X: 75, Y: 86}}

	first, err := Estimate(reference, source)
	require.NoError(t, err)
	second, err := Estimate(reference, source)
	require.NoError(t, err)

	// Same inputs, bit-identical matrix.
	assert.Equal(t, first.Matrix, second.Matrix)
	assert.Equal(t, first.Errors, second.Errors)
}
