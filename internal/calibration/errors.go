package calibration

import "fmt"

// MinimumPairs is the smallest number of point pairs that determines an
// affine fit. An affine map has 6 degrees of freedom and each pair
// contributes 2 equations.
const MinimumPairs = 3

// InsufficientPointsError indicates that fewer than MinimumPairs point
// pairs were supplied to Estimate.
type InsufficientPointsError struct {
	Got int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("at least %d landmark pairs are required for affine estimation, got %d",
		MinimumPairs, e.Got)
}

// MismatchedPointsError indicates that the reference and source sequences
// have different lengths.
type MismatchedPointsError struct {
	Reference int
	Source    int
}

func (e *MismatchedPointsError) Error() string {
	return fmt.Sprintf("point count mismatch: %d reference vs %d source", e.Reference, e.Source)
}
