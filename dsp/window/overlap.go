package window

import (
	"fmt"
	"math"
)

const overlapGainFloor = 1e-12

// OverlapGain returns the squared-window overlap-add gain at each position
// of a hop: gain[n] = sum_k coeffs[n+k*hop]^2 for n in [0, hop).
//
// This is the amplitude a signal picks up when the same window is used for
// analysis and synthesis and frames are overlap-added every hop samples.
func OverlapGain(coeffs []float64, hop int) ([]float64, error) {
	if len(coeffs) == 0 {
		return nil, errEmptyCoeffs
	}

	if hop <= 0 || hop > len(coeffs) {
		return nil, fmt.Errorf("%w: hop=%d window=%d", ErrInvalidHop, hop, len(coeffs))
	}

	gain := make([]float64, hop)
	for i, c := range coeffs {
		gain[i%hop] += c * c
	}

	for n, g := range gain {
		if g < overlapGainFloor || math.IsNaN(g) {
			return nil, fmt.Errorf("%w: gain %g at position %d (hop=%d)", ErrNotCOLA, g, n, hop)
		}
	}

	return gain, nil
}

// IsConstantOverlap reports whether every overlap gain is within tol of the
// first one.
func IsConstantOverlap(gain []float64, tol float64) bool {
	if len(gain) == 0 {
		return false
	}

	for _, g := range gain[1:] {
		if math.Abs(g-gain[0]) > tol {
			return false
		}
	}

	return true
}

// SynthesisWindow returns the synthesis window matching analysis at the
// given hop: analysis divided by its overlap gain. Analysis followed by
// synthesis windowing and overlap-add then reconstructs the input exactly.
func SynthesisWindow(analysis []float64, hop int) ([]float64, error) {
	gain, err := OverlapGain(analysis, hop)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(analysis))
	for i, c := range analysis {
		out[i] = c / gain[i%hop]
	}

	return out, nil
}
