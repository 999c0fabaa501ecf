//go:build !fastmath

package phaser

import "math"

// mathPower2 computes 2^x using standard library math.
func mathPower2(x float64) float64 {
	return math.Exp2(x)
}

// mathLog1p computes ln(1+x) using standard library math.
func mathLog1p(x float64) float64 {
	return math.Log1p(x)
}
