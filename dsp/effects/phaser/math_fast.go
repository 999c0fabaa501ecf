//go:build fastmath

package phaser

import (
	"github.com/meko-christian/algo-approx"
)

// ln2 is the natural logarithm of 2.
const ln2 = 0.693147180559945309417232121458

// mathPower2 computes 2^x using fast approximation.
// Uses the identity: 2^x = e^(x * ln(2))
func mathPower2(x float64) float64 {
	return approx.FastExp(x * ln2)
}

// mathLog1p computes ln(1+x) using fast approximation. Called per bin per
// hop from the gain curve, so this is the hot path.
func mathLog1p(x float64) float64 {
	return approx.FastLog(1 + x)
}
