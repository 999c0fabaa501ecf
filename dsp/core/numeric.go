package core

import "math"

// dBFloor is the level reported for silence by the floored conversions.
const dBFloor = -200.0

// Clamp limits value to the inclusive range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	return math.Max(lo, math.Min(hi, value))
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Sanitize clamps value into [lo, hi] and replaces NaN or Inf with
// fallback. Control values pass through it before they reach a hot path.
func Sanitize(value, lo, hi, fallback float64) float64 {
	if !IsFinite(value) {
		return fallback
	}

	return Clamp(value, lo, hi)
}

// Wrap01 returns x - floor(x), kept strictly below 1.
func Wrap01(x float64) float64 {
	r := x - math.Floor(x)
	if r >= 1 {
		return 0
	}

	return r
}

// AmplitudeToDB converts a linear amplitude to dB (20*log10), reporting
// silence and negative input as -200 dB.
func AmplitudeToDB(linear float64) float64 {
	if !(linear > 0) {
		return dBFloor
	}

	return math.Max(dBFloor, 20*math.Log10(linear))
}

// PowerToDB converts a linear power to dB (10*log10), reporting silence and
// negative input as -200 dB.
func PowerToDB(power float64) float64 {
	if !(power > 0) {
		return dBFloor
	}

	return math.Max(dBFloor, 10*math.Log10(power))
}
