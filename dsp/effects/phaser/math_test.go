//go:build !fastmath

package phaser

// mathTolerance is the relative error allowed for mathPower2 and mathLog1p.
const mathTolerance = 1e-12
