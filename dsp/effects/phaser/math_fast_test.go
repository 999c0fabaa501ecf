//go:build fastmath

package phaser

// mathTolerance is the relative error allowed for the approximated
// mathPower2 and mathLog1p.
const mathTolerance = 5e-5
