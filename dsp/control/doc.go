// Package control hands phaser parameters from UI or automation goroutines
// to the audio goroutine without locks.
//
// Writers call the setters of [Params] from any goroutine. Each value is
// stored as atomic float bits together with a per-layer dirty flag and a
// global generation counter. The audio goroutine calls [Params.Apply] at the
// start of every block; it performs atomic loads only and copies changed
// values into the phaser's layers.
//
// Parameters are addressed by index or by the string IDs "phaseN", "pitchN",
// "morphN", "freqN", "enableN", "cascadeN" (N in 0..7) and "phasy".
package control
