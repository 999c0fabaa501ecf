// Package phaser implements a multi-layer spectral phaser.
//
// Each of up to [NumLayers] layers shapes the STFT spectrum with a periodic
// comb gain curve across frequency bins. The comb period is derived from a
// pitch control, optionally log-warped by Morph, offset by a static Phase and
// by a continuously rotating barber-pole phase. Layers run in slot order and
// either multiply into the running spectrum (cascade) or add a gain-weighted
// copy of it (parallel). An optional "phasy" stage rotates every bin by a
// fixed random phasor to decorrelate phase without touching magnitude.
//
// [Phaser] wires the layers to a fixed 1024-sample frame, 256-sample hop
// stereo STFT. After [Phaser.Init], [Phaser.Process] is allocation-free.
// Control fields are plain values and are expected to be written from the
// audio goroutine between blocks; see package control for a lock-free
// handoff from other goroutines.
//
// Building with -tags fastmath replaces the exp2 and log1p calls of the
// spacing and warp math with algo-approx polynomials (relative error below
// 5e-5). The package tests run under both builds:
//
//	go test ./dsp/effects/phaser/
//	go test -tags fastmath ./dsp/effects/phaser/
package phaser
