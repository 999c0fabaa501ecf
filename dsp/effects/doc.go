// Package effects groups reusable non-I/O audio effect kernels.
//
// Subpackages:
//   - github.com/cwbudde/algo-phaser/dsp/effects/phaser
//
// Kernels process planar float64 buffers in place and keep their hot paths
// allocation-free once initialized.
package effects
