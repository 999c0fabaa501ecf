// Package spectrum provides the real-input FFT used by the STFT pipeline and
// spectrum-domain helpers for inspecting its output.
//
// [RealFFT] maps a real frame of N samples to N/2+1 bins held as separate
// real and imaginary slices, and back. It is built on algo-fft complex plans
// and does not allocate after construction.
package spectrum
