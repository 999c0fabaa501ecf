package spectrum

import "errors"

var (
	// ErrInvalidSize is returned when an FFT size is not a power of two >= 2.
	ErrInvalidSize = errors.New("spectrum: fft size must be a power of two >= 2")
	// ErrLengthMismatch is returned when frame or bin slices do not match the plan.
	ErrLengthMismatch = errors.New("spectrum: buffer length mismatch")
)
