package window

import (
	"errors"
	"fmt"
)

var (
	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errMismatchedLength = errors.New("samples and coefficients must have same length")

	// ErrInvalidHop is returned when a hop size is not in [1, len(window)].
	ErrInvalidHop = errors.New("window hop size out of range")
	// ErrNotCOLA is returned when a window/hop pair leaves positions with
	// (near) zero overlap gain, so overlap-add cannot be normalized.
	ErrNotCOLA = errors.New("window does not overlap-add at this hop size")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}
