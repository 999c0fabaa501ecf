package phaser

import "errors"

var (
	// ErrInvalidSampleRate is returned by Init for non-positive or
	// non-finite sample rates.
	ErrInvalidSampleRate = errors.New("phaser: sample rate must be > 0 and finite")
	// ErrInvalidWindow is returned when a window type cannot overlap-add at
	// the phaser hop size.
	ErrInvalidWindow = errors.New("phaser: unsupported window")
)
