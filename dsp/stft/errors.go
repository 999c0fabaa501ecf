package stft

import "errors"

var (
	// ErrInvalidFrameSize is returned for frame sizes below 2.
	ErrInvalidFrameSize = errors.New("stft: frame size must be >= 2")
	// ErrInvalidHopSize is returned when the hop is not in [1, frameSize).
	ErrInvalidHopSize = errors.New("stft: hop size must be in [1, frame size)")
	// ErrInvalidChannels is returned for channel counts outside [1, MaxChannels].
	ErrInvalidChannels = errors.New("stft: unsupported channel count")
)
