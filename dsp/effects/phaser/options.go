package phaser

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-phaser/dsp/window"
)

// Option mutates phaser construction parameters.
type Option func(*config) error

type config struct {
	seed       int64
	windowType window.Type
}

func defaultConfig() config {
	return config{
		seed:       time.Now().UnixNano(),
		windowType: window.TypeHann,
	}
}

// WithSeed fixes the seed of the random-phase table so that the phasy
// stage is reproducible.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// WithWindow selects the STFT window. Default is periodic Hann.
func WithWindow(t window.Type) Option {
	return func(cfg *config) error {
		switch t {
		case window.TypeHann, window.TypeHamming, window.TypeBlackman, window.TypeCosine:
			cfg.windowType = t
			return nil
		default:
			return fmt.Errorf("%w: %s", ErrInvalidWindow, t)
		}
	}
}
