package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// RealFFT is a forward/inverse transform between N real samples and the
// N/2+1 non-redundant bins of their spectrum.
//
// Forward is unnormalized; Inverse divides by N, so Inverse(Forward(x)) == x
// up to rounding. The imaginary parts of the DC and Nyquist bins are ignored
// by Inverse since a real signal cannot carry them.
//
// RealFFT is not safe for concurrent use.
type RealFFT struct {
	size int
	half int
	plan *algofft.Plan[complex128]
	buf  []complex128
}

// NewRealFFT creates a real transform of the given size.
func NewRealFFT(size int) (*RealFFT, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	return &RealFFT{
		size: size,
		half: size / 2,
		plan: plan,
		buf:  make([]complex128, size),
	}, nil
}

// Size returns the frame length N.
func (f *RealFFT) Size() int { return f.size }

// Bins returns the number of spectrum bins, N/2+1.
func (f *RealFFT) Bins() int { return f.half + 1 }

// Forward transforms frame into re and im. frame must hold exactly Size()
// samples; re and im at least Bins() values.
func (f *RealFFT) Forward(frame, re, im []float64) error {
	if err := f.check(frame, re, im); err != nil {
		return err
	}

	for i, x := range frame {
		f.buf[i] = complex(x, 0)
	}

	if err := f.plan.Forward(f.buf, f.buf); err != nil {
		return fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	for k := 0; k <= f.half; k++ {
		re[k] = real(f.buf[k])
		im[k] = imag(f.buf[k])
	}

	return nil
}

// Inverse reconstructs frame from re and im.
func (f *RealFFT) Inverse(frame, re, im []float64) error {
	if err := f.check(frame, re, im); err != nil {
		return err
	}

	f.buf[0] = complex(re[0], 0)
	f.buf[f.half] = complex(re[f.half], 0)

	for k := 1; k < f.half; k++ {
		f.buf[k] = complex(re[k], im[k])
		f.buf[f.size-k] = complex(re[k], -im[k])
	}

	if err := f.plan.Inverse(f.buf, f.buf); err != nil {
		return fmt.Errorf("spectrum: inverse FFT failed: %w", err)
	}

	for i := range frame {
		frame[i] = real(f.buf[i])
	}

	return nil
}

func (f *RealFFT) check(frame, re, im []float64) error {
	if len(frame) != f.size {
		return fmt.Errorf("%w: frame has %d samples, want %d", ErrLengthMismatch, len(frame), f.size)
	}

	if len(re) <= f.half || len(im) <= f.half {
		return fmt.Errorf("%w: need %d bins, got re=%d im=%d", ErrLengthMismatch, f.half+1, len(re), len(im))
	}

	return nil
}
