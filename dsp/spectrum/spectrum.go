package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst.
// All three slices must have the same length.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}

// BinFrequency returns the center frequency in Hz of bin k for an FFT of
// the given size.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(fftSize)
}

// BandEnergy sums power over the bins whose center frequency lies in
// [loHz, hiHz). power holds fftSize/2+1 bins.
func BandEnergy(power []float64, fftSize int, sampleRate, loHz, hiHz float64) (float64, error) {
	if fftSize <= 0 || sampleRate <= 0 {
		return 0, fmt.Errorf("band energy needs positive fft size and sample rate: %d, %f", fftSize, sampleRate)
	}

	if hiHz <= loHz {
		return 0, fmt.Errorf("band energy range is empty: [%f, %f)", loHz, hiHz)
	}

	sum := 0.0
	for k, p := range power {
		f := BinFrequency(k, fftSize, sampleRate)
		if f >= loHz && f < hiHz {
			sum += p
		}
	}

	return sum, nil
}
