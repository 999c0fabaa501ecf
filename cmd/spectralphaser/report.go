package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-phaser/dsp/core"
	"github.com/cwbudde/algo-phaser/dsp/spectrum"
	"github.com/cwbudde/algo-phaser/dsp/window"
)

const reportFFTSize = 4096

// averagePower returns the mean Hann-windowed power spectrum of x over
// half-overlapping frames.
func averagePower(x []float64) ([]float64, error) {
	fft, err := spectrum.NewRealFFT(reportFFTSize)
	if err != nil {
		return nil, err
	}

	win, err := window.Hann(reportFFTSize, window.WithPeriodic())
	if err != nil {
		return nil, err
	}

	bins := fft.Bins()
	frame := make([]float64, reportFFTSize)
	re := make([]float64, bins)
	im := make([]float64, bins)
	pow := make([]float64, bins)
	avg := make([]float64, bins)

	frames := 0
	for pos := 0; pos+reportFFTSize <= len(x); pos += reportFFTSize / 2 {
		if err := window.ApplyCoefficients(frame, x[pos:pos+reportFFTSize], win); err != nil {
			return nil, err
		}

		if err := fft.Forward(frame, re, im); err != nil {
			return nil, err
		}

		spectrum.PowerFromParts(pow, re, im)

		for k, p := range pow {
			avg[k] += p
		}

		frames++
	}

	if frames == 0 {
		return nil, fmt.Errorf("signal too short for a %d-point spectrum: %d samples", reportFFTSize, len(x))
	}

	for k := range avg {
		avg[k] /= float64(frames)
	}

	return avg, nil
}

// octaveBands returns band edges from 31.25 Hz up to the Nyquist frequency.
func octaveBands(sampleRate float64) [][2]float64 {
	var bands [][2]float64
	for lo := 31.25; lo < sampleRate/2; lo *= 2 {
		bands = append(bands, [2]float64{lo, math.Min(2*lo, sampleRate/2)})
	}

	return bands
}

// writeBandReport prints per-octave energy of in and out and their ratio.
func writeBandReport(w io.Writer, in, out []float64, sampleRate float64) error {
	pin, err := averagePower(in)
	if err != nil {
		return err
	}

	pout, err := averagePower(out)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "Band [Hz]\tIn [dB]\tOut [dB]\tGain [dB]\t\n"); err != nil {
		return err
	}

	for _, b := range octaveBands(sampleRate) {
		ein, err := spectrum.BandEnergy(pin, reportFFTSize, sampleRate, b[0], b[1])
		if err != nil {
			return err
		}

		eout, err := spectrum.BandEnergy(pout, reportFFTSize, sampleRate, b[0], b[1])
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(tw, "%.0f-%.0f\t%.1f\t%.1f\t%.1f\t\n",
			b[0], b[1], core.PowerToDB(ein), core.PowerToDB(eout), core.PowerToDB(eout)-core.PowerToDB(ein)); err != nil {
			return err
		}
	}

	return tw.Flush()
}
