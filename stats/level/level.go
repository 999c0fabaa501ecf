// Package level measures peak, RMS and DC levels of audio signals, in one
// shot or block by block.
package level

import (
	"math"

	"github.com/cwbudde/algo-phaser/dsp/core"
)

// Stats holds level statistics of a signal.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	Peak          float64 // max |x|
	PeakPos       int
	CrestFactor   float64 // peak / RMS, 0 for silence
	ZeroCrossings int
}

// PeakDB returns the peak level in dBFS.
func (s Stats) PeakDB() float64 { return core.AmplitudeToDB(s.Peak) }

// RMSDB returns the RMS level in dBFS.
func (s Stats) RMSDB() float64 { return core.AmplitudeToDB(s.RMS) }

// CrestFactorDB returns the crest factor in dB.
func (s Stats) CrestFactorDB() float64 { return core.AmplitudeToDB(s.CrestFactor) }

// Calculate computes level statistics of signal in one pass.
func Calculate(signal []float64) Stats {
	var m Meter
	m.Update(signal)

	return m.Result()
}

// Meter accumulates level statistics across blocks. Update does not
// allocate, so a Meter can run on an audio goroutine. The zero value is
// ready to use.
type Meter struct {
	n             int
	sum           float64
	sumSq         float64
	peak          float64
	peakPos       int
	zeroCrossings int
	last          float64
}

// Update adds a block of samples.
func (m *Meter) Update(samples []float64) {
	for _, x := range samples {
		if a := math.Abs(x); a > m.peak {
			m.peak = a
			m.peakPos = m.n
		}

		if m.n > 0 && m.last*x < 0 {
			m.zeroCrossings++
		}

		m.sum += x
		m.sumSq += x * x
		m.last = x
		m.n++
	}
}

// Result returns the statistics of everything seen since the last Reset.
func (m *Meter) Result() Stats {
	if m.n == 0 {
		return Stats{}
	}

	nf := float64(m.n)
	rms := math.Sqrt(m.sumSq / nf)

	crest := 0.0
	if rms > 0 {
		crest = m.peak / rms
	}

	return Stats{
		Length:        m.n,
		DC:            m.sum / nf,
		RMS:           rms,
		Peak:          m.peak,
		PeakPos:       m.peakPos,
		CrestFactor:   crest,
		ZeroCrossings: m.zeroCrossings,
	}
}

// Reset clears the accumulated data.
func (m *Meter) Reset() {
	*m = Meter{}
}
