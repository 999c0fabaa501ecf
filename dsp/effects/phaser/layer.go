package phaser

import (
	"math"

	"github.com/cwbudde/algo-phaser/dsp/core"
)

const (
	// MinPitch and MaxPitch bound the pitch control in semitones.
	MinPitch = 0.0
	MaxPitch = 150.0

	// MinSpacing is the smallest comb spacing in bins. It keeps the gain
	// curve finite when the warped pitch frequency collapses towards zero.
	MinSpacing = 1e-3

	DefaultPitch      = 100.0
	DefaultMorph      = 0.5
	DefaultPhase      = 0.5
	DefaultBarberFreq = 0.0

	referenceFreq = 440.0
	referenceNote = 69.0
)

// Layer is one comb gain curve of the phaser.
//
// The exported fields are controls and may be changed between hops. space
// and barberPhase are derived by Update.
type Layer struct {
	// Pitch sets the comb spacing as a MIDI-style note number in [0, 150].
	Pitch float64
	// Morph blends linear (0) and logarithmic (1) bin warping.
	Morph float64
	// Phase is the static comb offset in cycles.
	Phase float64
	// BarberFreq is the signed barber-pole rotation rate in Hz.
	BarberFreq float64
	// Enable turns the layer's effect on. Disabled layers keep rotating.
	Enable bool
	// Cascade multiplies the spectrum by the gain when true and adds
	// gain*spectrum when false.
	Cascade bool

	space       float64
	barberPhase float64
}

// DefaultLayer returns a layer with the default control values. Only slot 0
// of a Phaser starts enabled.
func DefaultLayer() Layer {
	return Layer{
		Pitch:      DefaultPitch,
		Morph:      DefaultMorph,
		Phase:      DefaultPhase,
		BarberFreq: DefaultBarberFreq,
		Cascade:    true,
	}
}

// Update recomputes the comb spacing from the current controls and advances
// the barber-pole phase by one hop.
func (l *Layer) Update(sampleRate float64, frameSize, hopSize int) {
	l.updateSpacing(sampleRate, frameSize)
	l.advance(sampleRate, hopSize)
}

func (l *Layer) updateSpacing(sampleRate float64, frameSize int) {
	pitch := core.Sanitize(l.Pitch, MinPitch, MaxPitch, DefaultPitch)
	freq := referenceFreq * mathPower2((pitch-referenceNote)/12)
	bins := freq / sampleRate * float64(frameSize)

	space := l.Warp(bins)
	if !(space >= MinSpacing) {
		space = MinSpacing
	}

	l.space = space
}

func (l *Layer) advance(sampleRate float64, hopSize int) {
	rate := l.BarberFreq
	if !core.IsFinite(rate) {
		rate = 0
	}

	l.barberPhase = core.Wrap01(l.barberPhase + rate*float64(hopSize)/sampleRate)
}

// Space returns the comb spacing in bins computed by the last Update.
func (l *Layer) Space() float64 { return l.space }

// BarberPhase returns the barber-pole phase in [0, 1).
func (l *Layer) BarberPhase() float64 { return l.barberPhase }

// SetBarberPhase sets the barber-pole phase, wrapped into [0, 1). Used to
// lock the rotation to a host transport.
func (l *Layer) SetBarberPhase(p float64) {
	if !core.IsFinite(p) {
		p = 0
	}

	l.barberPhase = core.Wrap01(p)
}

// Warp maps a bin position onto the comb axis:
// lerp(x, ln(x+1), Morph).
func (l *Layer) Warp(x float64) float64 {
	morph := core.Sanitize(l.Morph, 0, 1, DefaultMorph)
	return x + (mathLog1p(x)-x)*morph
}

// Gain returns the comb gain in [0, 1] at the given bin.
func (l *Layer) Gain(bin int) float64 {
	return l.gain(float64(bin), l.phase(), l.spacing())
}

func (l *Layer) gain(bin, phase, space float64) float64 {
	p := core.Wrap01(l.Warp(bin)/space + phase + l.barberPhase)

	return core.Clamp(FastSin(p)*0.5+0.5, 0, 1)
}

func (l *Layer) phase() float64 {
	if !core.IsFinite(l.Phase) {
		return DefaultPhase
	}

	return l.Phase
}

func (l *Layer) spacing() float64 {
	if l.space < MinSpacing {
		return MinSpacing
	}

	return l.space
}

// ProcessSpectrum applies the layer's gain curve to re/im in place. It is a
// no-op when the layer is disabled.
func (l *Layer) ProcessSpectrum(re, im []float64) {
	if !l.Enable {
		return
	}

	n := min(len(re), len(im))
	phase := l.phase()
	space := l.spacing()

	if l.Cascade {
		for i := range n {
			g := l.gain(float64(i), phase, space)
			re[i] *= g
			im[i] *= g
		}

		return
	}

	for i := range n {
		g := l.gain(float64(i), phase, space)
		re[i] += g * re[i]
		im[i] += g * im[i]
	}
}

// fillGains writes the gain of every bin into dst.
func (l *Layer) fillGains(dst []float64) {
	phase := l.phase()
	space := l.spacing()

	for i := range dst {
		dst[i] = l.gain(float64(i), phase, space)
	}
}

// applyGains is ProcessSpectrum with precomputed gains.
func (l *Layer) applyGains(re, im, gains []float64) {
	if l.Cascade {
		for i, g := range gains {
			re[i] *= g
			im[i] *= g
		}

		return
	}

	for i, g := range gains {
		re[i] += g * re[i]
		im[i] += g * im[i]
	}
}

// FastSin approximates cos(2*pi*x) for x in [0, 1]: the input is folded
// onto [-0.5, 0.5] and fed to an odd polynomial for sin(pi*x). Peak error
// is below 1e-5.
func FastSin(x float64) float64 {
	x = 2*math.Abs(x-0.5) - 0.5
	x2 := x * x

	u := -0.540347434104161*x2 + 2.535656174488765
	u = u*x2 - 5.166512943349853
	u = u*x2 + 3.141592653589793

	return u * x
}
