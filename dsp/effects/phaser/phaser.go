package phaser

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/cwbudde/algo-phaser/dsp/spectrum"
	"github.com/cwbudde/algo-phaser/dsp/stft"
)

const (
	// FrameSize is the STFT frame length in samples.
	FrameSize = 1024
	// HopSize is the number of samples between frames.
	HopSize = FrameSize / 4
	// NumBins is the number of one-sided spectrum bins.
	NumBins = FrameSize/2 + 1
	// NumLayers is the number of layer slots.
	NumLayers = 8
	// Channels is the number of audio channels processed.
	Channels = 2
)

// Phaser runs up to NumLayers comb layers over a stereo STFT.
//
// A Phaser is not safe for concurrent use. Control fields of the layers and
// Phasy may be written between calls to Process.
type Phaser struct {
	// Phasy enables the fixed random phase rotation after the layers.
	Phasy bool

	sampleRate  float64
	initialized bool

	layers [NumLayers]Layer

	fft    *spectrum.RealFFT
	engine *stft.Engine

	re, im      []float64
	gains       [NumLayers][]float64
	randomPhase [NumBins]complex128

	block [Channels][]float64
}

// New creates a phaser with default layers. Only layer 0 is enabled.
// Init must be called before Process.
func New(opts ...Option) (*Phaser, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	fft, err := spectrum.NewRealFFT(FrameSize)
	if err != nil {
		return nil, fmt.Errorf("phaser: %w", err)
	}

	engine, err := stft.New(FrameSize, HopSize, Channels, stft.WithWindow(cfg.windowType))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWindow, err)
	}

	p := &Phaser{
		fft:    fft,
		engine: engine,
		re:     make([]float64, NumBins),
		im:     make([]float64, NumBins),
	}

	for i := range p.layers {
		p.layers[i] = DefaultLayer()
		p.gains[i] = make([]float64, NumBins)
	}

	p.layers[0].Enable = true

	rng := rand.New(rand.NewSource(cfg.seed))
	for i := range p.randomPhase {
		p.randomPhase[i] = cmplx.Rect(1, rng.Float64()*math.Pi)
	}

	return p, nil
}

// Init sets the sample rate and clears all streaming state. Layer controls
// are kept.
func (p *Phaser) Init(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	p.sampleRate = sampleRate
	p.initialized = true
	p.Reset()
	p.Update()

	return nil
}

// SampleRate returns the rate set by Init, or 0 before Init.
func (p *Phaser) SampleRate() float64 { return p.sampleRate }

// Latency returns the input-to-output delay of Process in samples.
func (p *Phaser) Latency() int { return p.engine.Latency() }

// Layer returns the layer in slot i. It panics if i is out of range.
func (p *Phaser) Layer(i int) *Layer { return &p.layers[i] }

// SetPhasy toggles the random phase rotation.
func (p *Phaser) SetPhasy(on bool) { p.Phasy = on }

// RandomPhase returns the fixed unit phasor applied to bin when Phasy is on.
func (p *Phaser) RandomPhase(bin int) complex128 { return p.randomPhase[bin] }

// Reset clears buffered audio and barber-pole phases.
func (p *Phaser) Reset() {
	p.engine.Reset()

	for i := range p.layers {
		p.layers[i].barberPhase = 0
	}
}

// Update recomputes every layer's comb spacing from the current controls.
// It is a no-op before Init.
func (p *Phaser) Update() {
	if !p.initialized {
		return
	}

	for i := range p.layers {
		p.layers[i].updateSpacing(p.sampleRate, FrameSize)
	}
}

// Process filters left and right in place. Both slices must have the same
// length. Output is delayed by Latency samples.
//
// Process panics if called before Init or with mismatched lengths.
func (p *Phaser) Process(left, right []float64) {
	if !p.initialized {
		panic("phaser: Process called before Init")
	}

	if len(left) != len(right) {
		panic(fmt.Sprintf("phaser: channel lengths differ: %d != %d", len(left), len(right)))
	}

	p.block[0] = left
	p.block[1] = right
	p.engine.Process(p.block[:], p)
	p.block[0] = nil
	p.block[1] = nil
}

// ProcessFrames implements stft.FrameProcessor. It advances every layer by
// one hop, then filters each channel's frame.
func (p *Phaser) ProcessFrames(frames [][]float64) {
	for i := range p.layers {
		l := &p.layers[i]
		l.Update(p.sampleRate, FrameSize, HopSize)

		if l.Enable {
			l.fillGains(p.gains[i])
		}
	}

	for _, frame := range frames {
		// Both buffers have fixed sizes matching the plan.
		_ = p.fft.Forward(frame, p.re, p.im)
		p.applyLayers(p.re, p.im)
		p.applyPhasy(p.re, p.im)
		_ = p.fft.Inverse(frame, p.re, p.im)
	}
}

// ProcessSpectrum applies the layer chain and the phasy rotation to a
// one-sided spectrum in place. Gains are computed from the layers' current
// state without advancing it.
func (p *Phaser) ProcessSpectrum(re, im []float64) {
	for i := range p.layers {
		p.layers[i].ProcessSpectrum(re, im)
	}

	p.applyPhasy(re, im)
}

func (p *Phaser) applyLayers(re, im []float64) {
	for i := range p.layers {
		if p.layers[i].Enable {
			p.layers[i].applyGains(re, im, p.gains[i])
		}
	}
}

func (p *Phaser) applyPhasy(re, im []float64) {
	if !p.Phasy {
		return
	}

	n := min(len(re), len(im), NumBins)
	for i := range n {
		r := p.randomPhase[i]
		x, y := re[i], im[i]
		re[i] = x*real(r) - y*imag(r)
		im[i] = x*imag(r) + y*real(r)
	}
}
