package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-phaser/dsp/core"
)

// ErrUnknownKind is returned by New for unsupported signal kinds.
var ErrUnknownKind = errors.New("signal: unknown kind")

// Kind selects a test signal.
type Kind string

const (
	KindNoise   Kind = "noise"
	KindSaw     Kind = "saw"
	KindSine    Kind = "sine"
	KindImpulse Kind = "impulse"
)

// Kinds lists the supported signal kinds.
func Kinds() []Kind {
	return []Kind{KindNoise, KindSaw, KindSine, KindImpulse}
}

// Source fills stereo blocks with consecutive samples of a signal.
type Source interface {
	Fill(left, right []float64)
}

// Option configures a Source.
type Option func(*config)

type config struct {
	proc      core.ProcessorConfig
	seed      int64
	amplitude float64
	freqHz    float64
	periodSec float64
}

// WithProcessorOptions sets the shared processing configuration.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(c *config) {
		c.proc = core.ApplyProcessorOptions(opts...)
	}
}

// WithSeed sets the noise seed.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithAmplitude sets the peak amplitude. Negative or non-finite values are
// ignored.
func WithAmplitude(a float64) Option {
	return func(c *config) {
		if a >= 0 && core.IsFinite(a) {
			c.amplitude = a
		}
	}
}

// WithFrequency sets the oscillator frequency of saw and sine signals.
// Non-positive or non-finite values are ignored.
func WithFrequency(hz float64) Option {
	return func(c *config) {
		if hz > 0 && core.IsFinite(hz) {
			c.freqHz = hz
		}
	}
}

// WithPeriod sets the impulse spacing in seconds. Non-positive or
// non-finite values are ignored.
func WithPeriod(sec float64) Option {
	return func(c *config) {
		if sec > 0 && core.IsFinite(sec) {
			c.periodSec = sec
		}
	}
}

// New creates a source of the given kind. Noise is decorrelated between
// channels; the other kinds are identical on both.
func New(kind Kind, opts ...Option) (Source, error) {
	cfg := config{
		proc:      core.DefaultProcessorConfig(),
		seed:      1,
		amplitude: 0.25,
		freqHz:    110,
		periodSec: 0.25,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	fs := cfg.proc.SampleRate

	switch kind {
	case KindNoise:
		return &noise{rng: rand.New(rand.NewSource(cfg.seed)), amp: cfg.amplitude}, nil
	case KindSaw:
		return &saw{step: cfg.freqHz / fs, amp: cfg.amplitude}, nil
	case KindSine:
		return &sine{step: cfg.freqHz / fs, amp: cfg.amplitude}, nil
	case KindImpulse:
		return &impulse{period: max(1, int(cfg.periodSec*fs)), amp: cfg.amplitude}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

type noise struct {
	rng *rand.Rand
	amp float64
}

func (n *noise) Fill(left, right []float64) {
	for i := range left {
		left[i] = (n.rng.Float64()*2 - 1) * n.amp
		right[i] = (n.rng.Float64()*2 - 1) * n.amp
	}
}

type saw struct {
	phase, step, amp float64
}

func (s *saw) Fill(left, right []float64) {
	for i := range left {
		v := (2*s.phase - 1) * s.amp
		left[i], right[i] = v, v
		s.phase = core.Wrap01(s.phase + s.step)
	}
}

type sine struct {
	phase, step, amp float64
}

func (s *sine) Fill(left, right []float64) {
	for i := range left {
		v := math.Sin(2*math.Pi*s.phase) * s.amp
		left[i], right[i] = v, v
		s.phase = core.Wrap01(s.phase + s.step)
	}
}

type impulse struct {
	period, pos int
	amp         float64
}

func (g *impulse) Fill(left, right []float64) {
	for i := range left {
		v := 0.0
		if g.pos == 0 {
			v = g.amp
		}

		left[i], right[i] = v, v
		g.pos = (g.pos + 1) % g.period
	}
}
