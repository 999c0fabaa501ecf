package stft

import (
	"fmt"

	"github.com/cwbudde/algo-phaser/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// MaxChannels is the largest channel count an Engine accepts.
const MaxChannels = 2

// FrameProcessor transforms analysis-windowed frames in place, one slice per
// channel, each of the engine's frame size.
type FrameProcessor interface {
	ProcessFrames(frames [][]float64)
}

// FrameProcessorFunc adapts a function to [FrameProcessor].
type FrameProcessorFunc func(frames [][]float64)

// ProcessFrames calls f(frames).
func (f FrameProcessorFunc) ProcessFrames(frames [][]float64) { f(frames) }

// Option configures an Engine.
type Option func(*config)

type config struct {
	windowType window.Type
}

func defaultConfig() config {
	return config{windowType: window.TypeHann}
}

// WithWindow selects the analysis/synthesis window shape. Default is Hann.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.windowType = t
	}
}

// Engine is a streaming overlap-add STFT scheduler.
//
// Engine is not safe for concurrent use.
type Engine struct {
	frameSize int
	hopSize   int
	channels  int

	analysis  []float64
	synthesis []float64

	in     [][]float64 // most recent frameSize input samples, newest hop at the tail
	out    [][]float64 // overlap-add accumulator, out[c][0] is the next sample due at a hop
	frames [][]float64

	pending int // samples accumulated since the last hop
	hops    uint64
}

// New creates an engine for the given frame length, hop length and channel
// count.
func New(frameSize, hopSize, channels int, opts ...Option) (*Engine, error) {
	if frameSize < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrameSize, frameSize)
	}

	if hopSize <= 0 || hopSize >= frameSize {
		return nil, fmt.Errorf("%w: hop=%d frame=%d", ErrInvalidHopSize, hopSize, frameSize)
	}

	if channels < 1 || channels > MaxChannels {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	analysis := window.Generate(cfg.windowType, frameSize, window.WithPeriodic())

	synthesis, err := window.SynthesisWindow(analysis, hopSize)
	if err != nil {
		return nil, fmt.Errorf("stft: %s window: %w", cfg.windowType, err)
	}

	e := &Engine{
		frameSize: frameSize,
		hopSize:   hopSize,
		channels:  channels,
		analysis:  analysis,
		synthesis: synthesis,
		in:        make([][]float64, channels),
		out:       make([][]float64, channels),
		frames:    make([][]float64, channels),
	}

	for c := range channels {
		e.in[c] = make([]float64, frameSize)
		e.out[c] = make([]float64, frameSize)
		e.frames[c] = make([]float64, frameSize)
	}

	return e, nil
}

// MustNew is like New but panics on invalid configuration. It is meant for
// engines built from compile-time constants.
func MustNew(frameSize, hopSize, channels int, opts ...Option) *Engine {
	e, err := New(frameSize, hopSize, channels, opts...)
	if err != nil {
		panic(err)
	}

	return e
}

// FrameSize returns the analysis frame length.
func (e *Engine) FrameSize() int { return e.frameSize }

// HopSize returns the number of samples between frames.
func (e *Engine) HopSize() int { return e.hopSize }

// Channels returns the channel count.
func (e *Engine) Channels() int { return e.channels }

// Hops returns the number of frames processed since construction or Reset.
func (e *Engine) Hops() uint64 { return e.hops }

// Latency returns the fixed input-to-output delay in samples.
//
// A sample is complete once every frame overlapping it has been processed;
// the last of those ends frameSize-1 samples later.
func (e *Engine) Latency() int { return e.frameSize - 1 }

// AnalysisWindow returns the analysis window coefficients. The slice is
// shared with the engine and must not be modified.
func (e *Engine) AnalysisWindow() []float64 { return e.analysis }

// Reset clears all buffered audio.
func (e *Engine) Reset() {
	for c := range e.channels {
		clear(e.in[c])
		clear(e.out[c])
		clear(e.frames[c])
	}

	e.pending = 0
	e.hops = 0
}

// Process consumes and produces len(block[0]) samples per channel in place.
// proc is invoked once per hop; a nil proc leaves frames untouched.
//
// Process panics if the channel count differs from the engine's or the
// channel slices differ in length.
func (e *Engine) Process(block [][]float64, proc FrameProcessor) {
	if len(block) != e.channels {
		panic(fmt.Sprintf("stft: got %d channels, want %d", len(block), e.channels))
	}

	n := len(block[0])
	for c := 1; c < len(block); c++ {
		if len(block[c]) != n {
			panic(fmt.Sprintf("stft: channel %d has %d samples, channel 0 has %d", c, len(block[c]), n))
		}
	}

	tail := e.frameSize - e.hopSize

	for pos := 0; pos < n; {
		k := min(e.hopSize-e.pending, n-pos)
		completes := e.pending+k == e.hopSize

		for c, buf := range block {
			copy(e.in[c][tail+e.pending:], buf[pos:pos+k])
		}

		// The sample that completes a hop is emitted after the frame.
		emit := k
		if completes {
			emit--
		}

		for c, buf := range block {
			copy(buf[pos:pos+emit], e.out[c][e.pending+1:])
		}

		e.pending += k
		pos += k

		if completes {
			e.hop(proc)

			for c, buf := range block {
				buf[pos-1] = e.out[c][0]
			}

			e.pending = 0
		}
	}
}

func (e *Engine) hop(proc FrameProcessor) {
	for c := range e.channels {
		vecmath.MulBlock(e.frames[c], e.in[c], e.analysis)
	}

	if proc != nil {
		proc.ProcessFrames(e.frames)
	}

	keep := e.frameSize - e.hopSize

	for c := range e.channels {
		out := e.out[c]
		copy(out, out[e.hopSize:])
		clear(out[keep:])

		frame := e.frames[c]
		vecmath.MulBlockInPlace(frame, e.synthesis)
		vecmath.AddBlockInPlace(out, frame)

		in := e.in[c]
		copy(in, in[e.hopSize:])
	}

	e.hops++
}
