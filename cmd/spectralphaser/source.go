package main

import (
	"github.com/cwbudde/algo-phaser/dsp/control"
	"github.com/cwbudde/algo-phaser/dsp/effects/phaser"
	"github.com/cwbudde/algo-phaser/dsp/signal"
	"github.com/cwbudde/algo-phaser/dsp/tempo"
	"github.com/cwbudde/algo-phaser/stats/level"
)

// blockSize is the host block length used for rendering and playback.
const blockSize = 512

// source drives the phaser the way a host does: once per block it adopts
// staged parameters, locks tempo-synced layers to the transport and runs
// the effect.
type source struct {
	dsp    *phaser.Phaser
	params *control.Params
	gen    signal.Source

	bpm    float64
	synced [phaser.NumLayers]int

	sampleRate float64
	position   int64

	left, right []float64

	// meter tracks the left output level.
	meter level.Meter
}

func newSource(dsp *phaser.Phaser, params *control.Params, gen signal.Source, patch *Patch) *source {
	s := &source{
		dsp:        dsp,
		params:     params,
		gen:        gen,
		bpm:        patch.tempoBPM(),
		synced:     patch.syncedRates(),
		sampleRate: dsp.SampleRate(),
		left:       make([]float64, blockSize),
		right:      make([]float64, blockSize),
	}

	return s
}

// next renders len(left) samples into left and right.
func (s *source) next(left, right []float64) {
	s.gen.Fill(left, right)
	s.process(left, right)
}

// process runs one host block through the phaser in place.
func (s *source) process(left, right []float64) {
	host := tempo.HostInfo{
		BPM:     s.bpm,
		PPQ:     float64(s.position) / s.sampleRate * s.bpm / 60,
		HasPPQ:  true,
		Playing: true,
	}

	for i, idx := range s.synced {
		if idx < 0 {
			continue
		}

		info := tempo.Sync(host, idx, s.dsp.Layer(i).BarberPhase())
		_ = s.params.SyncBarber(i, info.Freq, info.Phase)
	}

	s.params.Apply(s.dsp)
	s.dsp.Update()
	s.dsp.Process(left, right)
	s.meter.Update(left)

	s.position += int64(len(left))
}

// render produces n stereo samples in blocks of blockSize. dry is the
// unprocessed left input.
func (s *source) render(n int) (dry, left, right []float64) {
	dry = make([]float64, n)
	left = make([]float64, n)
	right = make([]float64, n)

	for pos := 0; pos < n; pos += blockSize {
		end := min(pos+blockSize, n)
		s.gen.Fill(left[pos:end], right[pos:end])
		copy(dry[pos:end], left[pos:end])
		s.process(left[pos:end], right[pos:end])
	}

	return dry, left, right
}

// fillInterleaved renders into an interleaved stereo buffer.
func (s *source) fillInterleaved(dst []float32) {
	for len(dst) >= 2 {
		n := min(len(dst)/2, blockSize)
		l, r := s.left[:n], s.right[:n]
		s.next(l, r)

		for i := range n {
			dst[2*i] = float32(l[i])
			dst[2*i+1] = float32(r[i])
		}

		dst = dst[2*n:]
	}
}
