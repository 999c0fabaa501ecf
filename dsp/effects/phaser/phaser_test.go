package phaser

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-phaser/dsp/core"
	"github.com/cwbudde/algo-phaser/dsp/window"
	"github.com/cwbudde/algo-phaser/internal/testutil"
)

func newTestPhaser(t *testing.T, sampleRate float64, opts ...Option) *Phaser {
	t.Helper()

	p, err := New(append([]Option{WithSeed(1)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := p.Init(sampleRate); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	return p
}

func processInBlocks(p *Phaser, left, right []float64, blockSize int) {
	for pos := 0; pos < len(left); pos += blockSize {
		end := min(pos+blockSize, len(left))
		p.Update()
		p.Process(left[pos:end], right[pos:end])
	}
}

func disableAll(p *Phaser) {
	for i := range NumLayers {
		p.Layer(i).Enable = false
	}
}

func TestNewDefaults(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := range NumLayers {
		l := p.Layer(i)
		if l.Enable != (i == 0) {
			t.Fatalf("layer %d Enable=%v", i, l.Enable)
		}

		if !l.Cascade || l.Pitch != DefaultPitch || l.Morph != DefaultMorph || l.Phase != DefaultPhase {
			t.Fatalf("layer %d controls = %+v", i, *l)
		}
	}

	if p.Phasy {
		t.Fatal("Phasy should default to false")
	}

	if p.SampleRate() != 0 {
		t.Fatalf("SampleRate()=%g before Init", p.SampleRate())
	}

	if p.Latency() != FrameSize-1 {
		t.Fatalf("Latency()=%d, want %d", p.Latency(), FrameSize-1)
	}
}

func TestNewRejectsRectangularWindow(t *testing.T) {
	if _, err := New(WithWindow(window.TypeRectangular)); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("New() error = %v, want %v", err, ErrInvalidWindow)
	}
}

func TestInitRejectsInvalidSampleRate(t *testing.T) {
	p, err := New(WithSeed(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, fs := range []float64{0, -48000, math.NaN(), math.Inf(1)} {
		if err := p.Init(fs); !errors.Is(err, ErrInvalidSampleRate) {
			t.Fatalf("Init(%g) error = %v, want %v", fs, err, ErrInvalidSampleRate)
		}
	}
}

func TestProcessBeforeInitPanics(t *testing.T) {
	p, err := New(WithSeed(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Process before Init should panic")
		}
	}()

	p.Process(make([]float64, 8), make([]float64, 8))
}

func TestProcessMismatchedLengthsPanics(t *testing.T) {
	p := newTestPhaser(t, 48000)

	defer func() {
		if recover() == nil {
			t.Fatal("Process with mismatched lengths should panic")
		}
	}()

	p.Process(make([]float64, 8), make([]float64, 9))
}

func TestRandomPhaseTable(t *testing.T) {
	a := newTestPhaser(t, 48000, WithSeed(42))
	b := newTestPhaser(t, 48000, WithSeed(42))
	c := newTestPhaser(t, 48000, WithSeed(43))

	differs := false

	for i := range NumBins {
		r := a.RandomPhase(i)

		if math.Abs(cmplx.Abs(r)-1) > 1e-12 {
			t.Fatalf("RandomPhase(%d) magnitude %g", i, cmplx.Abs(r))
		}

		if ang := cmplx.Phase(r); ang < -1e-12 || ang > math.Pi {
			t.Fatalf("RandomPhase(%d) angle %g outside [0,pi)", i, ang)
		}

		if r != b.RandomPhase(i) {
			t.Fatalf("RandomPhase(%d) differs for equal seeds", i)
		}

		if r != c.RandomPhase(i) {
			differs = true
		}
	}

	if !differs {
		t.Fatal("different seeds produced identical tables")
	}
}

func TestPhasyRotatesWithoutChangingMagnitude(t *testing.T) {
	p := newTestPhaser(t, 48000)
	disableAll(p)
	p.SetPhasy(true)

	re := make([]float64, NumBins)
	im := make([]float64, NumBins)
	for i := range re {
		re[i] = 1
	}

	p.ProcessSpectrum(re, im)

	for i := range re {
		if got, want := complex(re[i], im[i]), p.RandomPhase(i); cmplx.Abs(got-want) > 1e-12 {
			t.Fatalf("bin %d = %v, want %v", i, got, want)
		}
	}

	// A second pass composes: the angle doubles, magnitude stays 1.
	p.ProcessSpectrum(re, im)

	for i := range re {
		r := p.RandomPhase(i)
		got := complex(re[i], im[i])

		if cmplx.Abs(got-r*r) > 1e-12 {
			t.Fatalf("bin %d after two passes = %v, want %v", i, got, r*r)
		}

		if math.Abs(cmplx.Abs(got)-1) > 1e-12 {
			t.Fatalf("bin %d magnitude %g, want 1", i, cmplx.Abs(got))
		}
	}
}

func TestProcessSpectrumSlotOrder(t *testing.T) {
	p := newTestPhaser(t, 48000)

	p.Layer(0).Enable = true
	p.Layer(0).Cascade = true
	p.Layer(2).Enable = true
	p.Layer(2).Cascade = false
	p.Layer(2).Pitch = 80
	p.Layer(5).Enable = true
	p.Layer(5).Cascade = false
	p.Layer(5).Phase = 0.1
	p.Layer(5).Morph = 0
	p.Update()

	re := make([]float64, NumBins)
	im := make([]float64, NumBins)
	for i := range re {
		re[i] = math.Cos(float64(i))
		im[i] = math.Sin(float64(i))
	}

	wantRe := append([]float64(nil), re...)
	wantIm := append([]float64(nil), im...)

	p.ProcessSpectrum(re, im)

	for i := range wantRe {
		// Parallel layers scale the running spectrum, so two of them
		// compound instead of summing their gains.
		f := p.Layer(0).Gain(i) * (1 + p.Layer(2).Gain(i)) * (1 + p.Layer(5).Gain(i))

		if math.Abs(re[i]-wantRe[i]*f) > 1e-12 || math.Abs(im[i]-wantIm[i]*f) > 1e-12 {
			t.Fatalf("bin %d = (%g,%g), want factor %g", i, re[i], im[i], f)
		}
	}
}

func TestProcessSpectrumTwoIdenticalLayers(t *testing.T) {
	tests := []struct {
		name    string
		cascade bool
		factor  func(g float64) float64
	}{
		{"cascade", true, func(g float64) float64 { return g * g }},
		{"parallel", false, func(g float64) float64 { return (1 + g) * (1 + g) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPhaser(t, 48000)

			for _, i := range []int{0, 1} {
				l := p.Layer(i)
				l.Enable = true
				l.Cascade = tt.cascade
				l.Pitch = 90
				l.Morph = 0.3
				l.Phase = 0.2
			}

			p.Update()

			re := make([]float64, NumBins)
			im := make([]float64, NumBins)
			for i := range re {
				re[i] = 1 + 0.5*math.Sin(float64(i))
				im[i] = -0.25 * float64(i%3)
			}

			wantRe := append([]float64(nil), re...)
			wantIm := append([]float64(nil), im...)

			p.ProcessSpectrum(re, im)

			for i := range wantRe {
				g0, g1 := p.Layer(0).Gain(i), p.Layer(1).Gain(i)
				if g0 != g1 {
					t.Fatalf("bin %d: layer gains %g and %g differ", i, g0, g1)
				}

				f := tt.factor(g0)
				if math.Abs(re[i]-wantRe[i]*f) > 1e-12 || math.Abs(im[i]-wantIm[i]*f) > 1e-12 {
					t.Fatalf("bin %d = (%g,%g), want factor %g", i, re[i], im[i], f)
				}
			}
		})
	}
}

func TestBypassIsDelayedIdentity(t *testing.T) {
	for _, wt := range []window.Type{window.TypeHann, window.TypeHamming, window.TypeBlackman} {
		t.Run(wt.String(), func(t *testing.T) {
			p := newTestPhaser(t, 48000, WithWindow(wt))
			disableAll(p)

			const n = 6000

			left := testutil.DeterministicNoise(3, 0.8, n)
			right := testutil.DeterministicSine(997, 48000, 0.5, n)
			wantL := testutil.Delayed(left, p.Latency())
			wantR := testutil.Delayed(right, p.Latency())

			processInBlocks(p, left, right, 333)

			testutil.RequireSliceNearlyEqual(t, left, wantL, 1e-9)
			testutil.RequireSliceNearlyEqual(t, right, wantR, 1e-9)
		})
	}
}

func TestImpulseResponse(t *testing.T) {
	const (
		n   = 8192
		pos = 4096
	)

	// Layer 0 at pitch 100, morph 0.5, no rotation, cascading.
	for _, phase := range []float64{0, DefaultPhase} {
		t.Run(fmt.Sprintf("phase=%g", phase), func(t *testing.T) {
			p := newTestPhaser(t, 48000)
			p.Layer(0).Phase = phase

			left := testutil.Impulse(n, pos)
			right := testutil.Impulse(n, pos)

			processInBlocks(p, left, right, 512)

			testutil.RequireFinite(t, left)
			testutil.RequireAllZero(t, left[:pos])
			testutil.RequireSliceNearlyEqual(t, right, left, 0)

			peak := 0
			for i, v := range left {
				if math.Abs(v) > math.Abs(left[peak]) {
					peak = i
				}
			}

			if want := pos + p.Latency(); peak != want {
				t.Fatalf("peak at %d, want %d", peak, want)
			}

			// The comb averages to half gain across bins at either phase.
			if v := left[peak]; v < 0.4 || v > 0.6 {
				t.Fatalf("peak value %g, want about half the comb's unity gain", v)
			}

			testutil.RequireAllZero(t, left[pos+2*FrameSize:])
		})
	}
}

func TestDisabledLayerKeepsRotating(t *testing.T) {
	const fs = 48000.0

	p := newTestPhaser(t, fs)
	p.Layer(3).BarberFreq = 2.5

	left := make([]float64, 16*HopSize)
	right := make([]float64, 16*HopSize)
	processInBlocks(p, left, right, 100)

	hops := p.engine.Hops()
	if hops != 16 {
		t.Fatalf("Hops()=%d, want 16", hops)
	}

	want := core.Wrap01(float64(hops) * 2.5 * HopSize / fs)
	if got := p.Layer(3).BarberPhase(); math.Abs(got-want) > 1e-12 {
		t.Fatalf("BarberPhase()=%g, want %g", got, want)
	}

	p.Layer(3).Enable = true
	processInBlocks(p, left, right, HopSize)

	want = core.Wrap01(float64(p.engine.Hops()) * 2.5 * HopSize / fs)
	if got := p.Layer(3).BarberPhase(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("BarberPhase() after enable = %g, want %g", got, want)
	}
}

func TestCachedGainsMatchLayerGain(t *testing.T) {
	p := newTestPhaser(t, 44100)
	p.Layer(0).BarberFreq = -1.5
	p.Layer(1).Enable = true
	p.Layer(1).Pitch = 60
	p.Layer(1).Morph = 0.9

	frames := [][]float64{make([]float64, FrameSize), make([]float64, FrameSize)}
	for range 3 {
		p.ProcessFrames(frames)
	}

	for li := range 2 {
		for i := range NumBins {
			if got, want := p.gains[li][i], p.Layer(li).Gain(i); got != want {
				t.Fatalf("layer %d bin %d cached gain %g, want %g", li, i, got, want)
			}
		}
	}
}

func TestResetClearsState(t *testing.T) {
	p := newTestPhaser(t, 48000)
	p.Layer(0).BarberFreq = 3

	left := testutil.DeterministicNoise(9, 1, 3000)
	right := testutil.DeterministicNoise(10, 1, 3000)
	processInBlocks(p, left, right, 256)

	p.Reset()

	if p.Layer(0).BarberPhase() != 0 {
		t.Fatalf("BarberPhase()=%g after Reset", p.Layer(0).BarberPhase())
	}

	silence := make([]float64, 2048)
	processInBlocks(p, silence, make([]float64, 2048), 256)
	testutil.RequireAllZero(t, silence)
}

func TestProcessOutputFiniteUnderModulation(t *testing.T) {
	p := newTestPhaser(t, 96000)
	p.SetPhasy(true)

	for i := range NumLayers {
		l := p.Layer(i)
		l.Enable = true
		l.Cascade = i%2 == 0
		l.Pitch = float64(i) * 20
		l.Morph = float64(i) / 7
		l.BarberFreq = float64(i) - 4
	}

	left := testutil.DeterministicNoise(5, 1, 20000)
	right := testutil.DeterministicNoise(6, 1, 20000)
	processInBlocks(p, left, right, 480)

	testutil.RequireFinite(t, left)
	testutil.RequireFinite(t, right)
}
