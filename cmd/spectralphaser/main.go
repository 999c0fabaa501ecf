// Command spectralphaser renders or plays test signals through the
// multi-layer spectral phaser.
//
// Usage:
//
//	spectralphaser [flags]
//
// Without -play it renders the signal offline and prints level statistics.
// With -play it streams to the default audio device; in a terminal the
// keys p (phasy), 1-8 (toggle layer) and q (quit) change the sound live.
//
// Examples:
//
//	spectralphaser -signal saw -spectrum
//	spectralphaser -patch sweep.yaml -seconds 10 -play
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/cwbudde/algo-phaser/dsp/control"
	"github.com/cwbudde/algo-phaser/dsp/core"
	"github.com/cwbudde/algo-phaser/dsp/effects/phaser"
	"github.com/cwbudde/algo-phaser/dsp/signal"
	"github.com/cwbudde/algo-phaser/stats/level"
)

type options struct {
	sampleRate int
	seconds    float64
	signal     string
	patch      string
	seed       int64
	play       bool
	spectrum   bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("spectralphaser: ")

	var opts options
	flag.IntVar(&opts.sampleRate, "rate", 48000, "sample rate in Hz")
	flag.Float64Var(&opts.seconds, "seconds", 4, "duration to render or play")
	flag.StringVar(&opts.signal, "signal", "noise", "test signal: noise, saw, sine or impulse")
	flag.StringVar(&opts.patch, "patch", "", "YAML patch file")
	flag.Int64Var(&opts.seed, "seed", 1, "seed for the noise signal and the phasy table")
	flag.BoolVar(&opts.play, "play", false, "play through the default audio device")
	flag.BoolVar(&opts.spectrum, "spectrum", false, "print per-octave input and output energy")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: spectralphaser [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs test signals through the multi-layer spectral phaser.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(opts options, out io.Writer) error {
	if opts.sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", opts.sampleRate)
	}

	if !(opts.seconds > 0) {
		return fmt.Errorf("invalid duration %g", opts.seconds)
	}

	src, err := setup(opts)
	if err != nil {
		return err
	}

	if opts.play {
		return play(src, opts, out)
	}

	return render(src, opts, out)
}

func setup(opts options) (*source, error) {
	patch := &Patch{}
	if opts.patch != "" {
		p, err := LoadPatch(opts.patch)
		if err != nil {
			return nil, err
		}

		patch = p
	}

	dsp, err := phaser.New(phaser.WithSeed(opts.seed))
	if err != nil {
		return nil, err
	}

	if err := dsp.Init(float64(opts.sampleRate)); err != nil {
		return nil, err
	}

	params := control.NewParams()
	if err := patch.Apply(params); err != nil {
		return nil, err
	}

	gen, err := signal.New(signal.Kind(opts.signal),
		signal.WithProcessorOptions(core.WithSampleRate(float64(opts.sampleRate)), core.WithBlockSize(blockSize)),
		signal.WithSeed(opts.seed),
	)
	if err != nil {
		return nil, err
	}

	return newSource(dsp, params, gen, patch), nil
}

func render(src *source, opts options, out io.Writer) error {
	n := int(opts.seconds * float64(opts.sampleRate))
	dry, left, right := src.render(n)

	fmt.Fprintf(out, "rendered %d samples at %d Hz, latency %d samples\n", n, opts.sampleRate, src.dsp.Latency())
	writeLevels(out, "input", level.Calculate(dry), "\n")
	writeLevels(out, "left", level.Calculate(left), "\n")
	writeLevels(out, "right", level.Calculate(right), "\n")

	if !opts.spectrum {
		return nil
	}

	fmt.Fprintln(out)

	return writeBandReport(out, dry, left, float64(opts.sampleRate))
}

func play(src *source, opts options, out io.Writer) error {
	keys, restore, err := watchKeys(src.params, out)
	if err != nil {
		return err
	}
	defer restore()

	pb, err := startPlayback(src, opts.sampleRate)
	if err != nil {
		return err
	}

	if keys != nil {
		fmt.Fprintf(out, "%s\r\n", keyHelp)
	}

	select {
	case <-keys:
	case <-time.After(time.Duration(opts.seconds * float64(time.Second))):
	}

	if err := pb.Close(); err != nil {
		return err
	}

	writeLevels(out, "played", src.meter.Result(), "\r\n")

	return nil
}

func writeLevels(out io.Writer, label string, s level.Stats, eol string) {
	fmt.Fprintf(out, "%-7s peak %7.2f dBFS  rms %7.2f dBFS%s", label, s.PeakDB(), s.RMSDB(), eol)
}
