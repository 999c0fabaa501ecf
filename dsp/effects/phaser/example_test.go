package phaser_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-phaser/dsp/effects/phaser"
)

func ExamplePhaser_Process() {
	p, err := phaser.New(phaser.WithSeed(7))
	if err != nil {
		panic(err)
	}

	if err := p.Init(48000); err != nil {
		panic(err)
	}

	// Two layers: the default comb, then a parallel layer sweeping downwards.
	l := p.Layer(1)
	l.Enable = true
	l.Cascade = false
	l.Pitch = 84
	l.BarberFreq = -0.5

	left := make([]float64, 4096)
	right := make([]float64, 4096)
	left[0], right[0] = 1, 1

	p.Update()
	p.Process(left, right)

	peak := 0
	for i, v := range left {
		if math.Abs(v) > math.Abs(left[peak]) {
			peak = i
		}
	}

	fmt.Printf("latency=%d\n", p.Latency())
	fmt.Printf("peak at %d: %.2f\n", peak, left[peak])
	// Output:
	// latency=1023
	// peak at 1023: 0.76
}

func ExampleFastSin() {
	fmt.Printf("%.4f %.4f %.4f\n", phaser.FastSin(0), phaser.FastSin(0.25), phaser.FastSin(0.5))
	// Output:
	// 1.0000 0.0000 -1.0000
}
