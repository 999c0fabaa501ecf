package stft_test

import (
	"fmt"

	"github.com/cwbudde/algo-phaser/dsp/stft"
)

func ExampleEngine_Process() {
	e := stft.MustNew(8, 2, 1)

	buf := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	e.Process([][]float64{buf}, nil)

	fmt.Printf("latency=%d\n", e.Latency())
	fmt.Printf("%.0f %.0f %.0f\n", buf[6], buf[7], buf[11])
	// Output:
	// latency=7
	// 0 1 5
}
