package control_test

import (
	"fmt"

	"github.com/cwbudde/algo-phaser/dsp/control"
	"github.com/cwbudde/algo-phaser/dsp/effects/phaser"
)

func ExampleParams_Apply() {
	dsp, err := phaser.New(phaser.WithSeed(1))
	if err != nil {
		panic(err)
	}

	if err := dsp.Init(48000); err != nil {
		panic(err)
	}

	params := control.NewParams()

	// UI goroutine.
	_ = params.Set("pitch0", 72)
	_ = params.Set("enable1", 1)

	// Audio goroutine, at block start.
	fmt.Println(params.Apply(dsp))
	fmt.Println(dsp.Layer(0).Pitch, dsp.Layer(1).Enable)
	fmt.Println(params.Apply(dsp))
	// Output:
	// true
	// 72 true
	// false
}
