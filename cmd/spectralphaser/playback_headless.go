//go:build headless

package main

import (
	"time"
)

// nullPlayback consumes a source in real time without an audio device.
type nullPlayback struct {
	stop chan struct{}
	done chan struct{}
}

func startPlayback(src *source, sampleRate int) (playback, error) {
	p := &nullPlayback{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	period := time.Duration(float64(blockSize) / float64(sampleRate) * float64(time.Second))
	buf := make([]float32, 2*blockSize)

	go func() {
		defer close(p.done)

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				src.fillInterleaved(buf)
			}
		}
	}()

	return p, nil
}

func (p *nullPlayback) Close() error {
	close(p.stop)
	<-p.done

	return nil
}
