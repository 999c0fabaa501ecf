//go:build !headless

package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// otoPlayback streams a source to the default audio device.
type otoPlayback struct {
	ctx    *oto.Context
	player *oto.Player

	src    *source
	buf    []float32 // interleaved scratch, reused across reads
	closed bool
	mu     sync.Mutex
}

func startPlayback(src *source, sampleRate int) (playback, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	p := &otoPlayback{
		ctx: ctx,
		src: src,
		buf: make([]float32, 2*blockSize),
	}

	p.player = ctx.NewPlayer(p)
	p.player.Play()

	return p, nil
}

// Read implements io.Reader for the oto player.
func (p *otoPlayback) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		clear(b)
		return len(b), nil
	}

	const frameBytes = 8 // two float32 channels

	n := 0
	for len(b)-n >= frameBytes {
		frames := min((len(b)-n)/frameBytes, blockSize)
		samples := p.buf[:2*frames]
		p.src.fillInterleaved(samples)

		for _, v := range samples {
			binary.LittleEndian.PutUint32(b[n:], math.Float32bits(v))
			n += 4
		}
	}

	return n, nil
}

// Close stops playback. Once it returns the source is no longer read.
func (p *otoPlayback) Close() error {
	p.mu.Lock()
	player := p.player
	p.player = nil
	p.closed = true
	p.mu.Unlock()

	if player == nil {
		return nil
	}

	return player.Close()
}
