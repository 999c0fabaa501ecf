package tempo

import (
	"errors"
	"fmt"
	"math"
)

// DefaultBPM is assumed when the host reports no tempo.
const DefaultBPM = 120.0

// NumRates is the size of the rate table.
const NumRates = len(baseRates)*3*2 + 1

// FreezeIndex is the index of the zero rate.
const FreezeIndex = NumRates / 2

// ErrUnknownRate is returned by Index for names not in the table.
var ErrUnknownRate = errors.New("tempo: unknown rate name")

var (
	baseRates = [...]float64{1.0 / 64, 1.0 / 32, 1.0 / 16, 1.0 / 8, 1.0 / 4, 1.0 / 2, 1, 2, 4, 8}
	baseNames = [...]string{"1/64", "1/32", "1/16", "1/8", "1/4", "1/2", "1", "2", "4", "8"}

	rates   [NumRates]float64
	names   [NumRates]string
	indexOf map[string]int
)

func init() {
	w := 0
	for i := len(baseRates) - 1; i >= 0; i-- {
		v := baseRates[i]
		rates[w], rates[w+1], rates[w+2] = -1.5*v, -v, -2.0/3.0*v
		w += 3
	}

	rates[w] = 0
	w++

	for _, v := range baseRates {
		rates[w], rates[w+1], rates[w+2] = 1.5*v, v, 2.0/3.0*v
		w += 3
	}

	w = 0
	for _, n := range baseNames {
		names[w], names[w+1], names[w+2] = "-"+n+"T", "-"+n, "-"+n+"D"
		w += 3
	}

	names[w] = "freeze"
	w++

	for i := len(baseNames) - 1; i >= 0; i-- {
		n := baseNames[i]
		names[w], names[w+1], names[w+2] = n+"T", n, n+"D"
		w += 3
	}

	indexOf = make(map[string]int, NumRates)
	for i, n := range names {
		indexOf[n] = i
	}
}

// Rates returns a copy of the rate table in cycles per beat.
func Rates() []float64 { return append([]float64(nil), rates[:]...) }

// RateNames returns a copy of the rate names, parallel to Rates.
func RateNames() []string { return append([]string(nil), names[:]...) }

// Rate returns the rate at index i in cycles per beat. Indices are clamped
// into the table.
func Rate(i int) float64 { return rates[clampIndex(i)] }

// Name returns the name of the rate at index i. Indices are clamped into
// the table.
func Name(i int) string { return names[clampIndex(i)] }

// Index returns the table index of a rate name.
func Index(name string) (int, error) {
	i, ok := indexOf[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRate, name)
	}

	return i, nil
}

// HostInfo is the transport state reported by a host for one block.
type HostInfo struct {
	// BPM is the host tempo. Zero or negative means unknown.
	BPM float64
	// PPQ is the position in quarter notes, valid when HasPPQ is set.
	PPQ     float64
	HasPPQ  bool
	Playing bool
}

// Info is a synced rotation rate and phase.
type Info struct {
	// Freq is the rotation rate in Hz.
	Freq float64
	// Phase is the rotation phase in [0, 1).
	Phase float64
	// Locked reports whether Phase was derived from the host position.
	Locked bool
}

// Sync returns the rotation rate for the rate at index at the host tempo.
// While the host is playing with a known position the phase is locked to
// it; otherwise phase is passed through.
func Sync(host HostInfo, index int, phase float64) Info {
	bpm := host.BPM
	if !(bpm > 0) || math.IsInf(bpm, 0) {
		bpm = DefaultBPM
	}

	rate := Rate(index)
	info := Info{Freq: rate * bpm / 60, Phase: phase}

	if host.Playing && host.HasPPQ && !math.IsNaN(host.PPQ) && !math.IsInf(host.PPQ, 0) {
		p := rate * host.PPQ
		info.Phase = p - math.Floor(p)
		info.Locked = true
	}

	return info
}

func clampIndex(i int) int {
	return max(0, min(NumRates-1, i))
}
