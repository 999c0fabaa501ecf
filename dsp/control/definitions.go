package control

import (
	"math"
	"strconv"

	"github.com/cwbudde/algo-phaser/dsp/effects/phaser"
)

// Kind identifies which control of a layer a parameter drives.
type Kind int

const (
	KindPhase Kind = iota
	KindPitch
	KindMorph
	KindFreq
	KindEnable
	KindCascade
	KindPhasy
)

var kindPrefixes = [...]string{
	KindPhase:   "phase",
	KindPitch:   "pitch",
	KindMorph:   "morph",
	KindFreq:    "freq",
	KindEnable:  "enable",
	KindCascade: "cascade",
	KindPhasy:   "phasy",
}

// String returns the ID prefix of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindPrefixes) {
		return "unknown"
	}

	return kindPrefixes[k]
}

// Definition describes one automatable parameter.
type Definition struct {
	ID      string
	Kind    Kind
	Layer   int // -1 for global parameters
	Min     float64
	Max     float64
	Default float64
	// Step is the snapping interval of plain values. Zero means continuous.
	Step float64
	// Skew shapes the normalized mapping. 1 is linear; with Symmetric the
	// skew applies on both sides of the range centre.
	Skew      float64
	Symmetric bool
	Toggle    bool
}

// BarberFreqRange is the plain range of the freqN parameters in Hz.
const BarberFreqRange = 10.0

const barberFreqSkew = 0.4

var (
	definitions []Definition
	byID        map[string]int
)

func init() {
	definitions = make([]Definition, 0, phaser.NumLayers*6+1)
	byID = make(map[string]int, cap(definitions))

	for i := range phaser.NumLayers {
		enable := 0.0
		if i == 0 {
			enable = 1
		}

		n := strconv.Itoa(i)
		add(Definition{ID: "phase" + n, Kind: KindPhase, Layer: i, Max: 1, Default: phaser.DefaultPhase, Skew: 1})
		add(Definition{ID: "pitch" + n, Kind: KindPitch, Layer: i, Min: phaser.MinPitch, Max: phaser.MaxPitch, Default: phaser.DefaultPitch, Skew: 1})
		add(Definition{ID: "morph" + n, Kind: KindMorph, Layer: i, Max: 1, Default: phaser.DefaultMorph, Skew: 1})
		add(Definition{
			ID: "freq" + n, Kind: KindFreq, Layer: i,
			Min: -BarberFreqRange, Max: BarberFreqRange, Default: phaser.DefaultBarberFreq,
			Step: 0.01, Skew: barberFreqSkew, Symmetric: true,
		})
		add(Definition{ID: "enable" + n, Kind: KindEnable, Layer: i, Max: 1, Default: enable, Skew: 1, Toggle: true})
		add(Definition{ID: "cascade" + n, Kind: KindCascade, Layer: i, Max: 1, Default: 1, Skew: 1, Toggle: true})
	}

	add(Definition{ID: "phasy", Kind: KindPhasy, Layer: -1, Max: 1, Skew: 1, Toggle: true})
}

func add(d Definition) {
	byID[d.ID] = len(definitions)
	definitions = append(definitions, d)
}

// Definitions returns a copy of the parameter table in host order.
func Definitions() []Definition {
	return append([]Definition(nil), definitions...)
}

// Lookup returns the definition with the given ID.
func Lookup(id string) (Definition, bool) {
	i, ok := byID[id]
	if !ok {
		return Definition{}, false
	}

	return definitions[i], true
}

// Clamp limits plain into the parameter range and snaps it to Step.
// Non-finite values map to Default.
func (d Definition) Clamp(plain float64) float64 {
	if math.IsNaN(plain) || math.IsInf(plain, 0) {
		return d.Default
	}

	if d.Toggle {
		if plain >= 0.5 {
			return 1
		}

		return 0
	}

	if d.Step > 0 {
		plain = d.Min + d.Step*math.Round((plain-d.Min)/d.Step)
	}

	return math.Max(d.Min, math.Min(d.Max, plain))
}

// Normalize maps a plain value to [0, 1].
func (d Definition) Normalize(plain float64) float64 {
	if d.Max <= d.Min {
		return 0
	}

	p := (d.Clamp(plain) - d.Min) / (d.Max - d.Min)

	switch {
	case d.Skew == 1 || d.Skew <= 0:
		return p
	case d.Symmetric:
		x := 2*p - 1
		return (1 + math.Copysign(math.Pow(math.Abs(x), d.Skew), x)) / 2
	default:
		return math.Pow(p, d.Skew)
	}
}

// Denormalize maps a value in [0, 1] to the plain range. It is the inverse
// of Normalize up to Step snapping.
func (d Definition) Denormalize(norm float64) float64 {
	if math.IsNaN(norm) {
		return d.Default
	}

	norm = math.Max(0, math.Min(1, norm))

	switch {
	case d.Skew == 1 || d.Skew <= 0:
	case d.Symmetric:
		x := 2*norm - 1
		norm = (1 + math.Copysign(math.Pow(math.Abs(x), 1/d.Skew), x)) / 2
	default:
		norm = math.Pow(norm, 1/d.Skew)
	}

	return d.Clamp(d.Min + norm*(d.Max-d.Min))
}
