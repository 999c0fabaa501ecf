package control

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-phaser/dsp/effects/phaser"
)

type layerParams struct {
	phase   atomicFloat
	pitch   atomicFloat
	morph   atomicFloat
	freq    atomicFloat
	enable  atomic.Bool
	cascade atomic.Bool

	dirty atomic.Bool

	// Tempo lock. A synced layer rotates at syncFreq instead of freq.
	syncFreq    atomicFloat
	barberPhase atomicFloat
	synced      atomic.Bool
	syncPending atomic.Bool
}

// Params is the staged parameter set of one phaser.
//
// Setters and getters are safe for concurrent use. Apply must only be
// called from the goroutine that runs the phaser.
type Params struct {
	layers [phaser.NumLayers]layerParams

	phasy      atomic.Bool
	phasyDirty atomic.Bool

	generation atomic.Uint64
	applied    uint64 // owned by the Apply goroutine
}

// NewParams returns parameters at their default values, all marked dirty.
func NewParams() *Params {
	p := &Params{}

	for _, d := range definitions {
		p.store(d, d.Default)
	}

	p.MarkAll()

	return p
}

// MarkAll forces the next Apply to push every value, e.g. after the
// phaser was re-initialized.
func (p *Params) MarkAll() {
	for i := range p.layers {
		p.layers[i].dirty.Store(true)
	}

	p.phasyDirty.Store(true)
	p.generation.Add(1)
}

// Generation returns a counter that increases with every write.
func (p *Params) Generation() uint64 { return p.generation.Load() }

// Apply copies changed values into dst and reports whether anything was
// adopted. It performs no allocation and takes no locks.
func (p *Params) Apply(dst *phaser.Phaser) bool {
	gen := p.generation.Load()
	if gen == p.applied {
		return false
	}

	p.applied = gen
	changed := false

	for i := range p.layers {
		src := &p.layers[i]
		l := dst.Layer(i)

		if src.dirty.Swap(false) {
			l.Phase = src.phase.Load()
			l.Pitch = src.pitch.Load()
			l.Morph = src.morph.Load()
			if !src.synced.Load() {
				l.BarberFreq = src.freq.Load()
			}
			l.Enable = src.enable.Load()
			l.Cascade = src.cascade.Load()
			changed = true
		}

		if src.syncPending.Swap(false) {
			if src.synced.Load() {
				l.BarberFreq = src.syncFreq.Load()
				l.SetBarberPhase(src.barberPhase.Load())
			} else {
				l.BarberFreq = src.freq.Load()
			}

			changed = true
		}
	}

	if p.phasyDirty.Swap(false) {
		dst.SetPhasy(p.phasy.Load())
		changed = true
	}

	return changed
}

func (p *Params) layer(i int) (*layerParams, error) {
	if i < 0 || i >= phaser.NumLayers {
		return nil, fmt.Errorf("%w: %d", ErrLayerOutOfRange, i)
	}

	return &p.layers[i], nil
}

func (p *Params) set(kind Kind, i int, v float64) error {
	if kind == KindPhasy {
		p.store(definitions[byID["phasy"]], v)
		return nil
	}

	if _, err := p.layer(i); err != nil {
		return err
	}

	p.store(definitions[i*6+int(kind)], v)

	return nil
}

// store clamps v into d's range and publishes it.
func (p *Params) store(d Definition, v float64) {
	v = d.Clamp(v)

	if d.Kind == KindPhasy {
		p.phasy.Store(v != 0)
		p.phasyDirty.Store(true)
		p.generation.Add(1)

		return
	}

	l := &p.layers[d.Layer]

	switch d.Kind {
	case KindPhase:
		l.phase.Store(v)
	case KindPitch:
		l.pitch.Store(v)
	case KindMorph:
		l.morph.Store(v)
	case KindFreq:
		l.freq.Store(v)
	case KindEnable:
		l.enable.Store(v != 0)
	case KindCascade:
		l.cascade.Store(v != 0)
	}

	l.dirty.Store(true)
	p.generation.Add(1)
}

func (p *Params) load(d Definition) float64 {
	if d.Kind == KindPhasy {
		return boolValue(p.phasy.Load())
	}

	l := &p.layers[d.Layer]

	switch d.Kind {
	case KindPhase:
		return l.phase.Load()
	case KindPitch:
		return l.pitch.Load()
	case KindMorph:
		return l.morph.Load()
	case KindFreq:
		return l.freq.Load()
	case KindEnable:
		return boolValue(l.enable.Load())
	default:
		return boolValue(l.cascade.Load())
	}
}

// Set stores a plain value by parameter ID.
func (p *Params) Set(id string, plain float64) error {
	d, ok := Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}

	p.store(d, plain)

	return nil
}

// SetNormalized stores a normalized [0, 1] value by parameter ID.
func (p *Params) SetNormalized(id string, norm float64) error {
	d, ok := Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}

	p.store(d, d.Denormalize(norm))

	return nil
}

// Get returns the plain value of a parameter by ID. Toggles read as 0 or 1.
func (p *Params) Get(id string) (float64, error) {
	d, ok := Lookup(id)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}

	return p.load(d), nil
}

// Per-layer setters clamp v into the parameter range. They fail only for
// layer indices outside [0, NumLayers).
func (p *Params) SetPhase(i int, v float64) error      { return p.set(KindPhase, i, v) }
func (p *Params) SetPitch(i int, v float64) error      { return p.set(KindPitch, i, v) }
func (p *Params) SetMorph(i int, v float64) error      { return p.set(KindMorph, i, v) }
func (p *Params) SetBarberFreq(i int, v float64) error { return p.set(KindFreq, i, v) }
func (p *Params) SetEnable(i int, on bool) error       { return p.set(KindEnable, i, boolValue(on)) }
func (p *Params) SetCascade(i int, on bool) error      { return p.set(KindCascade, i, boolValue(on)) }
func (p *Params) SetPhasy(on bool)                     { _ = p.set(KindPhasy, -1, boolValue(on)) }

// ToggleEnable flips layer i's enable flag and returns the new state.
func (p *Params) ToggleEnable(i int) (bool, error) {
	l, err := p.layer(i)
	if err != nil {
		return false, err
	}

	on := !l.enable.Load()
	if err := p.SetEnable(i, on); err != nil {
		return false, err
	}

	return on, nil
}

// TogglePhasy flips the phasy flag and returns the new state.
func (p *Params) TogglePhasy() bool {
	on := !p.phasy.Load()
	p.SetPhasy(on)

	return on
}

// SyncBarber locks layer i to a tempo-synced rotation: the next Apply sets
// its rate to freq and jumps its barber-pole phase to phase. The rate is
// taken as is, outside the free-running range and step of the freq
// parameter, since it comes from the tempo table. Non-finite rates stop
// the rotation. Call it once per block to keep the phase on the transport.
func (p *Params) SyncBarber(i int, freq, phase float64) error {
	l, err := p.layer(i)
	if err != nil {
		return err
	}

	if math.IsNaN(freq) || math.IsInf(freq, 0) {
		freq = 0
	}

	l.syncFreq.Store(freq)
	l.barberPhase.Store(phase)
	l.synced.Store(true)
	l.syncPending.Store(true)
	p.generation.Add(1)

	return nil
}

// Unsync returns layer i to its free-running freq parameter. The barber
// phase continues from where the lock left it.
func (p *Params) Unsync(i int) error {
	l, err := p.layer(i)
	if err != nil {
		return err
	}

	l.synced.Store(false)
	l.syncPending.Store(true)
	p.generation.Add(1)

	return nil
}

// SyncedFreq returns layer i's locked rate and whether the layer is synced.
// It panics for layer indices outside [0, NumLayers).
func (p *Params) SyncedFreq(i int) (float64, bool) {
	if i < 0 || i >= phaser.NumLayers {
		panic(fmt.Sprintf("control: layer index %d out of range", i))
	}

	l := &p.layers[i]

	return l.syncFreq.Load(), l.synced.Load()
}

// Per-layer getters return the staged values. They panic for layer
// indices outside [0, NumLayers).
func (p *Params) Phase(i int) float64      { return p.get(KindPhase, i) }
func (p *Params) Pitch(i int) float64      { return p.get(KindPitch, i) }
func (p *Params) Morph(i int) float64      { return p.get(KindMorph, i) }
func (p *Params) BarberFreq(i int) float64 { return p.get(KindFreq, i) }
func (p *Params) Enable(i int) bool        { return p.get(KindEnable, i) != 0 }
func (p *Params) Cascade(i int) bool       { return p.get(KindCascade, i) != 0 }
func (p *Params) Phasy() bool              { return p.phasy.Load() }

// get panics on an out-of-range layer, like indexing a slice.
func (p *Params) get(kind Kind, i int) float64 {
	if i < 0 || i >= phaser.NumLayers {
		panic(fmt.Sprintf("control: layer index %d out of range", i))
	}

	return p.load(definitions[i*6+int(kind)])
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
