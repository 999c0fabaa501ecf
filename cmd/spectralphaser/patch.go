package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-phaser/dsp/control"
	"github.com/cwbudde/algo-phaser/dsp/effects/phaser"
	"github.com/cwbudde/algo-phaser/dsp/tempo"
)

var errTooManyLayers = errors.New("patch has more layers than the phaser")

// Patch is a YAML description of a phaser setting.
//
//	bpm: 96
//	phasy: true
//	layers:
//	  - pitch: 100
//	    morph: 0.5
//	    freq: -0.3
//	  - enable: true
//	    cascade: false
//	    rate: "1/4"
//
// Omitted fields keep their defaults. Listed layers are enabled unless they
// set enable: false. A tempo-synced rate overrides freq and is not limited
// to freq's range.
type Patch struct {
	BPM    float64      `yaml:"bpm"`
	Phasy  bool         `yaml:"phasy"`
	Layers []PatchLayer `yaml:"layers"`
}

// PatchLayer holds the controls of one layer. Nil fields are left alone.
type PatchLayer struct {
	Enable  *bool    `yaml:"enable"`
	Cascade *bool    `yaml:"cascade"`
	Pitch   *float64 `yaml:"pitch"`
	Morph   *float64 `yaml:"morph"`
	Phase   *float64 `yaml:"phase"`
	Freq    *float64 `yaml:"freq"`
	Rate    string   `yaml:"rate"`
}

// LoadPatch reads and decodes a patch file.
func LoadPatch(path string) (*Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patch: %w", err)
	}

	p, err := ParsePatch(data)
	if err != nil {
		return nil, fmt.Errorf("patch %s: %w", path, err)
	}

	return p, nil
}

// ParsePatch decodes and validates a YAML patch.
func ParsePatch(data []byte) (*Patch, error) {
	var p Patch
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}

	if len(p.Layers) > phaser.NumLayers {
		return nil, fmt.Errorf("%w: %d > %d", errTooManyLayers, len(p.Layers), phaser.NumLayers)
	}

	for i, l := range p.Layers {
		if l.Rate == "" {
			continue
		}

		if _, err := tempo.Index(l.Rate); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}

	return &p, nil
}

// tempoBPM returns the patch tempo or the tempo default.
func (p *Patch) tempoBPM() float64 {
	if p.BPM > 0 {
		return p.BPM
	}

	return tempo.DefaultBPM
}

// syncedRates returns the tempo table index per layer, -1 for free-running
// layers.
func (p *Patch) syncedRates() [phaser.NumLayers]int {
	var idx [phaser.NumLayers]int
	for i := range idx {
		idx[i] = -1
	}

	for i, l := range p.Layers {
		if l.Rate != "" {
			idx[i], _ = tempo.Index(l.Rate)
		}
	}

	return idx
}

// Apply stages the patch into params.
func (p *Patch) Apply(params *control.Params) error {
	params.SetPhasy(p.Phasy)

	for i, l := range p.Layers {
		enable := true
		if l.Enable != nil {
			enable = *l.Enable
		}

		if err := params.SetEnable(i, enable); err != nil {
			return err
		}

		if l.Cascade != nil {
			if err := params.SetCascade(i, *l.Cascade); err != nil {
				return err
			}
		}

		for id, v := range map[string]*float64{
			fmt.Sprintf("pitch%d", i): l.Pitch,
			fmt.Sprintf("morph%d", i): l.Morph,
			fmt.Sprintf("phase%d", i): l.Phase,
			fmt.Sprintf("freq%d", i):  l.Freq,
		} {
			if v == nil {
				continue
			}

			if err := params.Set(id, *v); err != nil {
				return err
			}
		}
	}

	rates := p.syncedRates()
	for i, idx := range rates {
		if idx < 0 {
			continue
		}

		info := tempo.Sync(tempo.HostInfo{BPM: p.tempoBPM()}, idx, 0)
		if err := params.SyncBarber(i, info.Freq, info.Phase); err != nil {
			return err
		}
	}

	return nil
}
