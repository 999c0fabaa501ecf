package control

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionsLayout(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 8*6+1)

	require.Equal(t, "phase0", defs[0].ID)
	require.Equal(t, "pitch0", defs[1].ID)
	require.Equal(t, "cascade7", defs[47].ID)
	require.Equal(t, "phasy", defs[48].ID)
	require.Equal(t, -1, defs[48].Layer)

	for i, d := range defs[:48] {
		require.Equal(t, i/6, d.Layer, d.ID)
		require.Equal(t, Kind(i%6), d.Kind, d.ID)
	}

	// The table is a copy.
	defs[0].ID = "changed"
	d, ok := Lookup("phase0")
	require.True(t, ok)
	require.Equal(t, "phase0", d.ID)
}

func TestDefinitionDefaults(t *testing.T) {
	cases := map[string]float64{
		"phase3":   0.5,
		"pitch0":   100,
		"morph5":   0.5,
		"freq1":    0,
		"enable0":  1,
		"enable1":  0,
		"cascade6": 1,
		"phasy":    0,
	}

	for id, want := range cases {
		d, ok := Lookup(id)
		require.True(t, ok, id)
		assert.Equal(t, want, d.Default, id)
	}

	_, ok := Lookup("pitch8")
	assert.False(t, ok)
}

func TestClamp(t *testing.T) {
	pitch, _ := Lookup("pitch0")
	assert.Equal(t, 150.0, pitch.Clamp(200))
	assert.Equal(t, 0.0, pitch.Clamp(-3))
	assert.Equal(t, 100.0, pitch.Clamp(math.NaN()))

	freq, _ := Lookup("freq0")
	assert.InDelta(t, 1.23, freq.Clamp(1.234), 1e-9)
	assert.Equal(t, -10.0, freq.Clamp(-42))

	enable, _ := Lookup("enable2")
	assert.Equal(t, 1.0, enable.Clamp(0.7))
	assert.Equal(t, 0.0, enable.Clamp(0.2))
}

func TestLinearNormalize(t *testing.T) {
	pitch, _ := Lookup("pitch4")

	assert.InDelta(t, 0.0, pitch.Normalize(0), 1e-12)
	assert.InDelta(t, 0.5, pitch.Normalize(75), 1e-12)
	assert.InDelta(t, 1.0, pitch.Normalize(150), 1e-12)
	assert.InDelta(t, 75.0, pitch.Denormalize(0.5), 1e-12)
	assert.InDelta(t, 150.0, pitch.Denormalize(3), 1e-12)
}

func TestSkewedBarberFreqRange(t *testing.T) {
	freq, _ := Lookup("freq2")

	assert.InDelta(t, 0.5, freq.Normalize(0), 1e-12)
	assert.InDelta(t, 0.0, freq.Normalize(-10), 1e-12)
	assert.InDelta(t, 1.0, freq.Normalize(10), 1e-12)
	assert.InDelta(t, 0.0, freq.Denormalize(0.5), 1e-12)

	// Skew below 1 spends more of the control travel near zero.
	assert.InDelta(t, 10*math.Pow(0.5, 1/0.4), freq.Denormalize(0.75), 0.005)
	assert.InDelta(t, -10*math.Pow(0.5, 1/0.4), freq.Denormalize(0.25), 0.005)
	assert.Less(t, freq.Denormalize(0.75), 2.5)

	for _, plain := range []float64{-9.5, -2, -0.3, 0.01, 0.5, 4, 10} {
		assert.InDelta(t, plain, freq.Denormalize(freq.Normalize(plain)), 0.006, "plain=%g", plain)
	}

	for n := 0.0; n < 1; n += 0.05 {
		require.LessOrEqual(t, freq.Denormalize(n), freq.Denormalize(n+0.05)+1e-12, "monotonic at %g", n)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "freq", KindFreq.String())
	assert.Equal(t, "phasy", KindPhasy.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
