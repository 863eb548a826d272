package noise

import (
	"math"

	"github.com/voxelforge/worldgen/services/seed"
)

// DefaultOctaves is the octave count used when a channel does not override it.
const DefaultOctaves = 4

// SmoothField is a continuous scalar field over the (x, y) plane built from a
// multi-octave sum of sines squashed into (0, 1). Octave parameters are
// derived once from the seed; queries are pure and touch no state, so a field
// can be shared freely across goroutines.
type SmoothField struct {
	octaves int
	amp     []float64 // amplitude per octave, shared by both axes
	offX    []float64 // per-octave phase offset, x axis
	offY    []float64 // per-octave phase offset, y axis
}

// NewSmoothField derives the octave parameters for one noise channel.
// The label separates channels that share a world seed (surface, bedrock, ...).
// Draw order is fixed: all x offsets for octaves 0..n-1, then all y offsets.
func NewSmoothField(worldSeed, label string, octaves int) *SmoothField {
	if octaves <= 0 {
		octaves = DefaultOctaves
	}

	f := &SmoothField{
		octaves: octaves,
		amp:     make([]float64, octaves),
		offX:    make([]float64, octaves),
		offY:    make([]float64, octaves),
	}

	st := seed.Derive(worldSeed, "smooth", label)
	for i := 0; i < octaves; i++ {
		f.amp[i] = float64((i + 1) * (i + 1))
		f.offX[i] = st.Float64() * math.Exp(float64(i))
	}
	for i := 0; i < octaves; i++ {
		f.offY[i] = st.Float64() * math.Exp(float64(i))
	}
	return f
}

// Value returns the field value at (x, y), always inside (0, 1).
//
// Each octave i contributes amp_i * sin((x-offX_i)/e^(i+1)) plus the
// symmetric y term; the divisor 70 keeps the logistic squash away from its
// saturated tails for the default octave configuration.
func (f *SmoothField) Value(x, y float64) float64 {
	var s float64
	for i := 0; i < f.octaves; i++ {
		wavelength := math.Exp(float64(i + 1))
		s += f.amp[i] * math.Sin((x-f.offX[i])/wavelength)
		s += f.amp[i] * math.Sin((y-f.offY[i])/wavelength)
	}
	return 1 / (1 + math.Exp(s/70))
}

// Octaves returns the octave count the field was built with.
func (f *SmoothField) Octaves() int {
	return f.octaves
}
