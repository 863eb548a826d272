package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelforge/worldgen/internal/testutil"
)

func TestNewSmoothField(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name            string
		octaves         int
		expectedOctaves int
	}{
		{
			name:            "default octave count",
			octaves:         DefaultOctaves,
			expectedOctaves: 4,
		},
		{
			name:            "single octave",
			octaves:         1,
			expectedOctaves: 1,
		},
		{
			name:            "many octaves",
			octaves:         8,
			expectedOctaves: 8,
		},
		{
			name:            "zero falls back to default",
			octaves:         0,
			expectedOctaves: 4,
		},
		{
			name:            "negative falls back to default",
			octaves:         -3,
			expectedOctaves: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewSmoothField("test", "surface", tt.octaves)
			require.NotNil(t, f)
			assert.Equal(t, tt.expectedOctaves, f.Octaves())
		})
	}
}

func TestSmoothField_ValueRange(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name string
		x, y float64
	}{
		{name: "origin", x: 0, y: 0},
		{name: "positive coordinates", x: 1234.5, y: 678.9},
		{name: "negative coordinates", x: -512.25, y: -90000},
		{name: "very large coordinates", x: 1e7, y: -1e7},
		{name: "fractional coordinates", x: 0.123456, y: 0.789012},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewSmoothField("test", "surface", DefaultOctaves)
			v := f.Value(tt.x, tt.y)
			assert.Greater(t, v, 0.0, "value should stay above 0")
			assert.Less(t, v, 1.0, "value should stay below 1")
		})
	}
}

func TestSmoothField_ValueRangeSweep(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	f := NewSmoothField("sweep-seed", "surface", DefaultOctaves)
	for x := -200; x <= 200; x += 7 {
		for y := -200; y <= 200; y += 11 {
			v := f.Value(float64(x), float64(y))
			require.Greater(t, v, 0.0)
			require.Less(t, v, 1.0)
		}
	}
}

func TestSmoothField_Deterministic(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	a := NewSmoothField("test", "surface", DefaultOctaves)
	b := NewSmoothField("test", "surface", DefaultOctaves)

	for x := -50; x <= 50; x += 3 {
		for y := -50; y <= 50; y += 5 {
			assert.Equal(t, a.Value(float64(x), float64(y)), b.Value(float64(x), float64(y)),
				"independently constructed fields must agree at (%d, %d)", x, y)
		}
	}
}

func TestSmoothField_ChannelsIndependent(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	surface := NewSmoothField("test", "surface", DefaultOctaves)
	bedrock := NewSmoothField("test", "bedrock", DefaultOctaves)

	differs := false
	for x := 0; x < 64 && !differs; x++ {
		if surface.Value(float64(x), 0) != bedrock.Value(float64(x), 0) {
			differs = true
		}
	}
	assert.True(t, differs, "channels with different labels should produce different fields")
}

func TestSmoothField_Continuity(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	// A small input step must produce a small output step. The field is a sum
	// of sines with bounded amplitude, so its derivative is bounded; with the
	// default 4 octaves the worst-case slope is well under 1 per unit after
	// the logistic squash.
	f := NewSmoothField("test", "surface", DefaultOctaves)

	const step = 1e-3
	for x := -30.0; x <= 30.0; x += 1.7 {
		for y := -30.0; y <= 30.0; y += 2.3 {
			base := f.Value(x, y)
			dx := math.Abs(f.Value(x+step, y) - base)
			dy := math.Abs(f.Value(x, y+step) - base)
			assert.Less(t, dx, 0.01, "x step at (%v, %v)", x, y)
			assert.Less(t, dy, 0.01, "y step at (%v, %v)", x, y)
		}
	}
}

func TestSmoothField_QueriesArePure(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	f := NewSmoothField("test", "surface", DefaultOctaves)

	first := f.Value(12.5, -7.25)
	// Interleave other queries, then re-ask: answers must not drift.
	for i := 0; i < 100; i++ {
		f.Value(float64(i), float64(-i))
	}
	assert.Equal(t, first, f.Value(12.5, -7.25), "queries must not mutate field state")
}
